package redis

import (
	"fmt"

	"courtbook/internal/model"
)

// Key prefix for all reservation data
const keyPrefix = "courtbook"

// dayKey returns the Redis key for a date's reservation record
func dayKey(date model.DateKey) string {
	return fmt.Sprintf("%s:reservation:%s", keyPrefix, date)
}

// dateIndexKey returns the Redis key for the SET of dates with records
func dateIndexKey() string {
	return fmt.Sprintf("%s:idx:dates", keyPrefix)
}

// userKey returns the Redis key for a user, keyed by name
func userKey(name string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, name)
}
