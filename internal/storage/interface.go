package storage

import (
	"context"

	"courtbook/internal/model"
)

// Storage defines the interface for data persistence.
//
// Day records and users are handed over as full copies; implementations
// must not retain or return live references to caller-owned values.
type Storage interface {
	// Day record operations
	SaveDay(ctx context.Context, record *model.DayRecord) error
	GetDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error)
	DeleteDay(ctx context.Context, date model.DateKey) error
	ListDates(ctx context.Context) ([]model.DateKey, error)

	// User directory operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByName(ctx context.Context, name string) (*model.User, error)
}
