package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Court identifies one of the two bookable courts
type Court string

const (
	CourtA Court = "A"
	CourtB Court = "B"
)

// Bookable hours run hourly from 08:00-09:00 up to 20:00-21:00
const (
	FirstHour = 8
	LastHour  = 20
)

// Courts returns all courts in display order
func Courts() []Court {
	return []Court{CourtA, CourtB}
}

// SlotStatus represents the booking state of a single slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available" // free to select
	SlotSelected  SlotStatus = "selected"  // tentatively picked, not yet committed
	SlotConfirmed SlotStatus = "confirmed" // committed to a date and owner
)

// SlotKey identifies a (hour, court) unit in its wire form, e.g. "9-A"
type SlotKey string

// Slot is one bookable (hour, court) unit for a given date
type Slot struct {
	Hour   int
	Court  Court
	Status SlotStatus
	Owner  UserID // set only when Status is SlotConfirmed
}

// ValidSlot reports whether the (hour, court) pair is bookable
func ValidSlot(hour int, court Court) bool {
	if hour < FirstHour || hour > LastHour {
		return false
	}
	return court == CourtA || court == CourtB
}

// NewSlotKey builds the wire key for a slot
func NewSlotKey(hour int, court Court) SlotKey {
	return SlotKey(fmt.Sprintf("%d-%s", hour, court))
}

// Parse splits a slot key back into its hour and court.
// Invalid keys return ErrInvalidSlot.
func (k SlotKey) Parse() (int, Court, error) {
	hourStr, courtStr, ok := strings.Cut(string(k), "-")
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidSlot, k)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidSlot, k)
	}
	court := Court(courtStr)
	if !ValidSlot(hour, court) {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidSlot, k)
	}
	return hour, court, nil
}

// Key returns the wire key for the slot
func (s Slot) Key() SlotKey {
	return NewSlotKey(s.Hour, s.Court)
}

// SortSlots orders slots by (hour ascending, court ascending).
// Deterministic ordering is relied on for display and fee breakdowns.
func SortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Hour != slots[j].Hour {
			return slots[i].Hour < slots[j].Hour
		}
		return slots[i].Court < slots[j].Court
	})
}
