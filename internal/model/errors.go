package model

import "errors"

// Common errors used across the application
var (
	// Slot errors
	ErrInvalidSlot     = errors.New("invalid slot: hour must be 8-20 and court A or B")
	ErrSlotUnavailable = errors.New("slot is already confirmed")
	ErrNoSlotsSelected = errors.New("no slots selected")

	// Date errors
	ErrInvalidDate = errors.New("invalid date: must be YYYY-MM-DD")

	// Day record errors
	ErrDayNotFound = errors.New("no reservations for this date")
	ErrDayCorrupt  = errors.New("stored reservation data is unreadable")

	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("user name is already registered")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrNotAuthenticated = errors.New("not logged in")
)
