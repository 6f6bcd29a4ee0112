package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User is an identity record in the user directory.
// Name is the natural key; two users cannot share a name.
//
// The password is stored and compared in plaintext, matching the
// historical storage format.
type User struct {
	ID        UserID    `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
