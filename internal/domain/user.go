// Package domain contains the core business entities for TaskVault.
// These are pure Go structs with no external dependencies beyond identifiers,
// representing the fundamental concepts of the to-do backend.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system.
// Users own to-do items and can hold multiple API keys for authentication.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `json:"id"`

	// Username is the unique username used for sign-up and credential checks.
	// Compared case-sensitively.
	Username string `json:"username"`

	// Password is the stored password, compared by plain equality.
	// This mirrors the documented behavior of the system; it is not hashed.
	// Never exposed in API responses.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the user signed up.
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with a fresh identifier.
func NewUser(username, password string) *User {
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}

// CheckPassword compares the candidate against the stored password.
func (u *User) CheckPassword(candidate string) bool {
	return u.Password == candidate
}
