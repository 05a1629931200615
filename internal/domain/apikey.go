// Package domain contains the core business entities for TaskVault.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIKey represents an issued API key for request authentication.
// Each user can hold multiple keys up to a configured limit.
type APIKey struct {
	// ID is the unique identifier for the key record.
	ID uuid.UUID `json:"id"`

	// Key is the opaque token presented by callers. Looked up by equality.
	Key string `json:"key"`

	// UserID is the ID of the user who owns this key.
	UserID uuid.UUID `json:"user_id"`

	// IsActive indicates whether the key can be used for authentication.
	// Independent of expiration: an inactive key is rejected even if not
	// expired, and an expired key is rejected even if active.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the key was issued.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the timestamp at which the key stops being valid.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAPIKey creates a new active APIKey for the given user.
// The token should be generated with the keygen package.
func NewAPIKey(userID uuid.UUID, token string, lifetime time.Duration) *APIKey {
	now := time.Now().UTC()
	return &APIKey{
		ID:        uuid.New(),
		Key:       token,
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}
}

// IsExpired returns true if the key's expiration is at or before now.
func (k *APIKey) IsExpired() bool {
	return !k.ExpiresAt.After(time.Now().UTC())
}

// IsValid returns true if the key is active and not expired.
func (k *APIKey) IsValid() bool {
	return k.IsActive && !k.IsExpired()
}
