// Package auth provides API key authentication for identity-scoped routes.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	// UserID is the owner of the presented API key.
	UserID uuid.UUID

	// KeyID is the record ID of the presented API key.
	KeyID uuid.UUID
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityContextKey is the context key for storing the caller identity.
const identityContextKey contextKey = "auth_identity"

// ContextWithIdentity adds the caller identity to the context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the caller identity from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// MustIdentityFromContext retrieves the caller identity from the context.
// Panics if not present (use only behind the key middleware).
func MustIdentityFromContext(ctx context.Context) *Identity {
	identity := IdentityFromContext(ctx)
	if identity == nil {
		panic("auth identity not found - ensure key middleware is applied")
	}
	return identity
}
