// Package repository defines data access interfaces for TaskVault.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username (case-sensitive).
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// =============================================================================
// API Key Repository
// =============================================================================

// APIKeyRepository defines the interface for API key data access.
type APIKeyRepository interface {
	// Create creates a new API key record.
	Create(ctx context.Context, key *domain.APIKey) error

	// GetByID retrieves an API key by record ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error)

	// GetByKey retrieves an API key by its token. This is the primary
	// lookup used by the authentication middleware.
	GetByKey(ctx context.Context, token string) (*domain.APIKey, error)

	// ListByUserID returns all API keys for a user. Order is not guaranteed.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error)

	// CountByUserID returns the number of key records for a user.
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)

	// UpdateIsActive persists a new active flag for the key record.
	UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error
}

// =============================================================================
// Todo Repository
// =============================================================================

// TodoRepository defines the interface for to-do item data access.
// All reads are scoped to an owning user.
type TodoRepository interface {
	// Create creates a new to-do item.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a to-do item by ID, scoped to the owner.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error)

	// ListByUserID returns all to-do items for a user.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error)

	// Update updates an existing to-do item.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete deletes a to-do item by ID, scoped to the owner.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
