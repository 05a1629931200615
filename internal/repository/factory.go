package repository

import (
	"context"
)

// Repositories holds all repository instances.
type Repositories struct {
	User   UserRepository
	APIKey APIKeyRepository
	Todo   TodoRepository
}

// DatabaseHealth is an interface for database health checks.
// This interface satisfies handler.DatabaseChecker for health endpoints.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
