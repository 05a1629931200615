// Package domain contains the core business entities for TaskVault.
package domain

import (
	"errors"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ===========================================
	// API Key Errors
	// ===========================================

	// ErrAPIKeyNotFound indicates the requested API key does not exist.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrAPIKeyInactive indicates the API key is disabled.
	ErrAPIKeyInactive = errors.New("api key is not active")

	// ErrAPIKeyExpired indicates the API key has expired.
	ErrAPIKeyExpired = errors.New("api key is expired")

	// ===========================================
	// Todo Errors
	// ===========================================

	// ErrTodoNotFound indicates the requested to-do item does not exist
	// for the requesting owner.
	ErrTodoNotFound = errors.New("todo item not found")

	// ErrInvalidDifficulty indicates the difficulty value is out of range.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)
