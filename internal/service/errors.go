// Package service provides business logic services for TaskVault.
package service

import "errors"

// Common service errors.
var (
	// User errors
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidPassword = errors.New("invalid password: must be at least 8 characters")
	ErrInvalidUsername = errors.New("invalid username: must be 3-255 characters")

	// API key errors
	ErrKeyLimitReached = errors.New("maximum number of api keys reached")

	// Todo errors
	ErrInvalidTitle = errors.New("invalid title: must not be empty")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
