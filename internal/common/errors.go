// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed or out-of-bounds input).
	ErrValidation = errors.New("validation error")

	// Auth errors. Token verification failures always map to ErrInvalidToken,
	// whatever the underlying cause, so callers cannot tell an expired token
	// from a forged one.
	ErrInvalidToken = errors.New("invalid token")
)
