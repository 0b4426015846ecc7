// Package common defines sentinel errors shared across the Luxopay backend.
// Callers match these values with errors.Is; request-level code maps them to
// HTTP statuses in one place.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Request-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidToken = errors.New("invalid token")

	// ErrorNotConfigured marks missing secrets or provider credentials.
	// It is a deployment problem, not a request problem, and is kept
	// distinguishable from the request-level errors above.
	ErrorNotConfigured = errors.New("not configured")

	// ErrorProvider wraps failures reported by an external payment provider.
	// The provider's own message travels with the wrap.
	ErrorProvider = errors.New("provider error")

	ErrorInternal = errors.New("internal error")
)
