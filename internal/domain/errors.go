package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz document could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrUserNotFound is returned when an email or id resolves to no user.
	ErrUserNotFound = errors.New("user not found")
	// ErrResultNotFound indicates a missing result row.
	ErrResultNotFound = errors.New("result not found")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrValidation wraps any malformed-request failure.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned on a missing or mismatched internal token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrShuttingDown is returned when the background runner refuses new work.
	ErrShuttingDown = errors.New("server shutting down")
)
