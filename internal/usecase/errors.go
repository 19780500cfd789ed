package usecase

import "errors"

// Sentinel errors returned by services. Callers classify failures with
// errors.Is; the HTTP layer maps each sentinel to a response status.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("concurrent modification conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
