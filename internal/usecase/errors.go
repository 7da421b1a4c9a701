package usecase

import "errors"

// Error kinds surfaced to transports. Conflict is the retry-safe category:
// callers may re-fetch state and retry immediately because allocation is
// idempotent. Precondition marks operations invoked in the wrong state.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPrecondition          = errors.New("precondition failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
