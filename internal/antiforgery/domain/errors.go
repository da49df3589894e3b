package domain

import (
	"github.com/allisson/antiforgery/internal/errors"
)

// Session management errors.
var (
	// ErrSessionNotFound indicates a session with the specified ID was not found.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrSessionLimitReached indicates the process-wide session cap was hit.
	ErrSessionLimitReached = errors.Wrap(errors.ErrConflict, "session limit reached")
)
