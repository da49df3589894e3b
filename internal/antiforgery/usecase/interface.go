// Package usecase defines business logic interfaces for anti-forgery session operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
)

// SessionUseCase defines business logic operations for session-scoped token
// registries. Each session owns one bounded registry; all token state lives
// in memory and dies with the process.
type SessionUseCase interface {
	// CreateSession creates a new session with an empty token registry.
	// Returns ErrSessionLimitReached if the process-wide session cap is hit.
	CreateSession(ctx context.Context) (*domain.Session, error)

	// DeleteSession drops a session and its registry.
	// Returns ErrSessionNotFound if the session does not exist.
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	// GenerateToken generates and registers a new token in the session's
	// registry using the configured entropy, evicting the oldest token
	// when at capacity.
	GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error)

	// GenerateTokenWithEntropy generates a token from the given number of
	// random bytes instead of the configured default.
	GenerateTokenWithEntropy(ctx context.Context, sessionID uuid.UUID, entropy int) (string, error)

	// VerifyToken reports whether token is registered in the session's
	// registry. When remove is true a successful match consumes the token.
	// A false result is a normal outcome, not an error; errors are reserved
	// for unknown sessions.
	VerifyToken(ctx context.Context, sessionID uuid.UUID, token string, remove bool) (bool, error)

	// ClearTokens removes all tokens from the session's registry.
	ClearTokens(ctx context.Context, sessionID uuid.UUID) error

	// GetStats returns a snapshot of the session's registry.
	GetStats(ctx context.Context, sessionID uuid.UUID) (*domain.SessionStats, error)
}
