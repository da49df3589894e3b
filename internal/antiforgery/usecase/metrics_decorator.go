package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
	"github.com/allisson/antiforgery/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "antiforgery", operation, status)
	s.metrics.RecordDuration(ctx, "antiforgery", operation, time.Since(start), status)
}

// CreateSession records metrics for session creation operations.
func (s *sessionUseCaseWithMetrics) CreateSession(ctx context.Context) (*domain.Session, error) {
	start := time.Now()
	session, err := s.next.CreateSession(ctx)
	s.record(ctx, "session_create", start, err)
	return session, err
}

// DeleteSession records metrics for session deletion operations.
func (s *sessionUseCaseWithMetrics) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	start := time.Now()
	err := s.next.DeleteSession(ctx, sessionID)
	s.record(ctx, "session_delete", start, err)
	return err
}

// GenerateToken records metrics for token generation operations.
func (s *sessionUseCaseWithMetrics) GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error) {
	start := time.Now()
	token, err := s.next.GenerateToken(ctx, sessionID)
	s.record(ctx, "token_generate", start, err)
	return token, err
}

// GenerateTokenWithEntropy records metrics for token generation with entropy override.
func (s *sessionUseCaseWithMetrics) GenerateTokenWithEntropy(
	ctx context.Context,
	sessionID uuid.UUID,
	entropy int,
) (string, error) {
	start := time.Now()
	token, err := s.next.GenerateTokenWithEntropy(ctx, sessionID, entropy)
	s.record(ctx, "token_generate", start, err)
	return token, err
}

// VerifyToken records metrics for token verification operations. A token
// mismatch is still a "success" at the metrics level since verify returning
// false is a normal outcome, not an error.
func (s *sessionUseCaseWithMetrics) VerifyToken(
	ctx context.Context,
	sessionID uuid.UUID,
	token string,
	remove bool,
) (bool, error) {
	start := time.Now()
	valid, err := s.next.VerifyToken(ctx, sessionID, token, remove)
	s.record(ctx, "token_verify", start, err)
	return valid, err
}

// ClearTokens records metrics for registry clear operations.
func (s *sessionUseCaseWithMetrics) ClearTokens(ctx context.Context, sessionID uuid.UUID) error {
	start := time.Now()
	err := s.next.ClearTokens(ctx, sessionID)
	s.record(ctx, "tokens_clear", start, err)
	return err
}

// GetStats records metrics for registry stats reads.
func (s *sessionUseCaseWithMetrics) GetStats(ctx context.Context, sessionID uuid.UUID) (*domain.SessionStats, error) {
	start := time.Now()
	stats, err := s.next.GetStats(ctx, sessionID)
	s.record(ctx, "stats_get", start, err)
	return stats, err
}
