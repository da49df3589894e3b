// Package usecase implements business logic orchestration for anti-forgery sessions.
package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
	"github.com/allisson/antiforgery/internal/config"
)

// sessionUseCase implements SessionUseCase with an in-memory session map.
// The map is the host object that owns each registry; it is not a persistence
// layer and all sessions are lost on restart.
type sessionUseCase struct {
	config     *config.Config
	randSource io.Reader

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewSessionUseCase creates a new SessionUseCase backed by an in-memory
// session map. Registry defaults (entropy, maximum) come from the config.
func NewSessionUseCase(cfg *config.Config) SessionUseCase {
	return &sessionUseCase{
		config:   cfg,
		sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// NewSessionUseCaseWithRand is like NewSessionUseCase but injects the random
// byte source used by every registry, enabling deterministic tests without
// weakening production randomness.
func NewSessionUseCaseWithRand(cfg *config.Config, randSource io.Reader) SessionUseCase {
	return &sessionUseCase{
		config:     cfg,
		randSource: randSource,
		sessions:   make(map[uuid.UUID]*domain.Session),
	}
}

// CreateSession creates a session with an empty bounded registry.
func (s *sessionUseCase) CreateSession(ctx context.Context) (*domain.Session, error) {
	opts := []domain.Option{
		domain.WithEntropy(s.config.TokenEntropyBytes),
		domain.WithMaximum(s.config.TokenMaximum),
	}
	if s.randSource != nil {
		opts = append(opts, domain.WithRandSource(s.randSource))
	}

	registry, err := domain.NewRegistry(opts...)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		Registry:  registry,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.SessionLimit > 0 && len(s.sessions) >= s.config.SessionLimit {
		return nil, domain.ErrSessionLimitReached
	}
	s.sessions[session.ID] = session

	return session, nil
}

// DeleteSession drops the session and its registry.
func (s *sessionUseCase) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)

	return nil
}

// GenerateToken generates a token with the session registry's default entropy.
func (s *sessionUseCase) GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}
	return session.Registry.Generate()
}

// GenerateTokenWithEntropy generates a token with a per-call entropy override.
func (s *sessionUseCase) GenerateTokenWithEntropy(
	ctx context.Context,
	sessionID uuid.UUID,
	entropy int,
) (string, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}
	return session.Registry.GenerateWithEntropy(entropy)
}

// VerifyToken matches token against the session's registry.
func (s *sessionUseCase) VerifyToken(
	ctx context.Context,
	sessionID uuid.UUID,
	token string,
	remove bool,
) (bool, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return false, err
	}
	return session.Registry.Verify(token, remove), nil
}

// ClearTokens removes every token from the session's registry.
func (s *sessionUseCase) ClearTokens(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	session.Registry.Clear()
	return nil
}

// GetStats returns a snapshot of the session's registry.
func (s *sessionUseCase) GetStats(ctx context.Context, sessionID uuid.UUID) (*domain.SessionStats, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &domain.SessionStats{
		Size:    session.Registry.Size(),
		Empty:   session.Registry.IsEmpty(),
		Entropy: session.Registry.Entropy(),
		Maximum: session.Registry.Maximum(),
	}, nil
}

// getSession looks up a session by ID under the read lock.
func (s *sessionUseCase) getSession(sessionID uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
