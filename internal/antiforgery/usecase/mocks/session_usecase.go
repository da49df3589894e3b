// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// CreateSession mocks the CreateSession method of SessionUseCase.
func (m *MockSessionUseCase) CreateSession(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// DeleteSession mocks the DeleteSession method of SessionUseCase.
func (m *MockSessionUseCase) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// GenerateToken mocks the GenerateToken method of SessionUseCase.
func (m *MockSessionUseCase) GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

// GenerateTokenWithEntropy mocks the GenerateTokenWithEntropy method of SessionUseCase.
func (m *MockSessionUseCase) GenerateTokenWithEntropy(
	ctx context.Context,
	sessionID uuid.UUID,
	entropy int,
) (string, error) {
	args := m.Called(ctx, sessionID, entropy)
	return args.String(0), args.Error(1)
}

// VerifyToken mocks the VerifyToken method of SessionUseCase.
func (m *MockSessionUseCase) VerifyToken(
	ctx context.Context,
	sessionID uuid.UUID,
	token string,
	remove bool,
) (bool, error) {
	args := m.Called(ctx, sessionID, token, remove)
	return args.Bool(0), args.Error(1)
}

// ClearTokens mocks the ClearTokens method of SessionUseCase.
func (m *MockSessionUseCase) ClearTokens(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// GetStats mocks the GetStats method of SessionUseCase.
func (m *MockSessionUseCase) GetStats(ctx context.Context, sessionID uuid.UUID) (*domain.SessionStats, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionStats), args.Error(1)
}
