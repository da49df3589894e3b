package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/antiforgery/internal/antiforgery/domain"
	"github.com/allisson/antiforgery/internal/antiforgery/usecase"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// expectOperation registers counter and histogram expectations for one call.
func (m *mockBusinessMetrics) expectOperation(ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "antiforgery", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "antiforgery", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateSession success", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(usecase.NewSessionUseCase(testConfig()), mockMetrics)

		mockMetrics.expectOperation(ctx, "session_create", "success")

		session, err := uc.CreateSession(ctx)
		require.NoError(t, err)
		assert.NotNil(t, session)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GenerateToken success and error", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(usecase.NewSessionUseCase(testConfig()), mockMetrics)

		mockMetrics.expectOperation(ctx, "session_create", "success")
		session, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		mockMetrics.expectOperation(ctx, "token_generate", "success")
		_, err = uc.GenerateToken(ctx, session.ID)
		require.NoError(t, err)

		mockMetrics.expectOperation(ctx, "token_generate", "error")
		_, err = uc.GenerateToken(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		mockMetrics.AssertExpectations(t)
	})

	t.Run("VerifyToken mismatch is still a metrics success", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(usecase.NewSessionUseCase(testConfig()), mockMetrics)

		mockMetrics.expectOperation(ctx, "session_create", "success")
		session, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		mockMetrics.expectOperation(ctx, "token_verify", "success")
		valid, err := uc.VerifyToken(ctx, session.ID, "unknown-token", true)
		require.NoError(t, err)
		assert.False(t, valid)

		mockMetrics.AssertExpectations(t)
	})

	t.Run("ClearTokens and GetStats and DeleteSession", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(usecase.NewSessionUseCase(testConfig()), mockMetrics)

		mockMetrics.expectOperation(ctx, "session_create", "success")
		session, err := uc.CreateSession(ctx)
		require.NoError(t, err)

		mockMetrics.expectOperation(ctx, "tokens_clear", "success")
		require.NoError(t, uc.ClearTokens(ctx, session.ID))

		mockMetrics.expectOperation(ctx, "stats_get", "success")
		stats, err := uc.GetStats(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, stats.Empty)

		mockMetrics.expectOperation(ctx, "session_delete", "success")
		require.NoError(t, uc.DeleteSession(ctx, session.ID))

		mockMetrics.AssertExpectations(t)
	})
}
