package dto

import (
	"github.com/allisson/antiforgery/internal/antiforgery/domain"
)

// MapSessionToResponse converts a domain Session to a SessionResponse DTO.
// Only the session identity is exposed; the registry stays internal.
func MapSessionToResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		SessionID: session.ID.String(),
		CreatedAt: session.CreatedAt,
	}
}

// MapStatsToResponse converts domain SessionStats to a StatsResponse DTO.
func MapStatsToResponse(stats *domain.SessionStats) StatsResponse {
	return StatsResponse{
		Size:    stats.Size,
		Empty:   stats.Empty,
		Entropy: stats.Entropy,
		Maximum: stats.Maximum,
	}
}
