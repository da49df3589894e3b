// Package http provides HTTP handlers and middleware for anti-forgery sessions.
// The token registry itself has no wire format; this layer only translates
// requests into the five registry operations exposed by the use case.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/antiforgery/internal/antiforgery/http/dto"
	"github.com/allisson/antiforgery/internal/antiforgery/usecase"
	"github.com/allisson/antiforgery/internal/httputil"
	customValidation "github.com/allisson/antiforgery/internal/validation"
)

// SessionHandler handles HTTP requests for session and token operations.
type SessionHandler struct {
	sessionUseCase usecase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase usecase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a new session with an empty token registry.
// POST /v1/sessions - Returns 201 Created with the session ID.
func (h *SessionHandler) CreateHandler(c *gin.Context) {
	session, err := h.sessionUseCase.CreateSession(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSessionToResponse(session))
}

// DeleteHandler drops a session and its registry.
// DELETE /v1/sessions/:id - Returns 204 No Content.
func (h *SessionHandler) DeleteHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionUseCase.DeleteSession(c.Request.Context(), sessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTokenHandler generates and registers a new token in the session.
// POST /v1/sessions/:id/tokens - Returns 201 Created with the token.
// An optional JSON body {"entropy": N} overrides the configured byte length.
func (h *SessionHandler) GenerateTokenHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req dto.GenerateTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		if err := req.Validate(); err != nil {
			httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
			return
		}
	}

	var token string
	var err error
	if req.Entropy > 0 {
		token, err = h.sessionUseCase.GenerateTokenWithEntropy(c.Request.Context(), sessionID, req.Entropy)
	} else {
		token, err = h.sessionUseCase.GenerateToken(c.Request.Context(), sessionID)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// VerifyTokenHandler matches a presented token against the session's registry.
// POST /v1/sessions/:id/verify - Returns 200 OK with the verification outcome.
// A mismatch is a normal {"valid": false} response, not an error status.
func (h *SessionHandler) VerifyTokenHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req dto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	remove := !req.Keep
	valid, err := h.sessionUseCase.VerifyToken(c.Request.Context(), sessionID, req.Token, remove)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyTokenResponse{
		Valid:   valid,
		Removed: valid && remove,
	})
}

// ClearTokensHandler removes every token from the session's registry.
// DELETE /v1/sessions/:id/tokens - Returns 204 No Content.
func (h *SessionHandler) ClearTokensHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionUseCase.ClearTokens(c.Request.Context(), sessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// StatsHandler returns a snapshot of the session's registry.
// GET /v1/sessions/:id/stats - Returns 200 OK with size, empty, entropy, maximum.
func (h *SessionHandler) StatsHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	stats, err := h.sessionUseCase.GetStats(c.Request.Context(), sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats))
}

// sessionID parses the :id URL parameter, writing a 400 response on failure.
func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid session id: %w", err), h.logger)
		return uuid.Nil, false
	}
	return sessionID, true
}
