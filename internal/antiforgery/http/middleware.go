package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/antiforgery/internal/antiforgery/usecase"
	customErrors "github.com/allisson/antiforgery/internal/errors"
	"github.com/allisson/antiforgery/internal/httputil"
)

const (
	// SessionHeader carries the session ID the presented token belongs to.
	SessionHeader = "X-Antiforgery-Token-Session"
	// TokenHeader carries the anti-forgery token itself.
	TokenHeader = "X-Antiforgery-Token"
	// TokenFormField is the form field consulted when TokenHeader is absent.
	TokenFormField = "_antiforgery"
)

// RequireTokenMiddleware rejects requests that do not present a valid
// single-use anti-forgery token. The token is read from the TokenHeader
// header or, failing that, the TokenFormField form field, and is consumed
// on success so a replayed request fails. Every rejection is a plain 401;
// the response never reveals whether the session exists.
func RequireTokenMiddleware(sessionUseCase usecase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := uuid.Parse(c.GetHeader(SessionHeader))
		if err != nil {
			httputil.HandleErrorGin(c, customErrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := c.GetHeader(TokenHeader)
		if token == "" {
			token = c.PostForm(TokenFormField)
		}
		if token == "" {
			httputil.HandleErrorGin(c, customErrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		valid, err := sessionUseCase.VerifyToken(c.Request.Context(), sessionID, token, true)
		if err != nil || !valid {
			if err != nil && !customErrors.Is(err, customErrors.ErrNotFound) {
				logger.Error("anti-forgery token verification failed", "error", err)
			}
			httputil.HandleErrorGin(c, customErrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
