package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequireSession creates a Gin middleware handler that resolves the caller's session
// from a Bearer token or the session cookie. On success the user ID is stored in the
// request context and added to the request logger; otherwise onUnauthenticated runs
// and the chain is aborted.
func RequireSession(sessionSvc services.SessionSvcFacade, cookieName string, onUnauthenticated gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		token := SessionToken(c, cookieName)
		if token == "" {
			logger.Debug("No session token presented")
			onUnauthenticated(c)
			c.Abort()
			return
		}

		userID, err := sessionSvc.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Error("Failed to resolve session", slog.String("error", err.Error()))
			} else {
				logger.Warn("Rejected session token", slog.String("error", err.Error()))
			}
			onUnauthenticated(c)
			c.Abort()
			return
		}

		setUserID(c, userID)
		SetLogger(c, logger.With(slog.Int64("user_id", userID)))

		c.Next()
	}
}

// SessionToken extracts the session token from the Authorization header or, failing
// that, from the session cookie. It returns "" if neither is present.
func SessionToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// AbortUnauthorizedJSON answers 401 with a JSON error body.
func AbortUnauthorizedJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
}

// RedirectTo returns a handler that redirects unauthenticated page requests to location.
func RedirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, location)
	}
}
