package services

import (
	"context"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
)

// SessionSvcFacade manages login sessions.
type SessionSvcFacade interface {
	// StartSession creates a server-side session for the user and returns the signed
	// token the client presents on later requests.
	StartSession(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ResolveSession validates a token and returns the user ID of its live session.
	// Returns apperrors.ErrUnauthorized for bad, expired or revoked tokens.
	ResolveSession(ctx context.Context, token string) (int64, error)

	// EndSession revokes the session behind a token. Unknown tokens are ignored.
	EndSession(ctx context.Context, token string) error
}
