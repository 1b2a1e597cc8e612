package repositories

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
)

// SessionStore keeps server-side session records.
type SessionStore interface {
	// SaveSession stores a session until its ExpiresAt.
	SaveSession(ctx context.Context, session domain.Session) error

	// FindSession returns the session, or apperrors.ErrNotFound if it is unknown or expired.
	FindSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// DeleteSession removes a session. Deleting an unknown session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error
}
