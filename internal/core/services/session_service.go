package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/utils"
)

// sessionService pairs a signed token held by the client with a server-side record.
// A token is honoured only while its record exists, so logging out revokes it.
type sessionService struct {
	BaseService
	store  portsrepo.SessionStore
	secret string
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// SessionServiceOption is a functional option for configuring the session service
type SessionServiceOption func(*sessionService)

// WithSessionTTL sets how long a session stays valid.
func WithSessionTTL(ttl time.Duration) SessionServiceOption {
	return func(s *sessionService) {
		s.ttl = ttl
	}
}

// WithSessionIssuer sets the issuer claim of session tokens.
func WithSessionIssuer(issuer string) SessionServiceOption {
	return func(s *sessionService) {
		s.issuer = issuer
	}
}

// WithSessionClock overrides the time source.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates a session service storing records in store and signing
// tokens with secret.
func NewSessionService(store portsrepo.SessionStore, secret string, opts ...SessionServiceOption) portssvc.SessionSvcFacade {
	s := &sessionService{
		store:  store,
		secret: secret,
		ttl:    24 * time.Hour,
		issuer: "personal-finance-tracker",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) StartSession(ctx context.Context, user *domain.User) (string, time.Time, error) {
	sessionID, err := utils.NewSessionID()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate session id: %w", err)
	}
	expiresAt := s.now().Add(s.ttl)

	token, err := utils.GenerateJWT(user.UserID, sessionID, s.secret, s.ttl, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	session := domain.Session{
		SessionID: utils.HashToken(sessionID),
		UserID:    user.UserID,
		ExpiresAt: expiresAt,
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to store session", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	s.LogInfo(ctx, "Session started", slog.Int64("user_id", user.UserID))
	return token, expiresAt, nil
}

func (s *sessionService) ResolveSession(ctx context.Context, token string) (int64, error) {
	userID, sessionID, err := s.parse(token)
	if err != nil {
		return 0, err
	}

	session, err := s.store.FindSession(ctx, utils.HashToken(sessionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: session expired or revoked", apperrors.ErrUnauthorized)
		}
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return 0, fmt.Errorf("%w: session does not belong to token subject", apperrors.ErrUnauthorized)
	}
	return userID, nil
}

func (s *sessionService) EndSession(ctx context.Context, token string) error {
	_, sessionID, err := s.parse(token)
	if err != nil {
		// Nothing to revoke.
		return nil
	}
	if err := s.store.DeleteSession(ctx, utils.HashToken(sessionID)); err != nil {
		s.LogError(ctx, err, "Failed to delete session")
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (s *sessionService) parse(token string) (int64, string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	userID, sessionID, err := utils.SessionClaims(claims)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	return userID, sessionID, nil
}
