package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/core/services"
	"github.com/SscSPs/personal_finance_tracker/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := new(MockSessionStore)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewSessionService(store, "secret",
		services.WithSessionTTL(time.Hour),
		services.WithSessionClock(func() time.Time { return now }))

	var saved domain.Session
	store.On("SaveSession", ctx, mock.AnythingOfType("domain.Session")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Session)
	}).Return(nil).Once()

	token, expiresAt, err := svc.StartSession(ctx, &domain.User{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)
	assert.Equal(t, int64(5), saved.UserID)
	assert.Equal(t, expiresAt, saved.ExpiresAt)

	// The store holds a digest of the session id, never the id carried by the token.
	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(claims.ID), saved.SessionID)

	store.On("FindSession", ctx, saved.SessionID).Return(&saved, nil).Once()
	userID, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), userID)

	store.On("DeleteSession", ctx, saved.SessionID).Return(nil).Once()
	require.NoError(t, svc.EndSession(ctx, token))

	store.On("FindSession", ctx, saved.SessionID).Return(nil, apperrors.ErrNotFound).Once()
	_, err = svc.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	store.AssertExpectations(t)
}

func TestSessionService_RejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	store := new(MockSessionStore)
	svc := services.NewSessionService(store, "secret")

	_, err := svc.ResolveSession(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	forged, err := utils.GenerateJWT(5, "sid", "other-secret", time.Hour, "x")
	require.NoError(t, err)
	_, err = svc.ResolveSession(ctx, forged)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// EndSession on garbage is a no-op.
	assert.NoError(t, svc.EndSession(ctx, "not-a-jwt"))
	store.AssertNotCalled(t, "FindSession", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
}

func TestSessionService_SubjectMismatch(t *testing.T) {
	ctx := context.Background()
	store := new(MockSessionStore)
	svc := services.NewSessionService(store, "secret")

	token, err := utils.GenerateJWT(5, "sid", "secret", time.Hour, "x")
	require.NoError(t, err)
	store.On("FindSession", ctx, utils.HashToken("sid")).Return(&domain.Session{UserID: 6}, nil).Once()

	_, err = svc.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockSessionStore)
	svc := services.NewSessionService(store, "secret")

	store.On("SaveSession", ctx, mock.Anything).Return(assert.AnError).Once()
	_, _, err := svc.StartSession(ctx, &domain.User{UserID: 1})
	assert.ErrorIs(t, err, assert.AnError)

	token, err := utils.GenerateJWT(1, "sid", "secret", time.Hour, "x")
	require.NoError(t, err)
	store.On("FindSession", ctx, mock.Anything).Return(nil, assert.AnError).Once()
	_, err = svc.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}
