package sessionstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every SessionStore must share.
func exerciseStore(t *testing.T, store portsrepo.SessionStore) {
	ctx := context.Background()
	id := uuid.NewString()

	_, err := store.FindSession(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.SaveSession(ctx, domain.Session{SessionID: id, UserID: 3, ExpiresAt: time.Now().Add(time.Minute)}))
	got, err := store.FindSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)

	require.NoError(t, store.DeleteSession(ctx, id))
	_, err = store.FindSession(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.DeleteSession(ctx, id))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, domain.Session{SessionID: "a", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	_, err := store.FindSession(ctx, "a")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = store.FindSession(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.SaveSession(ctx, domain.Session{SessionID: "b", UserID: 1, ExpiresAt: now.Add(time.Minute)}))
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.SaveSession(ctx, domain.Session{SessionID: "c", UserID: 2, ExpiresAt: now.Add(time.Minute)}))
	assert.NotContains(t, store.sessions, "b")
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := database.NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	defer client.Close()

	exerciseStore(t, NewRedisStore(client))

	err = NewRedisStore(client).SaveSession(context.Background(), domain.Session{SessionID: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Second)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
