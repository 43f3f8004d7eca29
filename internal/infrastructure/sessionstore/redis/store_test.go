// Package redis_test provides unit tests for the Redis session store.
package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/supporthub/chat-routing-service/internal/domain/errors"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
	redisstore "github.com/supporthub/chat-routing-service/internal/infrastructure/sessionstore/redis"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *redisstore.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	store, err := redisstore.NewStore(redisstore.Config{
		Host:     mr.Host(),
		Port:     mr.Port(),
		Password: "",
		DB:       0,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close(context.Background())
		mr.Close()
	})

	return mr, store
}

func newTestSession(t *testing.T) *models.ChatSession {
	t.Helper()
	return models.NewChatSession(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
}

func TestNewStore_ConnectionFailure(t *testing.T) {
	_, err := redisstore.NewStore(redisstore.Config{
		Host: "localhost",
		Port: "1", // Nothing listens here.
	})

	assert.Error(t, err)
}

func TestStore_AddAndGet(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()
	session := newTestSession(t)

	require.NoError(t, store.Add(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, models.StatusQueued, got.Status)
	assert.True(t, session.RequestTime.Equal(got.RequestTime))
}

func TestStore_AddDuplicate(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()
	session := newTestSession(t)

	require.NoError(t, store.Add(ctx, session))
	err := store.Add(ctx, session)

	assert.ErrorIs(t, err, domainerrors.ErrSessionExists)
}

func TestStore_GetMissing(t *testing.T) {
	_, store := setupStore(t)

	got, err := store.Get(context.Background(), newTestSession(t).ID)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Update(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, store.Add(ctx, session))

	session.Status = models.StatusInactive
	require.NoError(t, store.Update(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusInactive, got.Status)
}

func TestStore_UpdateUpsertsMissing(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()
	session := newTestSession(t)

	require.NoError(t, store.Update(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStore_GetAll(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	want := make(map[string]bool)
	for i := 0; i < 5; i++ {
		session := newTestSession(t)
		require.NoError(t, store.Add(ctx, session))
		want[session.ID.String()] = true
	}

	sessions, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 5)
	for _, session := range sessions {
		assert.True(t, want[session.ID.String()])
	}
}

func TestStore_GetAllEmpty(t *testing.T) {
	_, store := setupStore(t)

	sessions, err := store.GetAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_GetAllIgnoresForeignKeys(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, store.Add(ctx, session))
	require.NoError(t, mr.Set("unrelated:key", "value"))

	sessions, err := store.GetAll(ctx)

	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestStore_Ping(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	mr.Close()
	assert.Error(t, store.Ping(ctx))
}
