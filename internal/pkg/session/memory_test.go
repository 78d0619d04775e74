package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, "abc", 9, time.Hour))

	userID, err := store.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(9), userID)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Lookup(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	start := time.Now()
	store.now = func() time.Time { return start }

	require.NoError(t, store.Create(ctx, "abc", 1, time.Minute))

	store.now = func() time.Time { return start.Add(time.Minute) }
	_, err := store.Lookup(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreSweepsExpiredOnCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	start := time.Now()
	store.now = func() time.Time { return start }

	require.NoError(t, store.Create(ctx, "stale", 1, time.Minute))
	require.NoError(t, store.Create(ctx, "live", 2, time.Hour))

	store.now = func() time.Time { return start.Add(2 * time.Minute) }
	require.NoError(t, store.Create(ctx, "fresh", 3, time.Hour))

	store.mu.Lock()
	_, staleKept := store.sessions["stale"]
	remaining := len(store.sessions)
	store.mu.Unlock()

	assert.False(t, staleKept)
	assert.Equal(t, 2, remaining)
}
