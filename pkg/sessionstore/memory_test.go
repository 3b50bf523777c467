package sessionstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialite/pkg/sessionstore"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Hour, 0)
	defer store.Close()

	ctx := context.Background()

	t.Run("missing session", func(t *testing.T) {
		v, ok, err := store.Load(ctx, "nope", "key")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "sid1", "key", []byte("value")))

		v, ok, err := store.Load(ctx, "sid1", "key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("value"), v)

		_, ok, err = store.Load(ctx, "sid1", "other")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("data isolation", func(t *testing.T) {
		value := []byte("original")
		require.NoError(t, store.Save(ctx, "sid2", "key", value))
		value[0] = 'X'

		got, _, err := store.Load(ctx, "sid2", "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), got)

		got[0] = 'Y'
		again, _, err := store.Load(ctx, "sid2", "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), again)
	})

	t.Run("empty session id", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "", "key", nil), sessionstore.ErrEmptySessionID)
		_, _, err := store.Load(ctx, "", "key")
		assert.ErrorIs(t, err, sessionstore.ErrEmptySessionID)
	})
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Minute, 0)
	defer store.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", "key", []byte("v")))

	now = now.Add(30 * time.Second)
	_, ok, err := store.Load(ctx, "sid", "key")
	require.NoError(t, err)
	assert.True(t, ok, "session should still be alive")

	// A write slides the expiry window.
	require.NoError(t, store.Save(ctx, "sid", "other", []byte("v")))
	now = now.Add(45 * time.Second)
	_, ok, err = store.Load(ctx, "sid", "key")
	require.NoError(t, err)
	assert.True(t, ok, "write should extend the lifetime")

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Load(ctx, "sid", "key")
	require.NoError(t, err)
	assert.False(t, ok, "expired session should not be readable")
	assert.Equal(t, 0, store.Len(), "expired session should be dropped on read")
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Minute, 0)
	defer store.Close()

	now := time.Now()
	store.SetClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", "k", []byte("v")))
	now = now.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, "new", "k", []byte("v")))
	now = now.Add(20 * time.Second)

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 1, store.Len())

	_, ok, err := store.Load(ctx, "new", "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(10*time.Millisecond, 5*time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), "sid", "k", []byte("v")))
	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(0, 0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "sid"))

	_, ok, err := store.Load(ctx, "sid", "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, store.Delete(ctx, ""), sessionstore.ErrEmptySessionID)
}

func TestMemoryStore_DeleteKeys(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(0, 0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", "a", []byte("1")))
	require.NoError(t, store.Save(ctx, "sid", "b", []byte("2")))
	require.NoError(t, store.Delete(ctx, "sid", "a", "missing"))
	require.NoError(t, store.Delete(ctx, "unknown", "a"))

	_, ok, err := store.Load(ctx, "sid", "a")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := store.Load(ctx, "sid", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", string(v))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Minute, time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "sid", "k", []byte("v")))

	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "second close should be a no-op")

	assert.ErrorIs(t, store.Save(ctx, "sid", "k", []byte("v")), sessionstore.ErrStoreClosed)
	_, _, err := store.Load(ctx, "sid", "k")
	assert.ErrorIs(t, err, sessionstore.ErrStoreClosed)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Minute, time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := string(rune('a' + i%10))
			_ = store.Save(ctx, sid, "k", []byte{byte(i)})
			_, _, _ = store.Load(ctx, sid, "k")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
