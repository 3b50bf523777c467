package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

func TestBind(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	ctx := context.Background()

	alice := sessionstore.Bind(store, "alice")
	bob := sessionstore.Bind(store, "bob")

	require.NoError(t, alice.Set(ctx, socialite.KeyState, []byte("alice-state")))

	v, ok, err := alice.Get(ctx, socialite.KeyState)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice-state", string(v))

	_, ok, err = bob.Get(ctx, socialite.KeyState)
	require.NoError(t, err)
	assert.False(t, ok, "sessions must not share values")

	raw, ok, err := store.Load(ctx, "alice", "socialite:state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice-state", string(raw))
}

func TestBind_EmptySessionID(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(0, 0)
	defer store.Close()

	sess := sessionstore.Bind(store, "")
	assert.ErrorIs(t, sess.Set(context.Background(), socialite.KeyState, []byte("x")), sessionstore.ErrEmptySessionID)
	_, _, err := sess.Get(context.Background(), socialite.KeyState)
	assert.ErrorIs(t, err, sessionstore.ErrEmptySessionID)
}

func TestBind_Clear(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemoryStore(0, 0)
	defer store.Close()
	ctx := context.Background()

	sess := sessionstore.Bind(store, "sid")
	require.NoError(t, sess.Set(ctx, socialite.KeyState, []byte("state")))
	require.NoError(t, sess.Set(ctx, socialite.KeyCodeVerifier, []byte("verifier")))
	require.NoError(t, store.Save(ctx, "sid", "other", []byte("kept")))

	clearer, ok := sess.(sessionstore.Clearer)
	require.True(t, ok)
	require.NoError(t, clearer.Clear(ctx, socialite.KeyState, socialite.KeyCodeVerifier))

	for _, key := range []socialite.SessionKey{socialite.KeyState, socialite.KeyCodeVerifier} {
		_, ok, err := sess.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	_, ok, err := store.Load(ctx, "sid", "other")
	require.NoError(t, err)
	assert.True(t, ok)

	empty := sessionstore.Bind(store, "").(sessionstore.Clearer)
	assert.ErrorIs(t, empty.Clear(ctx, socialite.KeyState), sessionstore.ErrEmptySessionID)
}
