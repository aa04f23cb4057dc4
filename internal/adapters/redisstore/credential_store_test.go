package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/shopfront/shopfront-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a store with a unique key so parallel test runs
// cannot collide.
func newTestStore(t *testing.T, ttl time.Duration) *CredentialStore {
	t.Helper()

	client := testutil.SetupTestRedis(t)
	key := "shopfront:test:token:" + uuid.NewString()
	store, err := New(Options{Client: client, Key: key, TTL: ttl})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = client.Del(ctx, key).Err()
	})
	return store
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestCredentialStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-abc"))

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)
}

func TestCredentialStore_SaveReplacesPrevious(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)
}

func TestCredentialStore_GetAbsent(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCredentialStore_Delete(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok"))
	require.NoError(t, store.Delete(ctx))

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx))
}

func TestCredentialStore_SaveEmptyToken(t *testing.T) {
	store := newTestStore(t, 0)
	require.Error(t, store.Save(context.Background(), ""))
}

func TestCredentialStore_TTLExpiry(t *testing.T) {
	store := newTestStore(t, time.Second)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived"))

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "short-lived", tok)

	time.Sleep(1100 * time.Millisecond)

	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}
