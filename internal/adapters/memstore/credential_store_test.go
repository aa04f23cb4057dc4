package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_SaveGetDelete(t *testing.T) {
	store := New(0)
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	require.NoError(t, store.Save(ctx, "tok-1"))
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// Save replaces any previous value.
	require.NoError(t, store.Save(ctx, "tok-2"))
	tok, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)

	require.NoError(t, store.Delete(ctx))
	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	// Deleting an absent credential is not an error.
	require.NoError(t, store.Delete(ctx))
}

func TestCredentialStore_Expiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := NewWithClock(7*24*time.Hour, clock)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok"))

	now = now.Add(6 * 24 * time.Hour)
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	now = now.Add(2 * 24 * time.Hour)
	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}
