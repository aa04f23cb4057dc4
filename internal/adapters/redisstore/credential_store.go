// Package redisstore persists the bearer credential in Redis so the
// session survives a client restart, with the same fixed expiry a
// browser cookie would carry.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopfront/shopfront-go/internal/ports"
)

// DefaultTTL matches the storefront's 7-day credential cookie.
const DefaultTTL = 7 * 24 * time.Hour

// CredentialStore is a Redis-backed store for the single credential.
// Expiry is enforced by Redis TTL; a read after expiry behaves exactly
// like a read with nothing stored.
type CredentialStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// Ensure compile-time conformance to the port.
var _ ports.CredentialStore = (*CredentialStore)(nil)

// Options configures a CredentialStore.
type Options struct {
	// Client is the Redis connection. Required.
	Client redis.UniversalClient
	// Key is the storage key. Defaults to "shopfront:token".
	Key string
	// TTL is the credential lifetime. Defaults to DefaultTTL.
	TTL time.Duration
}

// New creates a CredentialStore.
func New(opts Options) (*CredentialStore, error) {
	if opts.Client == nil {
		return nil, errors.New("redis client is required")
	}
	key := opts.Key
	if key == "" {
		key = "shopfront:token"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CredentialStore{client: opts.Client, key: key, ttl: ttl}, nil
}

// Save implements the CredentialStore port. The TTL restarts on every
// save, so a fresh login always gets the full lifetime.
func (s *CredentialStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get implements the CredentialStore port.
func (s *CredentialStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoCredential
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", ports.ErrNoCredential
	}
	return token, nil
}

// Delete implements the CredentialStore port.
func (s *CredentialStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
