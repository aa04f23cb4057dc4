// Package memstore provides an in-memory CredentialStore for
// development and tests. Nothing survives a process restart.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/shopfront/shopfront-go/internal/ports"
)

// CredentialStore holds the single credential in memory, honouring the
// same TTL semantics as the persistent store.
type CredentialStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// Ensure compile-time conformance to the port.
var _ ports.CredentialStore = (*CredentialStore)(nil)

// New creates a CredentialStore. A non-positive ttl means the
// credential never expires.
func New(ttl time.Duration) *CredentialStore {
	return &CredentialStore{ttl: ttl, now: time.Now}
}

// NewWithClock creates a CredentialStore with an injectable clock for
// expiry tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *CredentialStore {
	return &CredentialStore{ttl: ttl, now: now}
}

// Save implements the CredentialStore port.
func (s *CredentialStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.ttl > 0 {
		s.expiresAt = s.now().Add(s.ttl)
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}

// Get implements the CredentialStore port.
func (s *CredentialStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ports.ErrNoCredential
	}
	if !s.expiresAt.IsZero() && s.now().After(s.expiresAt) {
		s.token = ""
		return "", ports.ErrNoCredential
	}
	return s.token, nil
}

// Delete implements the CredentialStore port.
func (s *CredentialStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
