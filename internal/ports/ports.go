package ports

// Package ports defines interfaces (hexagonal ports) for the client's
// side effects. Implementations live in internal/adapters and the
// rendering layer; orchestration in internal/gateway and
// internal/service.

import (
	"context"
	"errors"
)

// ErrNoCredential is returned by CredentialStore.Get when no
// credential is persisted.
var ErrNoCredential = errors.New("no credential stored")

// CredentialStore persists the single bearer credential so it survives
// a client restart. At most one credential exists at a time; Save
// replaces any previous value.
type CredentialStore interface {
	// Save persists the token with the store's configured expiry.
	Save(ctx context.Context, token string) error

	// Get returns the persisted token, or ErrNoCredential.
	Get(ctx context.Context) (string, error)

	// Delete removes the persisted token. Deleting an absent
	// credential is not an error.
	Delete(ctx context.Context) error
}

// Navigator is the navigation side-channel: the gateway and the route
// guard request redirects through it, and the rendering layer carries
// them out.
type Navigator interface {
	RedirectTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

// RedirectTo implements the Navigator interface.
func (f NavigatorFunc) RedirectTo(route string) {
	if f != nil {
		f(route)
	}
}

// SessionInvalidator drops in-memory session state after the transport
// detects a rejected credential. The persisted credential is already
// cleared by the time this runs.
type SessionInvalidator interface {
	Invalidate()
}
