// Package api provides typed, stateless wrappers over the storefront
// REST surface. They are thin pass-throughs: classification and side
// effects already happened in the gateway by the time an error
// reaches a caller.
package api

import (
	"context"

	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/domain/session"
	"github.com/shopfront/shopfront-go/internal/gateway"
)

// Auth wraps the /auth endpoints that carry no session state. The
// stateful operations (login, logout, profile lifecycle) live in the
// session manager, which owns their side effects.
type Auth struct {
	client *gateway.Client
}

// NewAuth creates an Auth wrapper.
func NewAuth(client *gateway.Client) *Auth {
	return &Auth{client: client}
}

// Register creates an account and returns the created user.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) (*session.UserProfile, error) {
	var created session.UserProfile
	if err := a.client.Post(ctx, "/auth/register", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Me fetches the current user's profile.
func (a *Auth) Me(ctx context.Context) (*session.UserProfile, error) {
	var profile session.UserProfile
	if err := a.client.Get(ctx, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe sends a partial profile update and returns the server's
// full representation.
func (a *Auth) UpdateMe(ctx context.Context, update model.UserUpdate) (*session.UserProfile, error) {
	var profile session.UserProfile
	if err := a.client.Put(ctx, "/auth/me", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword verifies the old password and sets a new one.
func (a *Auth) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return a.client.Post(ctx, "/auth/change-password", model.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}
