// Package authsession owns the credential and user-profile lifecycle:
// a state machine over anonymous, profile-pending, and profile-loaded,
// with the credential persisted across restarts.
package authsession

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/domain/session"
	apperrors "github.com/shopfront/shopfront-go/internal/errors"
	"github.com/shopfront/shopfront-go/internal/gateway"
	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/shopfront/shopfront-go/internal/validation"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Endpoint paths on the auth surface.
const (
	loginPath          = "/auth/login"
	registerPath       = "/auth/register"
	profilePath        = "/auth/me"
	changePasswordPath = "/auth/change-password"
)

// Options bundles dependencies for NewManager.
type Options struct {
	// Client is the gateway client; all traffic flows through it.
	Client *gateway.Client

	// Credentials persists the bearer token.
	Credentials ports.CredentialStore

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Manager is the auth session state machine. All public operations are
// safe for concurrent use; compound sequences spanning a network round
// trip are not transactions (a logout during an in-flight update races
// benignly, see setProfile).
type Manager struct {
	client *gateway.Client
	creds  ports.CredentialStore
	logger *slog.Logger

	mu      sync.Mutex
	cred    session.Credential
	profile *session.UserProfile

	group singleflight.Group

	subMu   sync.Mutex
	subs    map[int]func(session.Snapshot)
	nextSub int
}

// Ensure compile-time conformance to the invalidation port.
var _ ports.SessionInvalidator = (*Manager)(nil)

// NewManager creates a Manager in the anonymous state.
func NewManager(opts Options) (*Manager, error) {
	if opts.Client == nil {
		return nil, errors.New("gateway client is required")
	}
	if opts.Credentials == nil {
		return nil, errors.New("CredentialStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		client: opts.Client,
		creds:  opts.Credentials,
		logger: logger,
		subs:   make(map[int]func(session.Snapshot)),
	}, nil
}

// Snapshot returns an immutable view of the session.
func (m *Manager) Snapshot() session.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Login exchanges credentials for a bearer token (OAuth2 password
// grant through the gateway, so failure classification and side
// effects apply as on any other call). On success the session is
// authenticated immediately; the profile fetch that follows may fail
// without demoting the session back to anonymous.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	cfg := oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  m.client.Resolve(loginPath),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.client.HTTPClient())

	tok, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return classifyTokenError(err)
	}

	m.mu.Lock()
	m.cred = session.Credential{Token: tok.AccessToken, IssuedAt: time.Now()}
	m.profile = nil
	m.mu.Unlock()

	if err := m.creds.Save(ctx, tok.AccessToken); err != nil {
		// The in-memory session stays valid; only restart survival is lost.
		m.logger.WarnContext(ctx, "persist credential failed", "error", err)
	}
	m.notify()

	m.fetchProfileLogged(ctx)
	return nil
}

// InitAuth restores a persisted session at process start. With a
// stored credential it enters profile-pending and attempts the profile
// fetch; without one it stays anonymous.
func (m *Manager) InitAuth(ctx context.Context) {
	token, err := m.creds.Get(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoCredential) {
			m.logger.WarnContext(ctx, "read persisted credential failed", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.cred = session.Credential{Token: token}
	m.profile = nil
	m.mu.Unlock()
	m.notify()

	m.fetchProfileLogged(ctx)
}

// Logout clears the session synchronously and removes the persisted
// credential. The cart is deliberately left untouched.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.cred = session.Credential{}
	m.profile = nil
	m.mu.Unlock()

	if err := m.creds.Delete(ctx); err != nil {
		m.logger.WarnContext(ctx, "delete persisted credential failed", "error", err)
	}
	m.notify()
}

// Invalidate implements ports.SessionInvalidator: the gateway calls it
// after a 401 has already cleared the persisted credential.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cred = session.Credential{}
	m.profile = nil
	m.mu.Unlock()
	m.notify()
}

// LoadProfile fetches the user profile and replaces the stored one
// wholesale. Concurrent calls share a single round trip.
func (m *Manager) LoadProfile(ctx context.Context) error {
	result, err, _ := m.group.Do("profile", func() (any, error) {
		var profile session.UserProfile
		if err := m.client.Get(ctx, profilePath, nil, &profile); err != nil {
			return nil, err
		}
		return &profile, nil
	})
	if err != nil {
		return err
	}
	m.setProfile(result.(*session.UserProfile))
	return nil
}

// UpdateUser sends a partial profile update. On success the profile is
// replaced wholesale with the server's representation, never merged
// locally; on failure it is left unchanged.
func (m *Manager) UpdateUser(ctx context.Context, update model.UserUpdate) error {
	if update.Email != nil {
		if msg := validation.Email("Email")(*update.Email); msg != "" {
			return apperrors.Validationf("%s", msg)
		}
	}

	var profile session.UserProfile
	if err := m.client.Put(ctx, profilePath, update, &profile); err != nil {
		return err
	}
	m.setProfile(&profile)
	return nil
}

// ChangePassword verifies the old password and sets a new one. Local
// session state is not touched either way.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if msg := validation.RequiredRange("New password", 6, 64)(newPassword); msg != "" {
		return apperrors.Validationf("%s", msg)
	}
	return m.client.Post(ctx, changePasswordPath, model.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// Register creates an account. It does not log the new user in.
func (m *Manager) Register(ctx context.Context, req model.RegisterRequest) (*session.UserProfile, error) {
	if msg := validation.RequiredRange("Username", 3, 32)(req.Username); msg != "" {
		return nil, apperrors.Validationf("%s", msg)
	}
	if msg := validation.Email("Email")(req.Email); msg != "" {
		return nil, apperrors.Validationf("%s", msg)
	}
	if msg := validation.RequiredRange("Password", 6, 64)(req.Password); msg != "" {
		return nil, apperrors.Validationf("%s", msg)
	}

	var created session.UserProfile
	if err := m.client.Post(ctx, registerPath, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Subscribe registers a state-change listener and returns its
// unsubscribe function. Listeners receive a fresh snapshot after every
// transition.
func (m *Manager) Subscribe(fn func(session.Snapshot)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// fetchProfileLogged is the post-login profile fetch: a failure here is
// logged but never surfaced, so a transient backend hiccup cannot throw
// a freshly authenticated user back to anonymous.
func (m *Manager) fetchProfileLogged(ctx context.Context) {
	if err := m.LoadProfile(ctx); err != nil {
		m.logger.WarnContext(ctx, "profile fetch failed, keeping credential",
			"error", err, "code", string(apperrors.CodeOf(err)))
	}
}

// setProfile stores a server-returned profile. A late response landing
// after logout is dropped: the profile is only ever set while a
// credential is present.
func (m *Manager) setProfile(profile *session.UserProfile) {
	m.mu.Lock()
	if !m.cred.Present() {
		m.mu.Unlock()
		return
	}
	m.profile = profile
	m.mu.Unlock()
	m.notify()
}

// snapshotLocked derives the state name from held fields. Callers hold m.mu.
func (m *Manager) snapshotLocked() session.Snapshot {
	switch {
	case !m.cred.Present():
		return session.Snapshot{State: session.StateAnonymous}
	case m.profile == nil:
		return session.Snapshot{State: session.StateProfilePending}
	default:
		copied := *m.profile
		return session.Snapshot{State: session.StateProfileLoaded, Profile: &copied}
	}
}

func (m *Manager) notify() {
	snap := m.Snapshot()

	m.subMu.Lock()
	fns := make([]func(session.Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn(snap)
		}
	}
}

// classifyTokenError maps an oauth2 exchange failure onto the shared
// taxonomy. The gateway transport has already performed any side
// effects for the underlying response.
func classifyTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return apperrors.FromResponse(rerr.Response.StatusCode, rerr.Body)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Network(err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Network(err)
}
