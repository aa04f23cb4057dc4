package authsession

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopfront/shopfront-go/internal/adapters/memstore"
	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/domain/session"
	apperrors "github.com/shopfront/shopfront-go/internal/errors"
	"github.com/shopfront/shopfront-go/internal/gateway"
	"github.com/shopfront/shopfront-go/internal/observability/notify"
	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal storefront auth backend.
type fakeBackend struct {
	mu            sync.Mutex
	password      string
	token         string
	profile       session.UserProfile
	failProfile   bool
	profileCalls  int
	lastAuthHdr   string
	changeCalls   int
	registerCalls int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.PostFormValue("password") != b.password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"incorrect username or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Token{AccessToken: b.token, TokenType: "bearer"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.profileCalls++
		b.lastAuthHdr = r.Header.Get("Authorization")
		if b.failProfile {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(b.profile)
	})
	mux.HandleFunc("PUT /auth/me", func(w http.ResponseWriter, r *http.Request) {
		var update model.UserUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		b.mu.Lock()
		defer b.mu.Unlock()
		if update.Email != nil {
			b.profile.Email = *update.Email
		}
		if update.FullName != nil {
			b.profile.FullName = *update.FullName
		}
		_ = json.NewEncoder(w).Encode(b.profile)
	})
	mux.HandleFunc("POST /auth/change-password", func(w http.ResponseWriter, r *http.Request) {
		var req model.ChangePasswordRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.changeCalls++
		if req.OldPassword != b.password {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"old password is incorrect"}`))
			return
		}
		b.password = req.NewPassword
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req model.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.registerCalls++
		_ = json.NewEncoder(w).Encode(session.UserProfile{
			ID: 99, Username: req.Username, Email: req.Email, IsActive: true,
		})
	})
	return mux
}

type rig struct {
	manager *Manager
	store   *memstore.CredentialStore
	backend *fakeBackend
	sink    *countingSink
}

type countingSink struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (c *countingSink) Notify(n notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, n)
}

func (c *countingSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

func newRig(t *testing.T) *rig {
	t.Helper()

	backend := &fakeBackend{
		password: "hunter22",
		token:    "tok-xyz",
		profile:  session.UserProfile{ID: 1, Username: "buyer", Email: "buyer@example.com", IsActive: true},
	}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	store := memstore.New(0)
	sink := &countingSink{}

	transport, err := gateway.NewTransport(gateway.TransportOptions{
		Credentials: store,
		Navigator:   ports.NavigatorFunc(nil),
		Notifier:    sink,
	})
	require.NoError(t, err)

	client, err := gateway.NewClient(gateway.ClientOptions{
		BaseURL:   srv.URL,
		Transport: transport,
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)

	manager, err := NewManager(Options{Client: client, Credentials: store})
	require.NoError(t, err)
	transport.SetInvalidator(manager)

	return &rig{manager: manager, store: store, backend: backend, sink: sink}
}

func TestLogin_Success(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	snap := r.manager.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, session.StateProfileLoaded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "buyer", snap.Profile.Username)

	// Credential persisted for restart survival.
	tok, err := r.store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", tok)

	// The profile fetch carried the fresh bearer token.
	assert.Equal(t, "Bearer tok-xyz", r.backend.lastAuthHdr)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	err := r.manager.Login(ctx, "buyer", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAuthExpired))
	assert.Contains(t, err.Error(), "incorrect username or password")

	snap := r.manager.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	_, getErr := r.store.Get(ctx)
	assert.ErrorIs(t, getErr, ports.ErrNoCredential)
}

func TestLogin_ProfileFetchFailureKeepsCredential(t *testing.T) {
	r := newRig(t)
	r.backend.failProfile = true
	ctx := context.Background()

	// Login itself succeeds even though the profile fetch fails.
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	snap := r.manager.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, session.StateProfilePending, snap.State)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.IsAdmin())

	// The credential survived; a later retry can still load the profile.
	r.backend.failProfile = false
	require.NoError(t, r.manager.LoadProfile(ctx))
	assert.Equal(t, session.StateProfileLoaded, r.manager.Snapshot().State)
}

func TestLogin_IsAdminOnlyAfterProfileLoads(t *testing.T) {
	r := newRig(t)
	r.backend.profile.IsSuperuser = true
	r.backend.failProfile = true
	ctx := context.Background()

	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))
	assert.True(t, r.manager.Snapshot().IsAuthenticated())
	assert.False(t, r.manager.Snapshot().IsAdmin())

	r.backend.failProfile = false
	require.NoError(t, r.manager.LoadProfile(ctx))
	assert.True(t, r.manager.Snapshot().IsAdmin())
}

func TestInitAuth(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	// Nothing persisted: stays anonymous, no profile call.
	r.manager.InitAuth(ctx)
	assert.Equal(t, session.StateAnonymous, r.manager.Snapshot().State)
	assert.Equal(t, 0, r.backend.profileCalls)

	// With a persisted credential the session is restored.
	require.NoError(t, r.store.Save(ctx, "tok-xyz"))
	r.manager.InitAuth(ctx)

	snap := r.manager.Snapshot()
	assert.Equal(t, session.StateProfileLoaded, snap.State)
	assert.Equal(t, "buyer", snap.Profile.Username)
}

func TestLogout(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))
	r.manager.Logout(ctx)

	snap := r.manager.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.False(t, snap.IsAdmin())
	assert.Nil(t, snap.Profile)

	_, err := r.store.Get(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestUpdateUser(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	name := "Buyer McBuyerface"
	require.NoError(t, r.manager.UpdateUser(ctx, model.UserUpdate{FullName: &name}))

	snap := r.manager.Snapshot()
	assert.Equal(t, "Buyer McBuyerface", snap.Profile.FullName)
}

func TestUpdateUser_InvalidEmailFailsLocally(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))
	before := r.manager.Snapshot()

	bad := "not-an-email"
	err := r.manager.UpdateUser(ctx, model.UserUpdate{Email: &bad})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	// Profile unchanged on failure.
	assert.Equal(t, before.Profile.Email, r.manager.Snapshot().Profile.Email)
}

func TestChangePassword(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	require.NoError(t, r.manager.ChangePassword(ctx, "hunter22", "correct-horse"))
	assert.Equal(t, 1, r.backend.changeCalls)

	// Session state is untouched by a password change.
	assert.Equal(t, session.StateProfileLoaded, r.manager.Snapshot().State)

	err := r.manager.ChangePassword(ctx, "stale-old", "another-pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old password is incorrect")
}

func TestRegister(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	created, err := r.manager.Register(ctx, model.RegisterRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "secret-99",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbie", created.Username)

	// Registration does not establish a session.
	assert.False(t, r.manager.Snapshot().IsAuthenticated())
	assert.Equal(t, 1, r.backend.registerCalls)
}

func TestRegister_LocalValidation(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	_, err := r.manager.Register(ctx, model.RegisterRequest{
		Username: "x", Email: "bad", Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
	assert.Equal(t, 0, r.backend.registerCalls)
}

func TestInvalidate_On401(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	// Simulate the backend rejecting the token on the next call.
	r.backend.mu.Lock()
	r.backend.failProfile = false
	r.backend.mu.Unlock()
	r.manager.Invalidate()

	snap := r.manager.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Nil(t, snap.Profile)
}

func TestSubscribe(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	var states []session.State
	unsub := r.manager.Subscribe(func(s session.Snapshot) { states = append(states, s.State) })

	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))
	r.manager.Logout(ctx)

	// login (pending), profile load (loaded), logout (anonymous).
	assert.Equal(t, []session.State{
		session.StateProfilePending,
		session.StateProfileLoaded,
		session.StateAnonymous,
	}, states)

	unsub()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))
	assert.Len(t, states, 3)
}

func TestLateProfileDroppedAfterLogout(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()
	require.NoError(t, r.manager.Login(ctx, "buyer", "hunter22"))

	r.manager.Logout(ctx)
	// A stale response applied after logout must not resurrect a profile.
	r.manager.setProfile(&session.UserProfile{Username: "ghost"})

	snap := r.manager.Snapshot()
	assert.Equal(t, session.StateAnonymous, snap.State)
	assert.Nil(t, snap.Profile)
}
