// Package gateway is the single choke point for traffic to the
// storefront backend. Transport intercepts every outbound request to
// attach the bearer credential and classifies every failing response
// exactly once; Client is the JSON convenience layer the typed API
// wrappers use.
package gateway

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/shopfront/shopfront-go/internal/errors"
	"github.com/shopfront/shopfront-go/internal/observability/notify"
	"github.com/shopfront/shopfront-go/internal/ports"
)

// maxErrorBodyBytes caps how much of a failing response body is read
// for message extraction.
const maxErrorBodyBytes = 1 << 20

// requestIDHeader carries a correlation ID on every outbound call.
const requestIDHeader = "X-Request-ID"

// TransportOptions bundles dependencies for NewTransport.
type TransportOptions struct {
	// Base is the underlying RoundTripper. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	// Credentials supplies the bearer token and is cleared on 401.
	Credentials ports.CredentialStore

	// Navigator receives the login redirect after a 401.
	Navigator ports.Navigator

	// Notifier receives one user-facing notification per failing
	// call, except 404 which stays silent.
	Notifier notify.Sink

	// LoginRoute is the redirect target after a rejected credential.
	LoginRoute string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Transport is an http.RoundTripper that owns credential attachment
// and failure side effects. It never retries and never queues; the
// response always passes through to the caller unmodified apart from
// the restored body.
type Transport struct {
	base       http.RoundTripper
	creds      ports.CredentialStore
	nav        ports.Navigator
	notifier   notify.Sink
	loginRoute string
	logger     *slog.Logger

	mu          sync.RWMutex
	invalidator ports.SessionInvalidator
}

// NewTransport builds a Transport. Credentials, Navigator, and
// Notifier are required.
func NewTransport(opts TransportOptions) (*Transport, error) {
	if opts.Credentials == nil {
		return nil, errors.New("CredentialStore is required")
	}
	if opts.Navigator == nil {
		return nil, errors.New("Navigator is required")
	}
	if opts.Notifier == nil {
		return nil, errors.New("Notifier is required")
	}

	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loginRoute := opts.LoginRoute
	if loginRoute == "" {
		loginRoute = "/login"
	}

	return &Transport{
		base:       base,
		creds:      opts.Credentials,
		nav:        opts.Navigator,
		notifier:   opts.Notifier,
		loginRoute: loginRoute,
		logger:     logger,
	}, nil
}

// SetInvalidator registers the session invalidation hook. The session
// manager is constructed after the transport, so this is wired late.
func (t *Transport) SetInvalidator(inv ports.SessionInvalidator) {
	t.mu.Lock()
	t.invalidator = inv
	t.mu.Unlock()
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// Per the RoundTripper contract the original request is not mutated.
	out := req.Clone(ctx)
	out.Header.Set(requestIDHeader, uuid.NewString())

	token, err := t.creds.Get(ctx)
	switch {
	case err == nil && token != "":
		out.Header.Set("Authorization", "Bearer "+token)
	case err != nil && !errors.Is(err, ports.ErrNoCredential):
		// A store outage must not block the call; send unauthenticated.
		t.logger.WarnContext(ctx, "credential lookup failed", "error", err)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		t.emit(notify.SeverityError, "network unreachable, please check your connection",
			apperrors.ErrCodeNetwork, 0)
		return nil, err
	}

	if resp.StatusCode >= 400 {
		t.reactToFailure(out, resp)
	}
	return resp, nil
}

// reactToFailure performs the cross-cutting side effects for a failing
// response. The body is restored so the caller still sees it; the
// caller always receives the failure regardless of what happened here.
func (t *Transport) reactToFailure(req *http.Request, resp *http.Response) {
	body := t.swapBody(resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if err := t.creds.Delete(req.Context()); err != nil {
			t.logger.ErrorContext(req.Context(), "clear credential after 401 failed", "error", err)
		}
		t.mu.RLock()
		inv := t.invalidator
		t.mu.RUnlock()
		if inv != nil {
			inv.Invalidate()
		}
		t.emit(notify.SeverityError, "session expired, please log in again",
			apperrors.ErrCodeAuthExpired, resp.StatusCode)
		t.nav.RedirectTo(t.loginRoute)

	case http.StatusForbidden:
		t.emit(notify.SeverityError, "permission denied",
			apperrors.ErrCodeForbidden, resp.StatusCode)

	case http.StatusNotFound:
		// Deliberately silent: a partially available backend would
		// otherwise flood the user with noise.

	default:
		t.emit(notify.SeverityError, apperrors.MessageFromBody(body),
			apperrors.ErrCodeValidation, resp.StatusCode)
	}
}

// swapBody reads up to maxErrorBodyBytes of the response body and
// replaces it with an equivalent reader.
func (t *Transport) swapBody(resp *http.Response) []byte {
	if resp.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	closeErr := resp.Body.Close()
	if err != nil || closeErr != nil {
		t.logger.Warn("read error response body failed", "error", errors.Join(err, closeErr))
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

func (t *Transport) emit(severity, message string, code apperrors.ErrorCode, status int) {
	t.notifier.Notify(notify.Notification{
		ID:         uuid.NewString(),
		Severity:   severity,
		Message:    message,
		Code:       code,
		StatusCode: status,
		OccurredAt: time.Now(),
	})
}
