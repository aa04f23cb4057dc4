// Package routeguard decides whether a navigation attempt may proceed,
// based solely on the current session snapshot. It performs no I/O, so
// a stale profile can let an expired admin session through until the
// next server round trip reveals otherwise.
package routeguard

import (
	"github.com/shopfront/shopfront-go/internal/domain/session"
)

// Default redirect targets.
const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// AccessPolicy is the per-route access metadata. The zero value allows
// everyone.
type AccessPolicy struct {
	RequiresAuth  bool
	RequiresAdmin bool
	RequiresGuest bool
}

// Decision is the outcome of a navigation check.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// allow is the pass-through decision.
var allow = Decision{Allowed: true}

// SessionSource supplies the current session snapshot.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Guard runs the pre-navigation check.
type Guard struct {
	sessions   SessionSource
	loginRoute string
	homeRoute  string
}

// Options configures a Guard. Empty routes fall back to the defaults.
type Options struct {
	Sessions   SessionSource
	LoginRoute string
	HomeRoute  string
}

// New creates a Guard.
func New(opts Options) *Guard {
	login := opts.LoginRoute
	if login == "" {
		login = LoginRoute
	}
	home := opts.HomeRoute
	if home == "" {
		home = HomeRoute
	}
	return &Guard{sessions: opts.Sessions, loginRoute: login, homeRoute: home}
}

// Check evaluates the policy against one session snapshot. Rules are
// applied in order and the first match wins:
//
//  1. auth required, not authenticated    → login route
//  2. admin required, not a loaded admin  → home route
//  3. guest required, authenticated      → home route
//  4. otherwise                          → allow
func (g *Guard) Check(policy AccessPolicy) Decision {
	snap := g.sessions.Snapshot()

	if policy.RequiresAuth && !snap.IsAuthenticated() {
		return Decision{RedirectTo: g.loginRoute}
	}
	if policy.RequiresAdmin && !snap.IsAdmin() {
		return Decision{RedirectTo: g.homeRoute}
	}
	if policy.RequiresGuest && snap.IsAuthenticated() {
		return Decision{RedirectTo: g.homeRoute}
	}
	return allow
}

// CheckPath resolves a path in the route table and evaluates it.
func (g *Guard) CheckPath(table RouteTable, path string) Decision {
	return g.Check(table.Policy(path))
}
