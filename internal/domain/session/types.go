package session

// Package session contains domain-level types for the authenticated
// session. It is pure and free of transport/adapter concerns.

import "time"

// State names the position of the session in its lifecycle.
// Valid values are defined as constants below.
type State string

const (
	// StateAnonymous means no credential is held.
	StateAnonymous State = "anonymous"
	// StateProfilePending means a credential is held but the user
	// profile has not loaded (fetch in flight, or a previous fetch
	// failed). The credential is deliberately kept in this state.
	StateProfilePending State = "profile_pending"
	// StateProfileLoaded means both credential and profile are held.
	StateProfileLoaded State = "profile_loaded"
)

// Credential is the opaque bearer token authorizing requests.
// At most one credential exists at a time.
type Credential struct {
	Token    string
	IssuedAt time.Time
}

// Present reports whether the credential holds a token.
func (c Credential) Present() bool { return c.Token != "" }

// UserProfile is the authenticated user's account record as returned
// by the backend. It is owned by the session manager and only ever
// replaced wholesale, never field-patched locally.
type UserProfile struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Balance     float64    `json:"balance"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// Snapshot is an immutable view of the session, safe to hand to
// rendering layers and the route guard. Profile is nil until loaded.
type Snapshot struct {
	State   State
	Profile *UserProfile
}

// IsAuthenticated reports whether a credential is present.
func (s Snapshot) IsAuthenticated() bool {
	return s.State != StateAnonymous && s.State != ""
}

// IsAdmin reports whether a loaded profile carries the superuser flag.
// A pending or absent profile is never admin, even though the
// credential may still be valid.
func (s Snapshot) IsAdmin() bool {
	return s.Profile != nil && s.Profile.IsSuperuser
}
