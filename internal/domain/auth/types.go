// Package auth contains domain-level types for the authenticated session.
// It is pure and free of transport/storage concerns.
package auth

import "time"

// Role represents a guard-ops authorization role as reported by the backend.
// Keep string form for easy decoding from identity payloads.
type Role string

const (
	RoleGuard      Role = "guard"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Identity represents the authenticated actor returned by the backend's
// identity endpoint. It is always fetched, never constructed locally.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
	SiteID   string `json:"site_id,omitempty"` // optional site assignment
}

// Credential is the bearer token proving the identity to the backend,
// together with the expiry decoded from it. ExpiresAt is zero when the
// token carries no decodable expiry claim.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the credential should be treated as unusable at
// the given instant. A credential without a decodable expiry is expired:
// the backend's tokens always carry one, so its absence means the stored
// value cannot be trusted across a restart.
func (c Credential) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt)
}

// State is the session lifecycle state derived from Session contents.
type State string

const (
	StateUninitialized  State = "uninitialized"
	StateLoggedOut      State = "logged_out"
	StateAuthenticating State = "authenticating"
	StateLoggedIn       State = "logged_in"
)

// Session is the process-wide authentication state. Exactly one instance
// exists, owned by the session store; consumers receive copies.
type Session struct {
	Credential *Credential
	Identity   *Identity
	Loading    bool
	Error      string

	// Bootstrapped records that the session has settled through the
	// store's bootstrap at least once.
	Bootstrapped bool
}

// State derives the lifecycle state from the session contents.
func (s Session) State() State {
	switch {
	case s.Loading:
		return StateAuthenticating
	case s.Credential != nil && s.Identity != nil:
		return StateLoggedIn
	case !s.Bootstrapped:
		return StateUninitialized
	default:
		return StateLoggedOut
	}
}

// LoggedIn reports whether the session holds an accepted credential and
// its identity.
func (s Session) LoggedIn() bool { return s.State() == StateLoggedIn }
