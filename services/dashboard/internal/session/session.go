// Package session implements the login gate and per-browser session state.
package session

import (
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for an unknown owner or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// State is the gate state of a session.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Session is the per-browser login state. It is never persisted.
type Session struct {
	ID            string    `json:"-"`
	Authenticated bool      `json:"authenticated"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"-"`
	ExpiresAt     time.Time `json:"-"`
}

// IsExpired reports whether the session is past its expiry at now. A zero
// ExpiresAt never expires.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// State derives the gate state from the two session fields.
func (s *Session) State() State {
	if s.Authenticated {
		return LoggedIn
	}
	return LoggedOut
}

// OwnerSet answers membership of the distinct farm_owner values.
type OwnerSet interface {
	HasOwner(name string) bool
}

// Gate checks logins against the table's owners and one shared password.
// The password is compared in plaintext and is the same for every owner.
type Gate struct {
	owners OwnerSet
	secret string
}

// NewGate creates a gate over owners with the shared secret.
func NewGate(owners OwnerSet, secret string) *Gate {
	return &Gate{owners: owners, secret: secret}
}

// Login moves sess to LoggedIn(user) when user is a known owner and password
// matches. On failure sess is left untouched.
func (g *Gate) Login(sess *Session, user, password string) error {
	if !g.owners.HasOwner(user) || password != g.secret {
		return ErrInvalidCredentials
	}
	sess.Authenticated = true
	sess.User = user
	return nil
}

// Logout moves sess back to LoggedOut.
func (g *Gate) Logout(sess *Session) {
	sess.Authenticated = false
	sess.User = ""
}
