// Package auth is the shared-passphrase gate in front of the dashboard and
// the sessions it hands out. The analytics pipeline never depends on it.
package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrRejected is the one answer to a wrong passphrase. It says nothing about
// why; callers may retry as often as they like.
var ErrRejected = errors.New("access denied")

// Gate compares a candidate against the configured passphrase. An empty
// passphrase leaves the gate open.
type Gate struct {
	passphrase []byte
	sessions   *Sessions
}

// NewGate creates a gate whose successful logins are stored in sessions.
// A nil sessions gets a private store with DefaultTTL.
func NewGate(passphrase string, sessions *Sessions) *Gate {
	if sessions == nil {
		sessions = NewSessions(DefaultTTL)
	}
	return &Gate{passphrase: []byte(passphrase), sessions: sessions}
}

// Enabled reports whether a passphrase is configured.
func (g *Gate) Enabled() bool {
	return len(g.passphrase) > 0
}

// Check reports whether pass matches, in constant time.
func (g *Gate) Check(pass string) bool {
	if !g.Enabled() {
		return true
	}
	return subtle.ConstantTimeCompare(g.passphrase, []byte(pass)) == 1
}

// Login starts a session when pass matches.
func (g *Gate) Login(pass string) (*Session, error) {
	if !g.Check(pass) {
		return nil, ErrRejected
	}
	return g.sessions.Create(), nil
}

// Sessions is the store behind the gate.
func (g *Gate) Sessions() *Sessions {
	return g.sessions
}
