package auth

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rustyeddy/tradeboard/pkg/id"
)

// DefaultTTL is how long a session lasts when nothing else is configured.
const DefaultTTL = 12 * time.Hour

// Session is created at login and ends at logout or expiry.
type Session struct {
	ID      string
	Created time.Time
	Expires time.Time
}

// Valid reports whether the session is still usable at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.Expires)
}

// Sessions keeps live sessions in memory. Safe for concurrent use.
type Sessions struct {
	ttl   time.Duration
	store *cache.Cache
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{ttl: ttl, store: cache.New(ttl, ttl/2)}
}

// TTL is the lifetime of new sessions.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) Create() *Session {
	now := time.Now()
	sess := &Session{ID: id.At(now), Created: now, Expires: now.Add(s.ttl)}
	s.store.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns a live session.
func (s *Sessions) Get(id string) (*Session, bool) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	if !sess.Valid(time.Now()) {
		s.store.Delete(id)
		return nil, false
	}
	return sess, true
}

func (s *Sessions) End(id string) {
	s.store.Delete(id)
}

// Len counts stored sessions, including expired ones not yet swept.
func (s *Sessions) Len() int {
	return s.store.ItemCount()
}
