package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Store keeps sessions in memory, keyed by session id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	ttl      time.Duration
}

// DefaultTTL is how long a session lives after it is created.
const DefaultTTL = 12 * time.Hour

// NewStore creates an empty session store whose sessions expire after ttl.
// A non-positive ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
		ttl:      ttl,
	}
}

// Create starts a LoggedOut session with a fresh UUIDv7 id. Expired sessions
// are swept on every call.
func (s *Store) Create() (Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Session{}, goerr.Wrap(err, "failed to generate session id")
	}

	now := s.now()
	sess := &Session{ID: id.String(), CreatedAt: now, ExpiresAt: now.Add(s.ttl)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[sess.ID] = sess
	return *sess, nil
}

func (s *Store) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}

// Get returns a copy of the session so callers never share mutable state.
// An expired session is dropped and reported as missing.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if sess.IsExpired(s.now()) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return *sess, true
}

// Save replaces the stored session with sess.
func (s *Store) Save(sess Session) error {
	if sess.ID == "" {
		return goerr.New("session ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &sess
	return nil
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
