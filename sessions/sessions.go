// Package sessions keeps the in-progress requests of connected operators in
// memory. Nothing is persisted; idle sessions expire.
package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/linesmerrill/dl-generator-api/form"
)

// DefaultTTL is how long an untouched session lives
const DefaultTTL = 30 * time.Minute

// ErrSubmitInFlight is returned when a session already has a submission
// outstanding
var ErrSubmitInFlight = errors.New("a submission is already in flight for this request")

// Session is one operator's request. All access to the model goes through
// Update or View, which serialize it.
type Session struct {
	ID      string
	Created time.Time

	mu         sync.Mutex
	model      *form.Model
	submitting bool
}

// Update runs fn with exclusive access to the model
func (s *Session) Update(fn func(m *form.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.model)
}

// View runs fn with exclusive access to the model for reading
func (s *Session) View(fn func(m *form.Model)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.model)
}

// BeginSubmit marks a submission as outstanding. The returned func ends it.
func (s *Session) BeginSubmit() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.submitting = false
			s.mu.Unlock()
		})
	}, nil
}

// Store holds sessions keyed by id
type Store struct {
	items    *cache.Cache
	newModel func() *form.Model
}

// NewStore returns a store whose sessions expire after ttl without access.
// Expired sessions are invisible at once and released by Reap.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{items: cache.New(ttl, 0), newModel: form.New}
}

// Create starts a new session with a default request
func (s *Store) Create() *Session {
	sess := &Session{
		ID:      uuid.New().String(),
		Created: time.Now().UTC(),
		model:   s.newModel(),
	}
	s.items.SetDefault(sess.ID, sess)
	return sess
}

// Get returns a live session and extends its lifetime
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.items.SetDefault(id, sess)
	return sess, true
}

// Delete drops a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	if _, ok := s.items.Get(id); !ok {
		return false
	}
	s.items.Delete(id)
	return true
}

// Reap releases expired sessions and returns how many were dropped
func (s *Store) Reap() int {
	before := s.items.ItemCount()
	s.items.DeleteExpired()
	if n := before - s.items.ItemCount(); n > 0 {
		return n
	}
	return 0
}

// Len returns the number of sessions held, including expired ones not yet
// reaped
func (s *Store) Len() int {
	return s.items.ItemCount()
}
