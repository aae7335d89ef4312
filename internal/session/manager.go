package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Session pairs a state with the lock that serializes actions on it
type Session struct {
	ID        string
	State     *State
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// Lock blocks until no other action runs on this session
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Manager keeps sessions in memory and expires them after ttl of inactivity
type Manager struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewManager creates a new session manager
func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	return &Manager{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Create starts a new session with an empty state
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		State:     NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.cache.Set(s.ID, s, m.ttl)
	return s
}

// Get returns a live session by id
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	v, ok := m.cache.Get(id)
	if !ok {
		return nil, false
	}

	s, ok := v.(*Session)
	return s, ok
}

// Touch extends the session's lifetime from now
func (m *Manager) Touch(s *Session) {
	s.UpdatedAt = time.Now()
	m.cache.Set(s.ID, s, m.ttl)
}

// Rotate re-keys the session under a fresh id and forgets the old one.
// The caller must hold the session lock.
func (m *Manager) Rotate(s *Session) {
	old := s.ID
	s.ID = uuid.NewString()
	s.UpdatedAt = time.Now()

	m.cache.Set(s.ID, s, m.ttl)
	m.cache.Delete(old)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	return m.cache.ItemCount()
}
