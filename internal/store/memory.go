package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-forecast-view/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("session not found")
)

// entry holds a session together with its last access time.
type entry struct {
	state    *session.State
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory registry of forecast sessions.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which a session is pruned (0 = never)

	newState func() *session.State
	now      func() time.Time
}

// NewMemoryStore creates a new MemoryStore. newState builds the state of a
// freshly created session.
func NewMemoryStore(maxSessions int, maxAge time.Duration, newState func() *session.State) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		newState:    newState,
		now:         time.Now,
	}
}

// Create registers a new session and returns its id. When the store is full
// the least recently used session is evicted.
func (s *MemoryStore) Create() (string, *session.State) {
	id := uuid.New().String()
	state := s.newState()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[id] = &entry{state: state, lastSeen: s.now()}
	return id, state
}

// Get returns the session for id and marks it as used.
func (s *MemoryStore) Get(id string) (*session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Prune drops sessions idle for longer than the configured max age and
// returns how many were removed.
func (s *MemoryStore) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.data {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID = id
			oldest = e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}
