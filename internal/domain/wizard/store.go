package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds in-progress wizard sessions in memory. Sessions are transient:
// never persisted, dropped on expiry or successful submission. Expired
// sessions are swept lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewStore creates a session store with the given idle TTL
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// Create starts a new session at the first step
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()

	s := newSession()
	st.sessions[s.id] = s
	return s
}

// Get returns a live session or ErrSessionNotFound
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expiredAt(time.Now(), st.ttl) {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards a session
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) sweepLocked() {
	now := time.Now()
	for id, s := range st.sessions {
		if s.expiredAt(now, st.ttl) {
			delete(st.sessions, id)
		}
	}
}
