package session

import (
	"context"
	"sync"
	"time"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
)

// MemoryStore implements SessionStore in process memory. Each session
// owns a lock, so interactions on one session are processed strictly one
// at a time while separate sessions never contend.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*slot
}

type slot struct {
	mu    sync.Mutex
	state *entities.SessionState
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() repositories.SessionStore {
	return &MemoryStore{
		sessions: make(map[string]*slot),
	}
}

func (s *MemoryStore) slotFor(id string) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sessions[id]
	if !ok {
		sl = &slot{state: entities.NewSessionState(id)}
		s.sessions[id] = sl
	}
	return sl
}

// Get returns the session, creating it with defaults when absent
func (s *MemoryStore) Get(ctx context.Context, id string) (*entities.SessionState, error) {
	sl := s.slotFor(id)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.state.Clone(), nil
}

// Update applies fn under the session's lock and commits the result as
// one unit; an fn error leaves the stored state untouched
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*entities.SessionState) error) (*entities.SessionState, error) {
	sl := s.slotFor(id)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	next := sl.state.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	sl.state = next
	return next.Clone(), nil
}

// Delete ends a session and discards its state
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
