package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	redisclient "github.com/pad2skills/backend/internal/infrastructure/clients/redis"
)

// RedisStore implements SessionStore on Redis, for deployments where the
// API runs more than one replica. Session documents are JSON with an idle
// TTL. Interactions for one session are still serialized through an
// in-process lock per session id; the dashboard frontend pins a session
// to a replica, so cross-replica races are not a concern here.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore creates a Redis-backed session store with the given idle TTL
func NewRedisStore(client *redisclient.Client, ttlSeconds int) repositories.SessionStore {
	return &RedisStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		locks:  make(map[string]*sync.Mutex),
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *RedisStore) load(ctx context.Context, id string) (*entities.SessionState, error) {
	data, err := s.client.Client().Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return entities.NewSessionState(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	state := &entities.SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		// A corrupt document degrades to a fresh session rather than
		// locking the user out
		return entities.NewSessionState(id), nil
	}
	return state, nil
}

func (s *RedisStore) save(ctx context.Context, state *entities.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}
	if err := s.client.Client().Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}
	return nil
}

// Get returns the session, creating it with defaults when absent
func (s *RedisStore) Get(ctx context.Context, id string) (*entities.SessionState, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()
	return s.load(ctx, id)
}

// Update applies fn and commits the whole document back with a refreshed TTL
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*entities.SessionState) error) (*entities.SessionState, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(state); err != nil {
		return nil, err
	}
	state.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Delete ends a session and discards its state
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := s.client.Client().Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
	return nil
}
