package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is used when no Redis is configured. Entries expire after TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state   State
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return State{}, nil
	}
	if s.now().After(e.expires) {
		delete(s.entries, id)
		return State{}, nil
	}
	return e.state, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{state: st, expires: s.now().Add(TTL)}
	return nil
}
