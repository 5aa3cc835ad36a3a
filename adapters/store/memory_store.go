package store

import (
	"context"
	"sync"
	"time"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

type memoryEntry struct {
	session   core.Session
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the SessionStore interface,
// used for tests and single-instance deployments without Redis.
type MemoryStore struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns a copy of the stored session, honoring its TTL. Expired
// entries are deleted on access so the map does not grow unboundedly.
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, core.ErrSessionNotFound
	}

	session := entry.session
	return &session, nil
}

// Put stores a copy of the session with the given TTL.
func (s *MemoryStore) Put(ctx context.Context, session *core.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = memoryEntry{
		session:   *session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
