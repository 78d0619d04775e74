package session

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often Create scans for expired entries
const sweepInterval = time.Minute

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is a Store for development and tests
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, sessionID string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	s.sessions[sessionID] = memoryEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Lookup(_ context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
