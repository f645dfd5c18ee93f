package history

import (
	"context"
	"sync"
)

// MemoryStore keeps visits in process memory. It is safe for concurrent use
// and intended for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	visits map[string][]Visit // sessionID → visits, oldest first
	cap    int
}

// NewMemoryStore creates a memory store retaining at most cap visits per
// session. cap <= 0 means unbounded.
func NewMemoryStore(cap int) *MemoryStore {
	return &MemoryStore{visits: map[string][]Visit{}, cap: cap}
}

// Append records a visit, evicting the oldest once the cap is exceeded.
func (s *MemoryStore) Append(ctx context.Context, v Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs := append(s.visits[v.SessionID], v)
	if s.cap > 0 && len(vs) > s.cap {
		vs = vs[len(vs)-s.cap:]
	}
	s.visits[v.SessionID] = vs
	return nil
}

// Recent returns up to n visits for the session, newest first.
func (s *MemoryStore) Recent(ctx context.Context, sessionID string, n int) ([]Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs := s.visits[sessionID]
	if n <= 0 || n > len(vs) {
		n = len(vs)
	}

	out := make([]Visit, 0, n)
	for i := len(vs) - 1; i >= len(vs)-n; i-- {
		out = append(out, vs[i])
	}
	return out, nil
}

// Clear removes all visits for the session.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visits, sessionID)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
