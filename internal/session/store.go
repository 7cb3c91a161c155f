package session

import (
	"context"
	"sync"
	"time"
)

// TokenStore records which session ids are live and for how long.
type TokenStore interface {
	Put(ctx context.Context, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryTokenStore keeps session ids in process memory.
type MemoryTokenStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return NewMemoryTokenStoreWithClock(time.Now)
}

func NewMemoryTokenStoreWithClock(now func() time.Time) *MemoryTokenStore {
	return &MemoryTokenStore{expires: map[string]time.Time{}, now: now}
}

func (s *MemoryTokenStore) Put(_ context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[sessionID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[sessionID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.expires, sessionID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expires, sessionID)
	return nil
}

// Sweep removes expired ids and returns how many were removed.
func (s *MemoryTokenStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, id)
			n++
		}
	}
	return n
}

func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}
