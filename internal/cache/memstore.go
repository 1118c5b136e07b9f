package cache

import (
	"context"
	"sync"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

// MemStore is an in-memory Store used when no database path is configured
// and by tests. Safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]domain.CacheEntry)}
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, fingerprint string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[fingerprint]; ok {
		cp := e
		return &cp, nil
	}
	return nil, nil
}

// Put implements Store. Last write wins.
func (s *MemStore) Put(_ context.Context, entry *domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Fingerprint] = *entry
	return nil
}

// Len reports the number of stored entries (used by tests).
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
