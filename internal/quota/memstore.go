package quota

import (
	"context"
	"sync"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

// MemStore is an in-memory Store backed by a map keyed by day then identity.
// It is the default backend when no database path is configured, and the one
// used by tests. State does not survive a process restart.
//
// Safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	days map[string]map[string]*domain.UsageCounts
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{days: make(map[string]map[string]*domain.UsageCounts)}
}

// Counts implements Store. Missing counters read as zero without being created.
func (s *MemStore) Counts(_ context.Context, day, identity string) (domain.UsageCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ids, ok := s.days[day]; ok {
		if c, ok := ids[identity]; ok {
			return *c, nil
		}
	}
	return domain.UsageCounts{}, nil
}

// Increment implements Store.
func (s *MemStore) Increment(_ context.Context, day, identity string, feature domain.Feature) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.days[day]
	if !ok {
		ids = make(map[string]*domain.UsageCounts)
		s.days[day] = ids
	}
	c, ok := ids[identity]
	if !ok {
		c = &domain.UsageCounts{}
		ids[identity] = c
	}
	if feature == domain.FeatureLearn {
		c.Learn++
		return c.Learn, nil
	}
	c.SEO++
	return c.SEO, nil
}

// Prune implements Store by dropping every day bucket except keepDay.
func (s *MemStore) Prune(_ context.Context, keepDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for day := range s.days {
		if day != keepDay {
			delete(s.days, day)
		}
	}
	return nil
}
