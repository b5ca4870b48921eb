package dashboardstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

type analysisEntry struct {
	payload   nutrition.Analysis
	expiresAt time.Time
}

// MemoryStore keeps analyses in process memory. Used when Valkey is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]analysisEntry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]analysisEntry),
		now:     time.Now,
	}
}

// Get implements dashboard.Store.
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (nutrition.Analysis, bool, error) {
	if fingerprint == "" {
		return nutrition.Analysis{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.entries[fingerprint]
	s.mu.RUnlock()
	if !ok {
		return nutrition.Analysis{}, false, nil
	}
	if s.expired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, fingerprint)
		s.mu.Unlock()
		return nutrition.Analysis{}, false, nil
	}
	return entry.payload, true, nil
}

// Save stores the analysis; a non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, fingerprint string, analysis nutrition.Analysis, ttl time.Duration) error {
	if fingerprint == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[fingerprint] = analysisEntry{payload: analysis, expiresAt: exp}
	s.pruneLocked()
	return nil
}

func (s *MemoryStore) pruneLocked() {
	for key, entry := range s.entries {
		if s.expired(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ dashboard.Store = (*MemoryStore)(nil)
