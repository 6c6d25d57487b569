package cache

import (
	"context"
	"sync"
	"time"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/sirupsen/logrus"
)

type entry struct {
	verdict   models.Verdict
	createdAt time.Time
}

// MemoryStore is the single-process verdict cache. The clock is
// injected so retention behavior is testable without sleeping.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	retention time.Duration
	now       func() time.Time
	logger    *logrus.Logger
}

func NewMemoryStore(retention time.Duration, now func() time.Time, logger *logrus.Logger) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries:   make(map[string]entry),
		retention: retention,
		now:       now,
		logger:    logger,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*models.Verdict, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return nil, false, nil
	}
	verdict := e.verdict
	return &verdict, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, verdict models.Verdict) error {
	s.mu.Lock()
	s.entries[key] = entry{verdict: verdict, createdAt: s.now()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Has(ctx context.Context, key string) bool {
	_, ok, _ := s.Get(ctx, key)
	return ok
}

// Len reports live (non-expired) entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			count++
		}
	}
	return count
}

// EvictExpired removes entries older than the retention window and
// returns how many were dropped.
func (s *MemoryStore) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// Janitor evicts expired entries on a ticker until ctx is done.
func (s *MemoryStore) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.EvictExpired(); evicted > 0 {
				s.logger.WithField("evicted", evicted).Debug("Cache janitor evicted expired verdicts")
			}
		}
	}
}

func (s *MemoryStore) expired(e entry) bool {
	if s.retention <= 0 {
		return false
	}
	return s.now().Sub(e.createdAt) > s.retention
}
