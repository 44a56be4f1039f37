package clickstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
)

type pairKey struct {
	query string
	link  string
}

// MemoryStore is an in-memory implementation of the click store for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[pairKey]clicks.Record
	byLink  map[string]int64
}

// NewMemoryStore constructs a click store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[pairKey]clicks.Record),
		byLink:  make(map[string]int64),
	}
}

// Record implements clicks.Store.
func (s *MemoryStore) Record(_ context.Context, click clicks.Click, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{query: click.Query, link: click.Link}
	record := s.records[key]
	record.Query = click.Query
	record.Link = click.Link
	record.Count++
	record.LastClickedAt = at
	s.records[key] = record
	s.byLink[click.Link]++
	return nil
}

// TopLinks returns the most clicked links in descending order.
func (s *MemoryStore) TopLinks(_ context.Context, limit int) ([]clicks.TopLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.byLink)
	}
	out := make([]clicks.TopLink, 0, len(s.byLink))
	for link, count := range s.byLink {
		out = append(out, clicks.TopLink{Link: link, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Link < out[j].Link
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RecordFor exposes the stored record for assertions in tests.
func (s *MemoryStore) RecordFor(query, link string) (clicks.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[pairKey{query: query, link: link}]
	return record, ok
}

var _ clicks.Store = (*MemoryStore)(nil)
