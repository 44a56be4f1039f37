package resultcache

import (
	"context"
	"sync"
	"time"

	"github.com/calvarezg/recipe-search/internal/domain/search"
)

type entry struct {
	results   []search.RecipeResult
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of the result cache for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry)}
}

// Get implements search.ResultCache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]search.RecipeResult, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.results, true, nil
}

// Set caches the page with an optional TTL.
func (c *MemoryCache) Set(_ context.Context, key string, results []search.RecipeResult, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	copied := make([]search.RecipeResult, len(results))
	copy(copied, results)
	c.mu.Lock()
	c.entries[key] = entry{results: copied, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ search.ResultCache = (*MemoryCache)(nil)
