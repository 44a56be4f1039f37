package recipeindex

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/calvarezg/recipe-search/internal/domain/search"
)

var errVectorCountMismatch = errors.New("document and vector counts differ")

type indexed struct {
	doc    search.Document
	vector []float32
}

// MemoryIndex is an in-memory implementation of the recipe index for
// tests/dev. Ranking uses cosine distance, lower is closer.
type MemoryIndex struct {
	mu     sync.RWMutex
	byLink map[string]indexed
}

// NewMemoryIndex constructs an index backed by process memory.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{byLink: make(map[string]indexed)}
}

// Search implements search.RecipeIndex.
func (m *MemoryIndex) Search(_ context.Context, vector []float32, limit int) ([]search.RecipeResult, error) {
	if limit <= 0 {
		limit = 100
	}
	m.mu.RLock()
	out := make([]search.RecipeResult, 0, len(m.byLink))
	for _, item := range m.byLink {
		out = append(out, search.RecipeResult{
			Title: item.doc.Title,
			Link:  item.doc.Link,
			Score: cosineDistance(vector, item.vector),
		})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Link < out[j].Link
		}
		return out[i].Score < out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Upsert replaces entries sharing a link.
func (m *MemoryIndex) Upsert(_ context.Context, docs []search.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return errVectorCountMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range docs {
		vector := make([]float32, len(vectors[i]))
		copy(vector, vectors[i])
		m.byLink[doc.Link] = indexed{doc: doc, vector: vector}
	}
	return nil
}

// Count reports how many recipes are indexed.
func (m *MemoryIndex) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.byLink)), nil
}

func cosineDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < length; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

var _ search.RecipeIndex = (*MemoryIndex)(nil)
