package search

import (
	"context"
	"time"
)

// ResultCache stores ranked result pages keyed by CacheKey output.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]RecipeResult, bool, error)
	Set(ctx context.Context, key string, results []RecipeResult, ttl time.Duration) error
}

// RecipeIndex performs nearest neighbour retrieval over recipe embeddings.
type RecipeIndex interface {
	Search(ctx context.Context, vector []float32, limit int) ([]RecipeResult, error)
	Upsert(ctx context.Context, docs []Document, vectors [][]float32) error
	Count(ctx context.Context) (int64, error)
}

// Embedder maps texts to fixed-length vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
