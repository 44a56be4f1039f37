package recipeindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvarezg/recipe-search/internal/domain/search"
)

func TestMemoryIndexRanksByDistance(t *testing.T) {
	index := NewMemoryIndex()
	docs := []search.Document{
		{ID: "1", Title: "Exact", Link: "http://recipes.test/1"},
		{ID: "2", Title: "Close", Link: "http://recipes.test/2"},
		{ID: "3", Title: "Far", Link: "http://recipes.test/3"},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	require.NoError(t, index.Upsert(context.Background(), docs, vectors))

	results, err := index.Search(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "Exact", results[0].Title)
	require.Equal(t, "Close", results[1].Title)
	require.Equal(t, "Far", results[2].Title)
	require.Less(t, results[0].Score, results[1].Score)
	require.Less(t, results[1].Score, results[2].Score)
}

func TestMemoryIndexHonorsLimit(t *testing.T) {
	index := NewMemoryIndex()
	docs := []search.Document{
		{ID: "1", Title: "One", Link: "http://recipes.test/1"},
		{ID: "2", Title: "Two", Link: "http://recipes.test/2"},
	}
	vectors := [][]float32{{1, 0}, {0, 1}}
	require.NoError(t, index.Upsert(context.Background(), docs, vectors))

	results, err := index.Search(context.Background(), []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestMemoryIndexUpsertReplacesByLink(t *testing.T) {
	index := NewMemoryIndex()
	doc := search.Document{ID: "1", Title: "Original", Link: "http://recipes.test/1"}
	require.NoError(t, index.Upsert(context.Background(), []search.Document{doc}, [][]float32{{1, 0}}))

	doc.Title = "Updated"
	require.NoError(t, index.Upsert(context.Background(), []search.Document{doc}, [][]float32{{1, 0}}))

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	results, err := index.Search(context.Background(), []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Equal(t, "Updated", results[0].Title)
}

func TestMemoryIndexVectorCountMismatch(t *testing.T) {
	index := NewMemoryIndex()
	err := index.Upsert(context.Background(), []search.Document{{Link: "http://recipes.test/1"}}, nil)
	require.Error(t, err)
}
