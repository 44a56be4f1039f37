package clickstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
)

func TestMemoryStoreCountsRepeatedClicks(t *testing.T) {
	store := NewMemoryStore()
	click := clicks.Click{Query: "chicken", Link: "http://recipes.test/1"}
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	require.NoError(t, store.Record(context.Background(), click, first))
	require.NoError(t, store.Record(context.Background(), click, second))

	record, ok := store.RecordFor("chicken", "http://recipes.test/1")
	require.True(t, ok)
	require.EqualValues(t, 2, record.Count)
	require.Equal(t, second, record.LastClickedAt)
}

func TestMemoryStoreTopLinksOrdering(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(context.Background(), clicks.Click{Query: "a", Link: "http://recipes.test/popular"}, now))
	}
	require.NoError(t, store.Record(context.Background(), clicks.Click{Query: "b", Link: "http://recipes.test/rare"}, now))

	top, err := store.TopLinks(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "http://recipes.test/popular", top[0].Link)
	require.EqualValues(t, 3, top[0].Count)
}

func TestMemoryStoreAggregatesAcrossQueries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	require.NoError(t, store.Record(context.Background(), clicks.Click{Query: "a", Link: "http://recipes.test/1"}, now))
	require.NoError(t, store.Record(context.Background(), clicks.Click{Query: "b", Link: "http://recipes.test/1"}, now))

	top, err := store.TopLinks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.EqualValues(t, 2, top[0].Count)
}
