package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvarezg/recipe-search/internal/domain/search"
	"github.com/calvarezg/recipe-search/internal/infra/embedding"
	"github.com/calvarezg/recipe-search/internal/infra/recipeindex"
	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
)

func TestRunIndexesWholeDataset(t *testing.T) {
	docs := []search.Document{
		{ID: "1", Title: "Chicken Soup", Link: "http://recipes.test/1", Description: "warm and hearty"},
		{ID: "2", Title: "Beef Stew", Link: "http://recipes.test/2", Description: "slow cooked"},
		{ID: "3", Title: "Pancakes", Link: "http://recipes.test/3"},
	}
	index := recipeindex.NewMemoryIndex()
	svc := newServiceUnderTest(2, &stubLoader{docs: docs}, index)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Loaded: 3, Indexed: 3}, summary)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestRunIsIdempotentPerLink(t *testing.T) {
	docs := []search.Document{
		{ID: "1", Title: "Chicken Soup", Link: "http://recipes.test/1"},
	}
	index := recipeindex.NewMemoryIndex()
	svc := newServiceUnderTest(8, &stubLoader{docs: docs}, index)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRunWrapsLoaderFailure(t *testing.T) {
	svc := newServiceUnderTest(8, &stubLoader{err: errors.New("bucket missing")}, recipeindex.NewMemoryIndex())

	_, err := svc.Run(context.Background())
	require.True(t, apperrors.IsCode(err, "ingest_error"))
}

func newServiceUnderTest(batchSize int, loader Loader, index search.RecipeIndex) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{BatchSize: batchSize}, loader, index, embedding.NewDeterministicEmbedder(8), logger)
}

type stubLoader struct {
	docs []search.Document
	err  error
}

func (s *stubLoader) Load(context.Context) ([]search.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}
