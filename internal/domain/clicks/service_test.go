package clicks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
)

func TestRecordStoresClick(t *testing.T) {
	var got Click
	var gotAt time.Time
	store := &stubStore{
		recordFn: func(_ context.Context, click Click, at time.Time) error {
			got = click
			gotAt = at
			return nil
		},
	}
	svc := newServiceUnderTest(store)

	err := svc.Record(context.Background(), Click{Query: " chicken soup ", Link: "http://recipes.test/1"})
	require.NoError(t, err)
	require.Equal(t, Click{Query: "chicken soup", Link: "http://recipes.test/1"}, got)
	require.False(t, gotAt.IsZero())
}

func TestRecordRejectsEmptyFields(t *testing.T) {
	svc := newServiceUnderTest(&stubStore{})

	err := svc.Record(context.Background(), Click{Query: "", Link: "http://recipes.test/1"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	err = svc.Record(context.Background(), Click{Query: "chicken", Link: "  "})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRecordWrapsStoreFailure(t *testing.T) {
	store := &stubStore{
		recordFn: func(context.Context, Click, time.Time) error {
			return errors.New("connection refused")
		},
	}
	svc := newServiceUnderTest(store)

	err := svc.Record(context.Background(), Click{Query: "chicken", Link: "http://recipes.test/1"})
	require.True(t, apperrors.IsCode(err, "click_error"))
}

func TestTopLinksUsesConfiguredLimit(t *testing.T) {
	expected := []TopLink{{Link: "http://recipes.test/1", Count: 4}}
	store := &stubStore{
		topFn: func(_ context.Context, limit int) ([]TopLink, error) {
			require.Equal(t, 10, limit)
			return expected, nil
		},
	}
	svc := newServiceUnderTest(store)

	links, err := svc.TopLinks(context.Background())
	require.NoError(t, err)
	require.Equal(t, expected, links)
}

func newServiceUnderTest(store Store) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{TopLimit: 10}, store, logger)
}

type stubStore struct {
	recordFn func(ctx context.Context, click Click, at time.Time) error
	topFn    func(ctx context.Context, limit int) ([]TopLink, error)
}

func (s *stubStore) Record(ctx context.Context, click Click, at time.Time) error {
	if s.recordFn != nil {
		return s.recordFn(ctx, click, at)
	}
	return nil
}

func (s *stubStore) TopLinks(ctx context.Context, limit int) ([]TopLink, error) {
	if s.topFn != nil {
		return s.topFn(ctx, limit)
	}
	return nil, nil
}
