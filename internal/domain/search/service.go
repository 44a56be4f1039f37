package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
	"github.com/calvarezg/recipe-search/pkg/metrics"
)

// Service exposes ranked recipe retrieval.
type Service interface {
	Search(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg      Config
	cache    ResultCache
	index    RecipeIndex
	embedder Embedder
	logger   *slog.Logger
}

// NewService wires up the search domain.
func NewService(cfg Config, cache ResultCache, index RecipeIndex, embedder Embedder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		cache:    cache,
		index:    index,
		embedder: embedder,
		logger:   logger.With("component", "search.service"),
	}
}

func (s *service) Search(ctx context.Context, req Request) (Response, error) {
	started := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(started).Seconds())
	}()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		metrics.SearchRequests.WithLabelValues("invalid").Inc()
		return Response{}, apperrors.Wrap("invalid_input", "query cannot be empty", nil)
	}
	if req.Page < 1 {
		metrics.SearchRequests.WithLabelValues("invalid").Inc()
		return Response{}, apperrors.Wrap("invalid_input", "page number must be greater than 0", nil)
	}

	key := CacheKey(query, req.Page)
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return Response{}, apperrors.Wrap("search_error", "result cache lookup failed", err)
	}
	if ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		metrics.SearchRequests.WithLabelValues("ok").Inc()
		return s.response(query, req.Page, cached), nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	vector, err := s.embedQuery(ctx, query)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return Response{}, apperrors.Wrap("embedding_error", "query embedding failed", err)
	}

	ranked, err := s.index.Search(ctx, vector, s.cfg.MaxResults)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return Response{}, apperrors.Wrap("search_error", "recipe index lookup failed", err)
	}

	page := paginate(ranked, req.Page, s.cfg.PageSize)

	// A failed cache write never fails the request.
	if err := s.cache.Set(ctx, key, page, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("result cache write failed", "query", query, "page", req.Page, "error", err)
	}

	metrics.SearchRequests.WithLabelValues("ok").Inc()
	return s.response(query, req.Page, page), nil
}

func (s *service) response(query string, page int, results []RecipeResult) Response {
	return Response{
		Query:   query,
		Page:    page,
		Results: results,
		HasMore: len(results) == s.cfg.PageSize,
	}
}

func (s *service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("embedding response empty")
	}
	return vectors[0], nil
}

func paginate(results []RecipeResult, page, pageSize int) []RecipeResult {
	start := (page - 1) * pageSize
	if start >= len(results) {
		return []RecipeResult{}
	}
	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
