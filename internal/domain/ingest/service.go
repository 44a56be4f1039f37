package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/calvarezg/recipe-search/internal/domain/search"
	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
	"github.com/calvarezg/recipe-search/pkg/metrics"
)

// Loader yields the recipe corpus from wherever it is stored.
type Loader interface {
	Load(ctx context.Context) ([]search.Document, error)
}

// Summary reports what an ingestion run accomplished.
type Summary struct {
	Loaded  int `json:"loaded"`
	Indexed int `json:"indexed"`
}

// Config holds runtime knobs for ingestion.
type Config struct {
	BatchSize int
}

// Service loads the recipe dataset, embeds it and fills the vector index.
type Service interface {
	Run(ctx context.Context) (Summary, error)
}

type service struct {
	cfg      Config
	loader   Loader
	index    search.RecipeIndex
	embedder search.Embedder
	logger   *slog.Logger
}

// NewService wires up the ingest domain.
func NewService(cfg Config, loader Loader, index search.RecipeIndex, embedder search.Embedder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		loader:   loader,
		index:    index,
		embedder: embedder,
		logger:   logger.With("component", "ingest.service"),
	}
}

func (s *service) Run(ctx context.Context) (Summary, error) {
	docs, err := s.loader.Load(ctx)
	if err != nil {
		return Summary{}, apperrors.Wrap("ingest_error", "dataset load failed", err)
	}

	summary := Summary{Loaded: len(docs)}
	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = embeddingText(doc)
		}
		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return summary, apperrors.Wrap("embedding_error", "batch embedding failed", err)
		}
		if len(vectors) != len(batch) {
			return summary, apperrors.Wrap("embedding_error",
				fmt.Sprintf("embedding count mismatch: expected %d got %d", len(batch), len(vectors)), nil)
		}
		if err := s.index.Upsert(ctx, batch, vectors); err != nil {
			return summary, apperrors.Wrap("ingest_error", "index upsert failed", err)
		}
		summary.Indexed += len(batch)
		metrics.RecipesIndexed.Add(float64(len(batch)))
	}

	s.logger.Info("ingestion finished", "loaded", summary.Loaded, "indexed", summary.Indexed)
	return summary, nil
}

// embeddingText flattens a document into the string handed to the embedder.
func embeddingText(doc search.Document) string {
	if strings.TrimSpace(doc.Description) == "" {
		return doc.Title
	}
	return doc.Title + "\n" + doc.Description
}
