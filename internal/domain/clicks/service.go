package clicks

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
	"github.com/calvarezg/recipe-search/pkg/metrics"
	"github.com/calvarezg/recipe-search/pkg/util"
)

// Service records click-through events and serves the analytics read path.
type Service interface {
	Record(ctx context.Context, click Click) error
	TopLinks(ctx context.Context) ([]TopLink, error)
}

// Config holds runtime knobs for click analytics.
type Config struct {
	TopLimit int
}

type service struct {
	cfg    Config
	store  Store
	logger *slog.Logger
}

// NewService wires up the clicks domain.
func NewService(cfg Config, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "clicks.service"),
	}
}

func (s *service) Record(ctx context.Context, click Click) error {
	click.Query = strings.TrimSpace(click.Query)
	click.Link = strings.TrimSpace(click.Link)
	if click.Query == "" {
		return apperrors.Wrap("invalid_input", "query cannot be empty", nil)
	}
	if click.Link == "" {
		return apperrors.Wrap("invalid_input", "link cannot be empty", nil)
	}
	if err := s.store.Record(ctx, click, util.NowUTC()); err != nil {
		return apperrors.Wrap("click_error", "failed to record click", err)
	}
	metrics.ClicksRecorded.Inc()
	return nil
}

func (s *service) TopLinks(ctx context.Context) ([]TopLink, error) {
	links, err := s.store.TopLinks(ctx, s.cfg.TopLimit)
	if err != nil {
		return nil, apperrors.Wrap("click_error", "failed to load top links", err)
	}
	return links, nil
}
