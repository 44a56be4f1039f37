//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/calvarezg/recipe-search/internal/bootstrap"
	"github.com/calvarezg/recipe-search/internal/domain/clicks"
	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
	"github.com/calvarezg/recipe-search/internal/infra/config"
	httpiface "github.com/calvarezg/recipe-search/internal/interface/http"
	"github.com/calvarezg/recipe-search/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSearchConfig,
		provideClicksConfig,
		provideIngestConfig,
		provideEmbedder,
		provideCacheClient,
		provideResultCache,
		provideClickStore,
		provideRecipeIndex,
		provideDatasetLoader,
		search.NewService,
		clicks.NewService,
		ingest.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
