package main

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
	"github.com/calvarezg/recipe-search/internal/infra/clickstore"
	"github.com/calvarezg/recipe-search/internal/infra/config"
	"github.com/calvarezg/recipe-search/internal/infra/dataset"
	"github.com/calvarezg/recipe-search/internal/infra/embedding"
	"github.com/calvarezg/recipe-search/internal/infra/recipeindex"
	"github.com/calvarezg/recipe-search/internal/infra/resultcache"
	"github.com/calvarezg/recipe-search/internal/infra/secrets"
)

func provideSearchConfig(cfg *config.Config) search.Config {
	return search.Config{
		CacheTTL:   cfg.Search.CacheTTL,
		PageSize:   cfg.Search.PageSize,
		MaxResults: cfg.Search.MaxResults,
	}
}

func provideClicksConfig(cfg *config.Config) clicks.Config {
	return clicks.Config{
		TopLimit: cfg.Clicks.TopLimit,
	}
}

func provideIngestConfig(cfg *config.Config) ingest.Config {
	return ingest.Config{
		BatchSize: cfg.Ingest.BatchSize,
	}
}

func provideEmbedder(cfg *config.Config, logger *slog.Logger) search.Embedder {
	if strings.TrimSpace(cfg.Embedding.APIKey) == "" {
		logger.Info("embedding api key not set, using deterministic embedder")
		return embedding.NewDeterministicEmbedder(0)
	}
	embedder, err := embedding.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.BaseURL, cfg.Embedding.Model, logger)
	if err != nil {
		logger.Error("failed to initialize embeddings client, using deterministic embedder", "error", err)
		return embedding.NewDeterministicEmbedder(0)
	}
	return embedder
}

// provideCacheClient returns a live Valkey client or nil when the cache
// store is disabled or unreachable; callers fall back to memory stores.
func provideCacheClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Cache.Enabled {
		return nil
	}

	cacheCfg := resolveCacheCreds(cfg.Cache, logger)

	opt := valkey.ClientOption{InitAddress: []string{cacheCfg.Addr()}}
	if cacheCfg.Username != "" {
		opt.Username = cacheCfg.Username
	}
	if cacheCfg.Password != "" {
		opt.Password = cacheCfg.Password
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stores", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stores", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey cache store enabled", "addr", cacheCfg.Addr())
	return client
}

// resolveCacheCreds overlays Secrets Manager values on top of the static
// configuration, matching the env fallback the original deployment used.
func resolveCacheCreds(cacheCfg config.CacheConfig, logger *slog.Logger) config.CacheConfig {
	name := strings.TrimSpace(cacheCfg.SecretName)
	if name == "" {
		return cacheCfg
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	values, err := secrets.Lookup(ctx, name)
	if err != nil {
		logger.Warn("cache secret lookup failed, using configured credentials", "secret", name, "error", err)
		return cacheCfg
	}
	if v := values["REDIS_HOST"]; v != "" {
		cacheCfg.Host = v
	}
	if v := values["REDIS_PORT"]; v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cacheCfg.Port = parsed
		}
	}
	if v := values["REDIS_USERNAME"]; v != "" {
		cacheCfg.Username = v
	}
	if v := values["REDIS_PASSWORD"]; v != "" {
		cacheCfg.Password = v
	}
	return cacheCfg
}

func provideResultCache(client valkey.Client, logger *slog.Logger) search.ResultCache {
	if client == nil {
		logger.Info("result cache using memory store")
		return resultcache.NewMemoryCache()
	}
	return resultcache.NewValkeyCache(client)
}

func provideClickStore(client valkey.Client, logger *slog.Logger) clicks.Store {
	if client == nil {
		logger.Info("click store using memory store")
		return clickstore.NewMemoryStore()
	}
	return clickstore.NewValkeyStore(client, "clicks")
}

func provideRecipeIndex(cfg *config.Config, logger *slog.Logger) search.RecipeIndex {
	fallback := recipeindex.NewMemoryIndex()
	dsn := strings.TrimSpace(cfg.Index.PostgresDSN)
	if dsn == "" {
		logger.Info("index postgres dsn not set, using memory index")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory index", "error", err)
		return fallback
	}
	if cfg.Index.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Index.MaxConns
	}
	if cfg.Index.MinConns > 0 {
		poolConfig.MinConns = cfg.Index.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory index", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory index", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("pgvector recipe index enabled")
	return recipeindex.NewPostgresIndex(pool)
}

func provideDatasetLoader(cfg *config.Config, logger *slog.Logger) ingest.Loader {
	ds := cfg.Ingest.Dataset
	if ds.Source == "minio" {
		loader, err := dataset.NewMinioLoader(ds.Endpoint, ds.AccessKey, ds.SecretKey, ds.Bucket, ds.Object, ds.UseSSL, logger)
		if err != nil {
			logger.Error("failed to initialize object store loader, using file loader", "error", err)
			return dataset.NewFileLoader(ds.Path)
		}
		return loader
	}
	return dataset.NewFileLoader(ds.Path)
}
