package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Search    SearchConfig    `yaml:"search"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Index     IndexConfig     `yaml:"index"`
	Clicks    ClicksConfig    `yaml:"clicks"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Admin     AdminConfig     `yaml:"admin"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// SearchConfig holds the knobs for the recipe search domain.
type SearchConfig struct {
	CacheTTL   time.Duration `yaml:"cacheTtl"`
	PageSize   int           `yaml:"pageSize"`
	MaxResults int           `yaml:"maxResults"`
}

// EmbeddingConfig contains settings for the embeddings API client.
type EmbeddingConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// CacheConfig contains connection information for the Valkey/Redis store.
// SecretName, when set, names an AWS Secrets Manager entry whose JSON
// payload overrides the host, port and credential fields at startup.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SecretName string `yaml:"secretName"`
}

// Addr renders the host/port pair in the form the Valkey client expects.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IndexConfig contains DSN and pooling settings for the pgvector index.
type IndexConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
	MinConns    int32  `yaml:"minConns"`
}

// ClicksConfig controls click analytics behavior.
type ClicksConfig struct {
	TopLimit int `yaml:"topLimit"`
}

// IngestConfig controls dataset ingestion.
type IngestConfig struct {
	BatchSize int           `yaml:"batchSize"`
	Dataset   DatasetConfig `yaml:"dataset"`
}

// DatasetConfig locates the recipe corpus. Source is either "file" or "minio".
type DatasetConfig struct {
	Source    string `yaml:"source"`
	Path      string `yaml:"path"`
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Object    string `yaml:"object"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSsl"`
}

// AdminConfig protects the operational endpoints.
type AdminConfig struct {
	TokenSecret string `yaml:"tokenSecret"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("SEARCH_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Search.CacheTTL = parsed
		}
	}
	if v := os.Getenv("SEARCH_PAGE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.PageSize = parsed
		}
	}
	if v := os.Getenv("SEARCH_MAX_RESULTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = parsed
		}
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = isTruthy(v)
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Cache.Host = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Port = parsed
		}
	}
	if v := os.Getenv("REDIS_USERNAME"); v != "" {
		cfg.Cache.Username = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("CACHE_SECRET_NAME"); v != "" {
		cfg.Cache.SecretName = v
	}
	if v := os.Getenv("INDEX_POSTGRES_DSN"); v != "" {
		cfg.Index.PostgresDSN = v
	}
	if v := os.Getenv("INDEX_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Index.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("INDEX_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Index.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CLICKS_TOP_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Clicks.TopLimit = parsed
		}
	}
	if v := os.Getenv("INGEST_BATCH_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ingest.BatchSize = parsed
		}
	}
	if v := os.Getenv("DATASET_SOURCE"); v != "" {
		cfg.Ingest.Dataset.Source = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Ingest.Dataset.Path = v
	}
	if v := os.Getenv("DATASET_ENDPOINT"); v != "" {
		cfg.Ingest.Dataset.Endpoint = v
	}
	if v := os.Getenv("DATASET_BUCKET"); v != "" {
		cfg.Ingest.Dataset.Bucket = v
	}
	if v := os.Getenv("DATASET_OBJECT"); v != "" {
		cfg.Ingest.Dataset.Object = v
	}
	if v := os.Getenv("DATASET_ACCESS_KEY"); v != "" {
		cfg.Ingest.Dataset.AccessKey = v
	}
	if v := os.Getenv("DATASET_SECRET_KEY"); v != "" {
		cfg.Ingest.Dataset.SecretKey = v
	}
	if v := os.Getenv("DATASET_USE_SSL"); v != "" {
		cfg.Ingest.Dataset.UseSSL = isTruthy(v)
	}
	if v := os.Getenv("ADMIN_TOKEN_SECRET"); v != "" {
		cfg.Admin.TokenSecret = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/admin/ingest",
				},
			},
		},
		Search: SearchConfig{
			CacheTTL:   3 * time.Second,
			PageSize:   3,
			MaxResults: 100,
		},
		Embedding: EmbeddingConfig{
			Model: "text-embedding-3-small",
		},
		Cache: CacheConfig{
			Port: 6379,
		},
		Index: IndexConfig{
			MaxConns: 4,
			MinConns: 0,
		},
		Clicks: ClicksConfig{
			TopLimit: 10,
		},
		Ingest: IngestConfig{
			BatchSize: 64,
			Dataset: DatasetConfig{
				Source: "file",
				Path:   "data/recipes.jsonl",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Search.CacheTTL < 0 {
		return errors.New("search.cacheTtl cannot be negative")
	}
	if c.Search.PageSize <= 0 {
		return errors.New("search.pageSize must be positive")
	}
	if c.Search.MaxResults < c.Search.PageSize {
		return errors.New("search.maxResults must be at least search.pageSize")
	}
	if strings.TrimSpace(c.Embedding.Model) == "" {
		return errors.New("embedding.model cannot be empty")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Host) == "" && strings.TrimSpace(c.Cache.SecretName) == "" {
		return errors.New("cache.host cannot be empty when the cache store is enabled")
	}
	if c.Cache.Port <= 0 || c.Cache.Port > 65535 {
		return errors.New("cache.port must be a valid TCP port")
	}
	if c.Clicks.TopLimit < 0 {
		return errors.New("clicks.topLimit cannot be negative")
	}
	if c.Ingest.BatchSize <= 0 {
		return errors.New("ingest.batchSize must be positive")
	}
	switch c.Ingest.Dataset.Source {
	case "file", "minio":
	default:
		return fmt.Errorf("ingest.dataset.source must be file or minio, got %q", c.Ingest.Dataset.Source)
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
