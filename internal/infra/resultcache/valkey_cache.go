package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/calvarezg/recipe-search/internal/domain/search"
)

// ValkeyCache stores ranked result pages in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client) *ValkeyCache {
	return &ValkeyCache{client: client}
}

func (c *ValkeyCache) Get(ctx context.Context, key string) ([]search.RecipeResult, bool, error) {
	cmd := c.client.B().Get().Key(key).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var results []search.RecipeResult
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, key string, results []search.RecipeResult, ttl time.Duration) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

var _ search.ResultCache = (*ValkeyCache)(nil)
