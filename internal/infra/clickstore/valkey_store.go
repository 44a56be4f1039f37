package clickstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
)

// ValkeyStore persists click events in a Valkey-compatible database. Each
// (query, link) pair occupies one hash keyed clicks:{query}:{link}; a sorted
// set keeps the per-link aggregate for the analytics read path.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a click store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "clicks"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Record(ctx context.Context, click clicks.Click, at time.Time) error {
	key := s.pairKey(click.Query, click.Link)
	if err := s.client.Do(ctx, s.client.B().Hincrby().Key(key).Field("count").Increment(1).Build()).Error(); err != nil {
		return err
	}
	if err := s.client.Do(ctx, s.client.B().Hset().Key(key).FieldValue().
		FieldValue("query", click.Query).
		FieldValue("link", click.Link).
		FieldValue("lastClickedAt", at.Format(time.RFC3339)).
		Build()).Error(); err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Zincrby().Key(s.topKey()).Increment(1).Member(click.Link).Build()).Error()
}

func (s *ValkeyStore) TopLinks(ctx context.Context, limit int) ([]clicks.TopLink, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.topKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]clicks.TopLink, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element.
			if member, err = tuple[0].ToString(); err != nil {
				if valkey.IsValkeyNil(err) {
					i++
					continue
				}
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				if valkey.IsValkeyNil(err) {
					i += 2
					continue
				}
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, clicks.TopLink{Link: member, Count: int64(score)})
	}
	return out, nil
}

func (s *ValkeyStore) pairKey(query, link string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, query, link)
}

func (s *ValkeyStore) topKey() string {
	return fmt.Sprintf("%s:top", s.prefix)
}

var _ clicks.Store = (*ValkeyStore)(nil)
