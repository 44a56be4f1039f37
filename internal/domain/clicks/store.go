package clicks

import (
	"context"
	"time"
)

// Store persists click events for offline analytics.
type Store interface {
	Record(ctx context.Context, click Click, at time.Time) error
	TopLinks(ctx context.Context, limit int) ([]TopLink, error)
}
