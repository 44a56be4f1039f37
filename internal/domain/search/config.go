package search

import "time"

// Config holds runtime knobs for the search service.
type Config struct {
	CacheTTL   time.Duration
	PageSize   int
	MaxResults int
}
