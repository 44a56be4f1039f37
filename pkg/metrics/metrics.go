package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the search and click paths. Registered against the default
// registry and served through the /metrics endpoint.
var (
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_search_requests_total",
		Help: "Search requests partitioned by outcome.",
	}, []string{"outcome"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_search_cache_lookups_total",
		Help: "Result cache lookups partitioned by hit or miss.",
	}, []string{"result"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recipe_search_duration_seconds",
		Help:    "End to end latency of the search operation.",
		Buckets: prometheus.DefBuckets,
	})

	ClicksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipe_clicks_recorded_total",
		Help: "Click events accepted by the click endpoint.",
	})

	RecipesIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipe_documents_indexed_total",
		Help: "Recipe documents upserted into the vector index.",
	})
)
