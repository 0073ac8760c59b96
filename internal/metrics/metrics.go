// Package metrics registers the feed engine's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedCacheHits counts ranked-feed pages served from cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfare_feed_cache_hits_total",
		Help: "Ranked feed pages served from the cache.",
	})

	// FeedCacheMisses counts ranked-feed requests that recomputed the page.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfare_feed_cache_misses_total",
		Help: "Ranked feed requests that missed the cache.",
	})

	// FeedCacheErrors counts cache reads/writes that failed and were
	// recovered by failing open.
	FeedCacheErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfare_feed_cache_errors_total",
		Help: "Cache failures recovered by recomputing the page.",
	})

	// FeedPagesBuilt counts freshly computed ranked feed pages.
	FeedPagesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wayfare_feed_pages_built_total",
		Help: "Ranked feed pages computed from the store.",
	})
)
