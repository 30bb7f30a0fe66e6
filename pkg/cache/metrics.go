package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_cache_hits_total",
			Help: "Total number of GitHub cache hits",
		},
		[]string{"layer"}, // "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_cache_misses_total",
			Help: "Total number of GitHub cache misses",
		},
	)

	// CacheBytesWritten tracks bytes written to the cache by layer
	CacheBytesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_cache_bytes_written_total",
			Help: "Total bytes written to the GitHub cache",
		},
		[]string{"layer"}, // "redis"
	)

	// NotModifiedResponses tracks 304 Not Modified responses
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "github_304_responses_total",
			Help: "Total number of GitHub 304 Not Modified responses",
		},
	)

	// ConditionalRequestsSent tracks requests sent with validators by the
	// freshness of the entry being revalidated
	ConditionalRequestsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_conditional_requests_total",
			Help: "Total number of conditional requests sent to GitHub",
		},
		[]string{"entry"}, // "fresh", "stale"
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
