// Package metrics exposes the Prometheus registry shared by the GitHub client.
// Metrics are defined in their respective packages (client, cache, pagination)
// to maintain modularity and avoid circular dependencies; this package serves
// them and documents what is available.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the GitHub client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer backing Handler.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the HTTP handler serving all registered metrics in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - github_requests_total{method, status} (Counter): Requests by method and HTTP status
//   - github_request_duration_seconds{method} (Histogram): Request duration by method
//   - github_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/cache):
//   - github_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - github_cache_misses_total (Counter): Cache misses
//   - github_cache_bytes_written_total{layer="redis"} (Counter): Bytes written to the cache
//   - github_304_responses_total (Counter): 304 Not Modified responses
//   - github_conditional_requests_total{entry} (Counter): Conditional requests sent, by fresh/stale entry
//   - github_cache_errors_total{operation} (Counter): Cache operation errors
//
// Pagination Metrics (pkg/pagination):
//   - github_pagination_pages_total (Counter): Pages fetched
//   - github_pagination_items_total (Counter): Items yielded
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(github_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(github_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(github_304_responses_total[5m]) / rate(github_requests_total{method="GET"}[5m])
//
//   # Average Page Fill
//   rate(github_pagination_items_total[5m]) / rate(github_pagination_pages_total[5m])
