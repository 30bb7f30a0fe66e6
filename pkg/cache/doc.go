// Package cache provides ETag based conditional request caching for the
// GitHub client, backed by Redis.
//
// GitHub answers a conditional request with 304 Not Modified when the
// resource is unchanged, and such responses do not count against the rate
// limit. The cache stores successful GET responses together with their
// validators and revalidates them on every call:
//
//   - ETag support for conditional requests (If-None-Match)
//   - Last-Modified support (If-Modified-Since)
//   - Freshness from Cache-Control max-age or Expires
//   - Entries are keyed per credential so private data is never shared
//   - Prometheus metrics for observability
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, 0)
//
//	c, err := client.New(client.Config{
//		Auth:  auth.BearerToken{Token: token},
//		Cache: manager,
//	})
//
// # Manual Usage
//
//	key := cache.CacheKey{
//		Endpoint:    "/repos/octocat/hello-world",
//		QueryParams: url.Values{"per_page": []string{"30"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from GitHub
//	}
//
// # Metrics
//
//   - github_cache_hits_total{layer="redis"} - Cache hits
//   - github_cache_misses_total - Cache misses
//   - github_cache_bytes_written_total{layer="redis"} - Bytes written to the cache
//   - github_304_responses_total - Conditional request successes
//   - github_conditional_requests_total{entry} - Conditional requests sent, by fresh/stale entry
//   - github_cache_errors_total{operation} - Cache operation errors
//
// Cache failures are logged and never fail the request that triggered them.
package cache
