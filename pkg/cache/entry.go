package cache

import (
	"net/http"
	"time"
)

// Freshness labels used for revalidation metrics and logs.
const (
	FreshnessFresh = "fresh"
	FreshnessStale = "stale"
)

// CacheEntry is a stored 200 response together with the validators GitHub
// sent for it.
type CacheEntry struct {
	Data         []byte      `json:"data"`
	ETag         string      `json:"etag"`
	LastModified time.Time   `json:"last_modified"`
	StatusCode   int         `json:"status_code"`
	Headers      http.Header `json:"headers"`

	// Expires is the end of the freshness lifetime announced by
	// Cache-Control max-age (or Expires).
	Expires time.Time `json:"expires"`

	CachedAt time.Time `json:"cached_at"`

	// RevalidatedAt is set whenever a 304 confirmed the entry.
	RevalidatedAt time.Time `json:"revalidated_at,omitzero"`
}

// IsExpired reports whether the freshness lifetime has passed. Expired
// entries are kept and still revalidated with their validators.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// Freshness returns FreshnessFresh or FreshnessStale.
func (e *CacheEntry) Freshness() string {
	if e.IsExpired() {
		return FreshnessStale
	}
	return FreshnessFresh
}

// TTL returns the remaining freshness, 0 once stale.
func (e *CacheEntry) TTL() time.Duration {
	return max(time.Until(e.Expires), 0)
}

// StorageTTL is how long the backend keeps the entry: the remaining
// freshness plus the retention window during which a stale entry can still
// be revalidated.
func (e *CacheEntry) StorageTTL(retention time.Duration) time.Duration {
	return e.TTL() + max(retention, 0)
}

// HasValidators reports whether the entry can be revalidated.
func (e *CacheEntry) HasValidators() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}

// Refresh records a 304 that extended the freshness to expires.
func (e *CacheEntry) Refresh(expires time.Time) {
	e.Expires = expires
	e.RevalidatedAt = time.Now()
}
