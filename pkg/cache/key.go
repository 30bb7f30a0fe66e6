package cache

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CacheKey represents a unique identifier for a cached GitHub response.
type CacheKey struct {
	// Endpoint is the request path (e.g., "/repos/octocat/hello-world")
	Endpoint string

	// QueryParams are the query parameters (e.g., {"per_page": "30"})
	QueryParams url.Values

	// Accept is the requested media type; preview media types change the body.
	Accept string

	// Principal identifies the credential the response was fetched with
	// (empty for unauthenticated requests).
	Principal string
}

// String generates a deterministic cache key string.
// Format: gh:endpoint:query1=val1:accept=type:auth=principal
//
// Example:
//
//	gh:repos/octocat/hello-world:page=1:per_page=30
func (k CacheKey) String() string {
	parts := []string{"gh"}

	// Add endpoint (normalize path)
	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Add query params (sorted for determinism)
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, strings.Join(k.QueryParams[key], ",")))
		}
	}

	if k.Accept != "" {
		parts = append(parts, "accept="+k.Accept)
	}

	if k.Principal != "" {
		parts = append(parts, "auth="+k.Principal)
	}

	return strings.Join(parts, ":")
}

// Fingerprint returns a stable, non-reversible identifier for a credential.
func Fingerprint(authorization string) string {
	if authorization == "" {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(authorization), 16)
}

// KeyForRequest builds the cache key for an outgoing request.
func KeyForRequest(req *http.Request) CacheKey {
	return CacheKey{
		Endpoint:    req.URL.Path,
		QueryParams: req.URL.Query(),
		Accept:      req.Header.Get("Accept"),
		Principal:   Fingerprint(req.Header.Get("Authorization")),
	}
}
