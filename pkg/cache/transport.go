package cache

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Transport is an http.RoundTripper that revalidates cached GET responses
// with conditional requests. Every call still makes exactly one request
// to the underlying transport.
type Transport struct {
	base    http.RoundTripper
	manager *Manager
	logger  zerolog.Logger
}

// NewTransport wraps base with conditional request caching.
func NewTransport(base http.RoundTripper, manager *Manager, logger zerolog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:    base,
		manager: manager,
		logger:  logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	key := KeyForRequest(req)

	entry, err := t.manager.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		t.logger.Warn().Err(err).Str("endpoint", key.Endpoint).Msg("Cache get error")
	}

	outgoing := req
	if ShouldMakeConditionalRequest(entry) {
		outgoing = req.Clone(ctx)
		AddConditionalHeaders(outgoing, entry)
		ConditionalRequestsSent.WithLabelValues(entry.Freshness()).Inc()
		t.logger.Debug().
			Str("endpoint", key.Endpoint).
			Str("etag", entry.ETag).
			Bool("stale", entry.IsExpired()).
			Msg("Making conditional request")
	}

	resp, err := t.base.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotModified && entry != nil:
		NotModifiedResponses.Inc()
		t.logger.Debug().Str("endpoint", key.Endpoint).Msg("304 Not Modified - using cache")

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		expires := parseExpires(resp.Header)
		if refreshed, err := t.manager.UpdateTTL(ctx, key, expires); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to refresh cache entry")
			entry.Refresh(expires)
		} else {
			entry = refreshed
		}
		return EntryToResponse(entry, req), nil

	case resp.StatusCode == http.StatusOK && (resp.Header.Get("ETag") != "" || resp.Header.Get("Last-Modified") != ""):
		fresh, err := ResponseToEntry(resp)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		if err := t.manager.Set(ctx, key, fresh); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to cache response")
		} else {
			t.logger.Debug().
				Str("endpoint", key.Endpoint).
				Dur("ttl", fresh.TTL()).
				Msg("Cached response")
		}

	case entry != nil && (resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone):
		// The stored validators no longer describe the resource.
		if err := t.manager.Delete(ctx, key); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to evict cache entry")
		} else {
			t.logger.Debug().
				Str("endpoint", key.Endpoint).
				Int("status", resp.StatusCode).
				Msg("Evicted cache entry")
		}
	}

	return resp, nil
}
