package client

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Sternrassler/gh-rest-client/pkg/auth"
	"github.com/Sternrassler/gh-rest-client/pkg/cache"
	"github.com/rs/zerolog"
)

// UserAgent is sent with every request.
const UserAgent = "Sternrassler/gh-rest-client"

// defaultHeaderTransport applies the headers every GitHub request carries.
// Credentials are attached only to requests for the API host, so redirects
// to asset or archive hosts go out anonymously.
type defaultHeaderTransport struct {
	auth   auth.Strategy
	host   string
	authed http.RoundTripper
	plain  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *defaultHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	// Endpoints that need a preview media type set Accept themselves.
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", MediaTypeV3)
	}
	req.Header.Set("User-Agent", UserAgent)

	if !strings.EqualFold(req.URL.Host, t.host) {
		return t.plain.RoundTrip(req)
	}
	t.auth.ConfigureRequest(req)
	return t.authed.RoundTrip(req)
}

// buildHTTPClient picks the underlying transport from cfg and layers the
// client's behavior on top of it. cfg has already been validated.
//
// Layers, outermost first: default headers, strategy transport hook,
// conditional cache, engine.
func buildHTTPClient(cfg Config, baseURL *url.URL, logger zerolog.Logger) *http.Client {
	var hc http.Client
	var engine http.RoundTripper

	switch {
	case cfg.HTTPClient != nil:
		hc = *cfg.HTTPClient
		engine = cfg.HTTPClient.Transport
	case cfg.Transport != nil:
		engine = cfg.Transport
	}
	if engine == nil {
		engine = http.DefaultTransport
	}

	rt := engine
	if cfg.Cache != nil {
		rt = cache.NewTransport(rt, cfg.Cache, logger)
	}

	hc.Transport = &defaultHeaderTransport{
		auth:   cfg.Auth,
		host:   baseURL.Host,
		authed: cfg.Auth.ConfigureTransport(rt),
		plain:  rt,
	}
	return &hc
}
