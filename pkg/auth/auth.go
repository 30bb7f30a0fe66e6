// Package auth provides the authentication strategies supported by the
// GitHub REST client.
//
// A Strategy contributes to outgoing traffic through two hooks:
//
//   - ConfigureTransport wraps the HTTP transport once, when the client is built.
//   - ConfigureRequest runs on every outgoing request.
//
// The set of strategies is closed: None, Basic and BearerToken.
package auth

import (
	"net/http"
)

// Strategy is an authentication scheme for the GitHub API.
type Strategy interface {
	// ConfigureTransport returns the transport requests are sent through.
	// Strategies without transport-level behavior return base unchanged.
	ConfigureTransport(base http.RoundTripper) http.RoundTripper

	// ConfigureRequest mutates an outgoing request, typically by adding headers.
	ConfigureRequest(req *http.Request)

	strategy()
}

// None performs unauthenticated requests.
type None struct{}

// ConfigureTransport returns base unchanged.
func (None) ConfigureTransport(base http.RoundTripper) http.RoundTripper { return base }

// ConfigureRequest does nothing.
func (None) ConfigureRequest(*http.Request) {}

func (None) strategy() {}

// Basic authenticates with HTTP Basic credentials.
// Credentials are sent with every request, not only after a 401 challenge.
type Basic struct {
	Username string
	Secret   string
}

// ConfigureTransport wraps base so that every request carries the credentials.
func (b Basic) ConfigureTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &basicTransport{
		username: b.Username,
		secret:   b.Secret,
		base:     base,
	}
}

// ConfigureRequest does nothing; Basic works at the transport layer.
func (Basic) ConfigureRequest(*http.Request) {}

func (Basic) strategy() {}

// BearerToken authenticates with an OAuth or personal access token.
type BearerToken struct {
	Token string
}

// ConfigureTransport returns base unchanged.
func (BearerToken) ConfigureTransport(base http.RoundTripper) http.RoundTripper { return base }

// ConfigureRequest sets the Authorization header using GitHub's token scheme.
func (t BearerToken) ConfigureRequest(req *http.Request) {
	req.Header.Set("Authorization", "token "+t.Token)
}

func (BearerToken) strategy() {}

// Name returns a short label for the strategy, used in logs.
func Name(s Strategy) string {
	switch s.(type) {
	case Basic, *Basic:
		return "basic"
	case BearerToken, *BearerToken:
		return "token"
	default:
		return "none"
	}
}

// basicTransport sets Basic credentials pre-emptively.
type basicTransport struct {
	username string
	secret   string
	base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *basicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.secret)
	return t.base.RoundTrip(req)
}
