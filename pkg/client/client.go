// Package client provides the core GitHub REST API v3 client: request
// construction, authentication, transport setup and error translation.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/gh-rest-client/pkg/auth"
	"github.com/Sternrassler/gh-rest-client/pkg/cache"
	"github.com/Sternrassler/gh-rest-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Prometheus metrics for GitHub client operations.
var (
	githubRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_requests_total",
		Help: "Total GitHub API requests by method and status",
	}, []string{"method", "status"})

	githubRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_request_duration_seconds",
		Help:    "GitHub API request duration in seconds by method",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"method"})

	githubErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_errors_total",
		Help: "Total GitHub API errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of failed calls.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents responses that did not match the declared type.
	ErrorClassDecode ErrorClass = "decode"
)

// Client is the GitHub API client. It is immutable after New and safe for
// concurrent use.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	interceptors []ResponseInterceptor
	logger       zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API. Must start with https://.
	BaseURL string

	// Auth is the authentication strategy (default: auth.None).
	Auth auth.Strategy

	// HTTPClient is a preconfigured client whose transport is wrapped.
	// Mutually exclusive with Transport.
	HTTPClient *http.Client

	// Transport is the HTTP engine requests are executed with.
	// Mutually exclusive with HTTPClient.
	Transport http.RoundTripper

	// Cache enables ETag based conditional requests (optional).
	Cache *cache.Manager

	// Interceptors run, in order, on every response before error translation.
	Interceptors []ResponseInterceptor

	// Logger overrides the component logger (optional).
	Logger *zerolog.Logger
}

// DefaultConfig returns an unauthenticated configuration for api.github.com.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Auth:    auth.None{},
	}
}

// New creates a new GitHub client. Configuration problems are reported as
// *ConfigurationError before any transport is created.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, &ConfigurationError{
			Field:  "base_url",
			Reason: fmt.Sprintf("must start with https:// (got %q)", cfg.BaseURL),
		}
	}

	if cfg.HTTPClient != nil && cfg.Transport != nil {
		return nil, &ConfigurationError{
			Field:  "transport",
			Reason: "http client and transport are mutually exclusive",
		}
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil || baseURL.Host == "" {
		return nil, &ConfigurationError{
			Field:  "base_url",
			Reason: fmt.Sprintf("not a valid URL (got %q)", cfg.BaseURL),
		}
	}
	baseURL.RawQuery = ""
	baseURL.Fragment = ""

	if cfg.Auth == nil {
		cfg.Auth = auth.None{}
	}

	logger := logging.NewLogger("github-client")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	interceptors := make([]ResponseInterceptor, 0, len(cfg.Interceptors)+1)
	interceptors = append(interceptors, cfg.Interceptors...)
	interceptors = append(interceptors, translateErrors)

	logger.Debug().
		Str("base_url", baseURL.String()).
		Str("auth", auth.Name(cfg.Auth)).
		Bool("cache", cfg.Cache != nil).
		Msg("GitHub client initialized")

	return &Client{
		baseURL:      baseURL,
		httpClient:   buildHTTPClient(cfg, baseURL, logger),
		interceptors: interceptors,
		logger:       logger,
	}, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do executes req and runs the response interceptors. The returned response
// always has a 2xx status; its body must be closed by the caller.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	method := req.Method
	target := req.URL.String()

	startTime := time.Now()
	defer func() {
		githubRequestDuration.WithLabelValues(method).Observe(time.Since(startTime).Seconds())
	}()

	c.logger.Debug().
		Str("method", method).
		Str("url", target).
		Msg("Executing GitHub request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", target).Msg("HTTP request failed")
		githubErrorsTotal.WithLabelValues(string(c.classifyError(nil, err))).Inc()
		githubRequestsTotal.WithLabelValues(method, "network_error").Inc()
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	githubRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	for _, intercept := range c.interceptors {
		if err := intercept(resp); err != nil {
			resp.Body.Close()
			var reqErr *RequestError
			if errors.As(err, &reqErr) && reqErr.URL == "" {
				reqErr.Method = method
				reqErr.URL = target
			}
			if errClass := c.classifyError(resp, nil); errClass != "" {
				githubErrorsTotal.WithLabelValues(string(errClass)).Inc()
			}
			c.logger.Warn().
				Err(err).
				Str("method", method).
				Str("url", target).
				Int("status", resp.StatusCode).
				Msg("GitHub request rejected")
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		errClass := c.classifyError(resp, nil)
		if errClass != "" {
			githubErrorsTotal.WithLabelValues(string(errClass)).Inc()
		}
		c.logger.Warn().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("GitHub request error")
		return nil, &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	return resp, nil
}

// classifyError categorizes a failed call for observability.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
