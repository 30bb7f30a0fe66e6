package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// Page size bounds accepted by GitHub list endpoints.
const (
	MinPerPage = 1
	MaxPerPage = 100
)

// RequestSpec describes a single API call before it is sent.
type RequestSpec struct {
	Method   string
	Segments []string
	Query    url.Values
	Header   http.Header
	Body     any
}

// RequestOption customizes a RequestSpec.
type RequestOption func(*RequestSpec) error

// WithMethod overrides the HTTP method.
func WithMethod(method string) RequestOption {
	return func(s *RequestSpec) error {
		s.Method = method
		return nil
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(s *RequestSpec) error {
		s.Header.Set(key, value)
		return nil
	}
}

// WithPreview replaces the default Accept media type with a preview one.
func WithPreview(mediaType string) RequestOption {
	return WithHeader("Accept", mediaType)
}

// WithQuery adds a query parameter. Empty values are omitted.
func WithQuery(key, value string) RequestOption {
	return func(s *RequestSpec) error {
		if value != "" {
			s.Query.Add(key, value)
		}
		return nil
	}
}

// WithQueryValues encodes a struct with `url` tags into query parameters.
// A nil pointer adds nothing.
func WithQueryValues(opts any) RequestOption {
	return func(s *RequestSpec) error {
		if v := reflect.ValueOf(opts); !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
			return nil
		}
		values, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		for key, vals := range values {
			for _, val := range vals {
				s.Query.Add(key, val)
			}
		}
		return nil
	}
}

// WithPage sets the pagination parameters. pageIndex is 0-based and sent as
// GitHub's 1-based page parameter.
func WithPage(pageIndex, perPage int) RequestOption {
	return func(s *RequestSpec) error {
		if pageIndex < 0 {
			return &ConfigurationError{
				Field:  "page",
				Reason: fmt.Sprintf("must not be negative (got %d)", pageIndex),
			}
		}
		if err := ValidatePerPage(perPage); err != nil {
			return err
		}
		s.Query.Set("page", strconv.Itoa(pageIndex+1))
		s.Query.Set("per_page", strconv.Itoa(perPage))
		return nil
	}
}

// WithBody sets the JSON request body.
func WithBody(body any) RequestOption {
	return func(s *RequestSpec) error {
		s.Body = body
		return nil
	}
}

// ValidatePerPage checks that perPage is within GitHub's accepted range.
func ValidatePerPage(perPage int) error {
	if perPage < MinPerPage || perPage > MaxPerPage {
		return &ConfigurationError{
			Field:  "per_page",
			Reason: fmt.Sprintf("must be between %d and %d (got %d)", MinPerPage, MaxPerPage, perPage),
		}
	}
	return nil
}

// Execute sends one request and decodes a successful response into T.
// Non-success responses never yield a T: 4xx with a GitHub error body return
// *RequestError, anything else *TransportError.
func Execute[T any](ctx context.Context, c *Client, method string, segments []string, opts ...RequestOption) (T, error) {
	var zero T

	spec := &RequestSpec{
		Method:   method,
		Segments: segments,
		Query:    url.Values{},
		Header:   http.Header{},
	}
	for _, opt := range opts {
		if err := opt(spec); err != nil {
			return zero, err
		}
	}

	req, err := c.newRequest(ctx, spec)
	if err != nil {
		return zero, err
	}

	resp, err := c.do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	out, err := decodeResponse[T](req, resp)
	if err != nil {
		githubErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("Failed to decode GitHub response")
		return zero, err
	}
	return out, nil
}

// Get performs a GET request.
func Get[T any](ctx context.Context, c *Client, segments []string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodGet, segments, opts...)
}

// Post performs a POST request.
func Post[T any](ctx context.Context, c *Client, segments []string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodPost, segments, opts...)
}

// Put performs a PUT request.
func Put[T any](ctx context.Context, c *Client, segments []string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodPut, segments, opts...)
}

// Patch performs a PATCH request.
func Patch[T any](ctx context.Context, c *Client, segments []string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodPatch, segments, opts...)
}

// Delete performs a DELETE request.
func Delete[T any](ctx context.Context, c *Client, segments []string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodDelete, segments, opts...)
}

// NoContent is the declared type for endpoints without a response body.
type NoContent struct{}

// newRequest builds the *http.Request for spec.
func (c *Client) newRequest(ctx context.Context, spec *RequestSpec) (*http.Request, error) {
	u := c.resolve(spec.Segments)
	if len(spec.Query) > 0 {
		u.RawQuery = spec.Query.Encode()
	}

	var body io.Reader
	if spec.Body != nil {
		buf, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range spec.Header {
		req.Header[key] = append([]string(nil), values...)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// resolve joins escaped path segments onto the base URL.
func (c *Client) resolve(segments []string) *url.URL {
	u := *c.baseURL
	if len(segments) == 0 {
		return &u
	}

	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}

	u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.Join(segments, "/")
	return &u
}

// decodeResponse reads the body and decodes it into T. Empty bodies yield
// the zero value.
func decodeResponse[T any](req *http.Request, resp *http.Response) (T, error) {
	var out T

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &TransportError{
			Method: req.Method,
			URL:    req.URL.String(),
			Err:    fmt.Errorf("read response body: %w", err),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, &DeserializationError{
			Type: reflect.TypeFor[T]().String(),
			Err:  err,
		}
	}
	return out, nil
}
