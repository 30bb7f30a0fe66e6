package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the structured error types through errors.Is.
var (
	// ErrInvalidConfiguration is matched by *ConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrTransport is matched by *TransportError.
	ErrTransport = errors.New("transport failure")

	// ErrRequest is matched by *RequestError.
	ErrRequest = errors.New("github request failed")

	// ErrDeserialization is matched by *DeserializationError.
	ErrDeserialization = errors.New("response deserialization failed")
)

// ConfigurationError reports invalid client construction or invalid call
// parameters detected before any network traffic.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// TransportError reports a request that did not produce a usable response:
// network, DNS or timeout failures (StatusCode 0), and non-success statuses
// that were not translated into a RequestError.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ErrorPayload is the JSON error body returned by the GitHub API.
type ErrorPayload struct {
	Message          string       `json:"message"`
	Errors           []FieldError `json:"errors,omitempty"`
	DocumentationURL string       `json:"documentation_url,omitempty"`
}

// FieldError describes a single validation failure inside an ErrorPayload.
type FieldError struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// UnmarshalJSON accepts both the object form and the bare string form
// GitHub uses for some endpoints.
func (f *FieldError) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		*f = FieldError{Message: msg}
		return nil
	}

	type plain FieldError
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FieldError(p)
	return nil
}

// String renders the field error in a compact form.
func (f FieldError) String() string {
	if f.Resource == "" && f.Field == "" && f.Code == "" {
		return f.Message
	}
	s := fmt.Sprintf("%s.%s: %s", f.Resource, f.Field, f.Code)
	if f.Message != "" {
		s += " (" + f.Message + ")"
	}
	return s
}

// RequestError is a 4xx response whose body decoded into an ErrorPayload.
type RequestError struct {
	StatusCode int
	Method     string
	URL        string
	Payload    ErrorPayload
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Payload.Message)
	if len(e.Payload.Errors) > 0 {
		parts := make([]string, 0, len(e.Payload.Errors))
		for _, fe := range e.Payload.Errors {
			parts = append(parts, fe.String())
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, "; "))
	}
	if e.Payload.DocumentationURL != "" {
		fmt.Fprintf(&b, " (see %s)", e.Payload.DocumentationURL)
	}
	return b.String()
}

// Is reports whether target is ErrRequest.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

// DeserializationError reports a successful response whose body did not
// match the declared type.
type DeserializationError struct {
	Type string
	Err  error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode response into %s: %v", e.Type, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDeserialization.
func (e *DeserializationError) Is(target error) bool {
	return target == ErrDeserialization
}
