package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// maxErrorBodySize bounds how much of a failed response is read for decoding.
const maxErrorBodySize = 1 << 20

// ResponseInterceptor inspects a response after the transport returns it and
// before the dispatcher decodes it. Returning an error aborts the call with
// that error. Interceptors that read the body must restore it.
type ResponseInterceptor func(resp *http.Response) error

// translateErrors turns 4xx responses carrying a GitHub error payload into a
// *RequestError. Responses it cannot decode are left for the dispatcher,
// which reports them as a *TransportError.
func translateErrors(resp *http.Response) error {
	if resp.StatusCode < 400 || resp.StatusCode >= 500 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	payload, ok := decodeErrorPayload(body)
	if !ok {
		return nil
	}

	reqErr := &RequestError{
		StatusCode: resp.StatusCode,
		Payload:    payload,
	}
	if resp.Request != nil {
		reqErr.Method = resp.Request.Method
		reqErr.URL = resp.Request.URL.String()
	}
	return reqErr
}

// decodeErrorPayload reports whether body is a GitHub error document: a JSON
// object with a message field, even an empty one.
func decodeErrorPayload(body []byte) (ErrorPayload, bool) {
	var doc struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &doc); err != nil || doc.Message == nil {
		return ErrorPayload{}, false
	}

	var payload ErrorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ErrorPayload{}, false
	}
	return payload, true
}
