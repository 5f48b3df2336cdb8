// Package api turns registry descriptors into HTTP requests, executes them
// and classifies the outcome.
package api

import (
	"net/http"
)

// DefaultBaseURL is used when no flag, environment or config value is set.
const DefaultBaseURL = "https://api.builtfast.com"

// Header names set on every request.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderAuth      = "Authorization"
)

// Request is a fully built outgoing request. The body is held in memory so
// every retry attempt re-sends it in full.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
	// ID is the X-Request-Id value, repeated in diagnostic logs.
	ID string
	// Idempotent reports whether repeating the request is safe.
	Idempotent bool
}

// Response is the raw outcome of a request that reached the server.
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	Attempts int
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// redactedHeader returns the headers safe to log.
func redactedHeader(h http.Header) http.Header {
	out := h.Clone()
	if out.Get(HeaderAuth) != "" {
		out.Set(HeaderAuth, "Bearer [redacted]")
	}
	return out
}
