package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how often and how fast a request is repeated.
type RetryPolicy struct {
	// Retries is the number of attempts after the first.
	Retries         int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// NonIdempotent allows POST requests to be retried as well.
	NonIdempotent bool
}

// DefaultRetryPolicy returns three retries starting at 500ms and capped at 5s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:         3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		NonIdempotent:   true,
	}
}

// attempts returns the total number of tries allowed for req.
func (p RetryPolicy) attempts(req *Request) uint {
	if p.Retries <= 0 || (!req.Idempotent && !p.NonIdempotent) {
		return 1
	}
	return uint(p.Retries) + 1
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0.5
	if b.InitialInterval <= 0 {
		b.InitialInterval = 500 * time.Millisecond
	}
	if b.MaxInterval <= 0 {
		b.MaxInterval = 5 * time.Second
	}
	return b
}

// Transport executes requests with timeouts and retries.
type Transport struct {
	Client *http.Client
	Policy RetryPolicy
	Logger *slog.Logger
}

// retryableStatus carries a 5xx response through the retry loop.
type retryableStatus struct {
	resp *Response
}

func (e *retryableStatus) Error() string {
	return fmt.Sprintf("server returned %d", e.resp.Status)
}

// Execute sends req, retrying connection failures, timeouts and 5xx
// responses. Any response that reached the server, including a final 5xx,
// is returned without error; only a failure to get a response is an error.
func (t *Transport) Execute(ctx context.Context, req *Request) (*Response, error) {
	log := t.logger().With("request_id", req.ID, "method", req.Method, "path", urlPath(req.URL))
	attempt := 0

	op := func() (*Response, error) {
		attempt++
		start := time.Now()
		resp, err := t.do(ctx, req)
		if err != nil {
			log.Debug("request failed", "attempt", attempt, "duration", time.Since(start), "error", err)
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		resp.Attempts = attempt
		log.Debug("response", "attempt", attempt, "status", resp.Status, "duration", time.Since(start))
		if resp.Status >= 500 {
			return resp, &retryableStatus{resp: resp}
		}
		return resp, nil
	}

	notify := func(err error, wait time.Duration) {
		log.Info("retrying request", "attempt", attempt, "wait", wait, "reason", err.Error())
	}

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(t.Policy.backOff()),
		backoff.WithMaxTries(t.Policy.attempts(req)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	if err == nil {
		return resp, nil
	}

	var status *retryableStatus
	if errors.As(err, &status) {
		log.Warn("server error after retries", "status", status.resp.Status, "attempts", attempt)
		return status.resp, nil
	}
	terr := &TransportError{Op: req.Method, URL: req.URL, Err: err, Timeout: isTimeout(err)}
	log.Warn("request gave up", "attempts", attempt, "error", err)
	return nil, terr
}

func (t *Transport) do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	httpReq.Header = req.Header.Clone()
	if httpReq.Header == nil {
		httpReq.Header = http.Header{}
	}
	t.logger().Debug("sending request", "request_id", req.ID, "header", redactedHeader(httpReq.Header))

	httpResp, err := t.client().Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   data,
	}, nil
}

func (t *Transport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
