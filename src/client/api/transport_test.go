package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastPolicy(retries int) RetryPolicy {
	return RetryPolicy{
		Retries:         retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		NonIdempotent:   true,
	}
}

// flakyServer fails the first n requests with status, then returns 200.
func flakyServer(t *testing.T, n int32, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= n {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message":"unavailable"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":"ok"}}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestExecuteRetriesServerErrors(t *testing.T) {
	srv, calls := flakyServer(t, 3, http.StatusServiceUnavailable)
	tr := &Transport{Client: srv.Client(), Policy: fastPolicy(3)}

	resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL, Idempotent: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("server saw %d calls, want 4", got)
	}
	if resp.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", resp.Attempts)
	}
}

func TestExecuteReturnsFinalServerError(t *testing.T) {
	srv, calls := flakyServer(t, 100, http.StatusBadGateway)
	tr := &Transport{Client: srv.Client(), Policy: fastPolicy(2)}

	resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL, Idempotent: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", resp.Status)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
	if _, code := Classify(resp, nil); code != ExitNetwork {
		t.Errorf("exit = %d, want 5", code)
	}
}

func TestExecuteDoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{400, 401, 404, 422, 429} {
		srv, calls := flakyServer(t, 100, status)
		tr := &Transport{Client: srv.Client(), Policy: fastPolicy(3)}

		resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL, Idempotent: true})
		if err != nil {
			t.Fatalf("Execute(%d) error = %v", status, err)
		}
		if resp.Status != status {
			t.Errorf("Status = %d, want %d", resp.Status, status)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("status %d: server saw %d calls, want 1", status, got)
		}
	}
}

func TestExecuteNonIdempotentPolicy(t *testing.T) {
	tests := []struct {
		name          string
		nonIdempotent bool
		wantCalls     int32
		wantStatus    int
	}{
		{"retried by default", true, 2, http.StatusOK},
		{"not retried when disabled", false, 1, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := flakyServer(t, 1, http.StatusInternalServerError)
			policy := fastPolicy(3)
			policy.NonIdempotent = tt.nonIdempotent
			tr := &Transport{Client: srv.Client(), Policy: policy}

			resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodPost, URL: srv.URL, Body: []byte(`{}`)})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", resp.Status, tt.wantStatus)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("server saw %d calls, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestExecuteResendsBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"x"}` {
			t.Errorf("attempt %d body = %q", calls.Load()+1, body)
		}
		if r.Header.Get("X-Request-Id") != "rid" {
			t.Errorf("X-Request-Id = %q", r.Header.Get("X-Request-Id"))
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tr := &Transport{Client: srv.Client(), Policy: fastPolicy(3)}
	req := &Request{
		Method: http.MethodPost,
		URL:    srv.URL,
		Header: http.Header{"X-Request-Id": {"rid"}},
		Body:   []byte(`{"name":"x"}`),
		ID:     "rid",
	}
	resp, err := tr.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
}

func TestExecuteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := srv.Client()
	client.Timeout = 20 * time.Millisecond
	tr := &Transport{Client: client, Policy: fastPolicy(1)}

	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL, Idempotent: true})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Execute() error = %v, want TransportError", err)
	}
	if !te.Timeout {
		t.Errorf("Timeout = false, want true (err %v)", te.Err)
	}
	if ExitCode(err) != ExitNetwork {
		t.Errorf("exit = %d, want 5", ExitCode(err))
	}
}

func TestExecuteConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := &Transport{Policy: fastPolicy(1)}
	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: url, Idempotent: true})
	if ExitCode(err) != ExitNetwork {
		t.Fatalf("Execute() error = %v, want network error", err)
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	srv, calls := flakyServer(t, 100, http.StatusServiceUnavailable)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := &Transport{Client: srv.Client(), Policy: fastPolicy(3)}
	if _, err := tr.Execute(ctx, &Request{Method: http.MethodGet, URL: srv.URL, Idempotent: true}); err == nil {
		t.Fatal("Execute() with canceled context should fail")
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("server saw %d calls, want 0", got)
	}
}

func TestRedactedHeader(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderAuth, "Bearer secret-token")
	h.Set(HeaderRequestID, "abc")

	red := redactedHeader(h)
	if red.Get(HeaderAuth) == "Bearer secret-token" {
		t.Error("Authorization header was not redacted")
	}
	if h.Get(HeaderAuth) != "Bearer secret-token" {
		t.Error("redactedHeader modified its input")
	}
	if red.Get(HeaderRequestID) != "abc" {
		t.Errorf("X-Request-Id = %q", red.Get(HeaderRequestID))
	}
}
