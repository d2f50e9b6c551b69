package quantaroute

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/wire"
)

func newTestClient(t *testing.T, srv *httptest.Server, key string) *Client {
	t.Helper()
	c, err := NewClient(config.Backend{BaseURL: srv.URL + "/v1", APIKey: key, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	c.backoff = time.Millisecond
	return c
}

func TestRouteSendsBodyAndBearerAuth(t *testing.T) {
	var gotPath, gotAuth string
	var got wire.RouteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"route":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "k123")
	body, err := c.Route(context.Background(), wire.RouteRequest{
		Start:   []float64{12.97, 77.59},
		End:     []float64{12.98, 77.60},
		Profile: "car",
	})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if string(body) != `{"route":{}}` {
		t.Fatalf("body = %s", body)
	}
	if gotPath != "/v1/routing" || gotAuth != "Bearer k123" {
		t.Fatalf("path = %q auth = %q", gotPath, gotAuth)
	}
	if got.Profile != "car" || got.Start[0] != 12.97 || got.End[1] != 77.60 {
		t.Fatalf("request = %+v", got)
	}
}

func TestNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	if _, err := c.Alternatives(context.Background(), wire.AlternativesRequest{}); err != nil {
		t.Fatalf("Alternatives() error = %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want none", gotAuth)
	}
}

func TestNotFoundMapsToNoRouteWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"No route found between these points for foot"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	_, err := c.Optimized(context.Background(), wire.OptimizedRequest{})
	if !errors.Is(err, domain.ErrNoRouteForProfile) {
		t.Fatalf("err = %v, want ErrNoRouteForProfile", err)
	}
	var nr *domain.NoRouteError
	if !errors.As(err, &nr) || nr.Detail != "No route found between these points for foot" {
		t.Fatalf("detail = %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if len(b) == 0 {
			t.Errorf("retry sent an empty body")
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	if _, err := c.Route(context.Background(), wire.RouteRequest{Profile: "car"}); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	_, err := c.Route(context.Background(), wire.RouteRequest{})
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("err = %v, want 502 StatusError", err)
	}
	if calls.Load() != 4 {
		t.Fatalf("calls = %d, want 4", calls.Load())
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"profile not supported"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	_, err := c.Route(context.Background(), wire.RouteRequest{})
	var se *StatusError
	if !errors.As(err, &se) || se.Detail != "profile not supported" {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestHealthStripsVersionPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"healthy","quantaroute_available":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if gotPath != "/health" {
		t.Fatalf("path = %q, want /health", gotPath)
	}
	if h.Status != "healthy" || h.QuantaRouteAvailable == nil || !*h.QuantaRouteAvailable {
		t.Fatalf("health = %+v", h)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.Backend{}); err == nil {
		t.Fatalf("expected an error for an empty base URL")
	}
}
