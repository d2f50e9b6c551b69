package quantaroute

import (
	"context"
	"fmt"
	"sync"

	"quantaroute-demo/internal/wire"
)

type MockResponse struct {
	Endpoint string
	Body     string
	Err      error
}

// MockBackend answers from canned responses keyed by endpoint
// ("route", "alternatives", "optimized") and records what it was sent.
type MockBackend struct {
	mu        sync.Mutex
	m         map[string]MockResponse
	health    wire.HealthResponse
	healthErr error
	calls     []string
	requests  []any
}

func NewMockBackend(responses []MockResponse) *MockBackend {
	m := make(map[string]MockResponse, len(responses))
	for _, r := range responses {
		m[r.Endpoint] = r
	}
	return &MockBackend{m: m, health: wire.HealthResponse{Status: "ok"}}
}

func (b *MockBackend) SetHealth(h wire.HealthResponse, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.health, b.healthErr = h, err
}

// Calls returns the endpoints hit so far, in order.
func (b *MockBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// LastRequest returns the most recent request payload.
func (b *MockBackend) LastRequest() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

func (b *MockBackend) respond(ctx context.Context, endpoint string, req any) ([]byte, error) {
	b.mu.Lock()
	b.calls = append(b.calls, endpoint)
	b.requests = append(b.requests, req)
	r, ok := b.m[endpoint]
	b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing mock response for %q", endpoint)
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return []byte(r.Body), nil
}

func (b *MockBackend) Route(ctx context.Context, req wire.RouteRequest) ([]byte, error) {
	return b.respond(ctx, "route", req)
}

func (b *MockBackend) Alternatives(ctx context.Context, req wire.AlternativesRequest) ([]byte, error) {
	return b.respond(ctx, "alternatives", req)
}

func (b *MockBackend) Optimized(ctx context.Context, req wire.OptimizedRequest) ([]byte, error) {
	return b.respond(ctx, "optimized", req)
}

func (b *MockBackend) Health(ctx context.Context) (wire.HealthResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.health, b.healthErr
}
