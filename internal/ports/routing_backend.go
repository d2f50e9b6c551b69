package ports

import (
	"context"

	"quantaroute-demo/internal/wire"
)

// Contract for the QuantaRoute routing API. Route calls return the raw
// response body; shape detection and normalization happen downstream.
type RoutingBackend interface {
	Route(ctx context.Context, req wire.RouteRequest) ([]byte, error)
	Alternatives(ctx context.Context, req wire.AlternativesRequest) ([]byte, error)
	Optimized(ctx context.Context, req wire.OptimizedRequest) ([]byte, error)
	Health(ctx context.Context) (wire.HealthResponse, error)
}
