package ports

import (
	"context"

	"quantaroute-demo/internal/domain"
)

// Resolves a free-text place to a point.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.RoutePoint, error)
}

// Port: remembered geocoding results keyed by normalized query text.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (domain.RoutePoint, bool, error)
	Put(ctx context.Context, query string, p domain.RoutePoint) error
}
