// Package geocode resolves typed place names through the Google Maps
// Geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	maps "googlemaps.github.io/maps"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/obs"
)

// ErrNoMatch is returned when the query matches nothing.
var ErrNoMatch = domain.ErrLocationNotFound

type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder builds a geocoder. Extra options (such as
// maps.WithBaseURL) are passed through to the client.
func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode returns the first result's location.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (_ domain.RoutePoint, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	q := strings.Join(strings.Fields(query), " ")
	if q == "" {
		return domain.RoutePoint{}, errors.New("geocode: query must not be empty")
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: q})
	if err != nil {
		return domain.RoutePoint{}, fmt.Errorf("geocode %q: %w", q, err)
	}
	if len(results) == 0 {
		return domain.RoutePoint{}, fmt.Errorf("geocode %q: %w", q, ErrNoMatch)
	}

	loc := results[0].Geometry.Location
	p, err := domain.NewRoutePoint(loc.Lat, loc.Lng)
	if err != nil {
		return domain.RoutePoint{}, fmt.Errorf("geocode %q: %w", q, err)
	}
	return p, nil
}
