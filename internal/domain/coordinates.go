package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// RoutePoint is a (latitude, longitude) pair in degrees.
// It is the canonical in-memory representation for everything that gets rendered.
type RoutePoint struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point is finite and inside the WGS84 ranges.
func (p RoutePoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Orb returns the point in orb's (x=lon, y=lat) order.
func (p RoutePoint) Orb() orb.Point { return orb.Point{p.Lng, p.Lat} }

// Return the point as [lat, lng] for the backend request bodies.
func (p RoutePoint) LatLngList() []float64 { return []float64{p.Lat, p.Lng} }

func (p RoutePoint) String() string { return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng) }

// NewRoutePoint validates and builds a point.
func NewRoutePoint(lat, lng float64) (RoutePoint, error) {
	p := RoutePoint{Lat: lat, Lng: lng}
	if !p.Valid() {
		return RoutePoint{}, fmt.Errorf("new route point (%v, %v): %w", lat, lng, ErrInvalidCoordinate)
	}
	return p, nil
}

// RouteGeometry is an ordered path of points. A path needs at least two
// points to be drawn as a line.
type RouteGeometry []RoutePoint

func (g RouteGeometry) Drawable() bool { return len(g) >= 2 }

func (g RouteGeometry) First() (RoutePoint, bool) {
	if len(g) == 0 {
		return RoutePoint{}, false
	}
	return g[0], true
}

func (g RouteGeometry) Last() (RoutePoint, bool) {
	if len(g) == 0 {
		return RoutePoint{}, false
	}
	return g[len(g)-1], true
}

// LineString converts the path to an orb.LineString ([lon, lat] order).
func (g RouteGeometry) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(g))
	for _, p := range g {
		ls = append(ls, p.Orb())
	}
	return ls
}

// LatLngLists returns the path as [[lat, lng], ...].
func (g RouteGeometry) LatLngLists() [][]float64 {
	out := make([][]float64, 0, len(g))
	for _, p := range g {
		out = append(out, p.LatLngList())
	}
	return out
}
