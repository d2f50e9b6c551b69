// Package geometry turns backend geometry payloads into domain.RouteGeometry.
//
// Accepted shapes:
//   - GeoJSON Feature: unwrapped to its geometry first
//   - GeoJSON LineString or MultiLineString: [lon, lat], always swapped
//   - bare coordinate array: swapped only when |first[0]| > 90
//   - encoded polyline string (precision 5, lat/lng order)
//
// Nothing here returns an error. Bad input yields an empty geometry and a
// warning diagnostic so one broken route cannot take down its siblings.
package geometry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"

	"quantaroute-demo/internal/domain"
)

const component = "geometry"

// Adapt converts raw backend geometry to (lat, lng) order.
func Adapt(raw json.RawMessage) (domain.RouteGeometry, domain.Diagnostics) {
	var diags domain.Diagnostics
	g, err := adapt(raw)
	if err != nil {
		diags.Warn(component, err.Error())
		return domain.RouteGeometry{}, diags
	}
	return g, diags
}

func adapt(raw json.RawMessage) (domain.RouteGeometry, error) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, fmt.Errorf("geometry is null")
	}

	switch b[0] {
	case '[':
		var tuples [][]float64
		if err := json.Unmarshal(b, &tuples); err != nil {
			return nil, fmt.Errorf("malformed coordinate array: %w", err)
		}
		return AdaptCoordinates(tuples)
	case '{':
		return adaptObject(b)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, fmt.Errorf("malformed polyline string: %w", err)
		}
		return decodePolyline(s)
	}
	return nil, fmt.Errorf("unknown geometry format starting with %q", b[0])
}

func adaptObject(b []byte) (domain.RouteGeometry, error) {
	var obj struct {
		Type        string          `json:"type"`
		Geometry    json.RawMessage `json:"geometry"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("malformed geometry object: %w", err)
	}

	coords := obj.Coordinates
	if isEmpty(coords) && !isEmpty(obj.Geometry) {
		var inner struct {
			Coordinates json.RawMessage `json:"coordinates"`
		}
		if err := json.Unmarshal(obj.Geometry, &inner); err == nil {
			coords = inner.Coordinates
		}
	}
	if isEmpty(coords) {
		return nil, fmt.Errorf("geometry object has no coordinates (type %q)", obj.Type)
	}

	tuples, err := flatten(coords)
	if err != nil {
		return nil, err
	}
	if len(tuples) == 0 {
		return nil, fmt.Errorf("geometry has no coordinates")
	}

	out := make(domain.RouteGeometry, 0, len(tuples))
	for i, t := range tuples {
		p, err := tuplePoint(i, t, true)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// flatten accepts LineString ([][]) and MultiLineString ([][][]) coordinates.
func flatten(coords json.RawMessage) ([][]float64, error) {
	var line [][]float64
	if err := json.Unmarshal(coords, &line); err == nil {
		return line, nil
	}
	var multi [][][]float64
	if err := json.Unmarshal(coords, &multi); err != nil {
		return nil, fmt.Errorf("malformed coordinates: %w", err)
	}
	var out [][]float64
	for _, part := range multi {
		out = append(out, part...)
	}
	return out, nil
}

// AdaptCoordinates applies the bare-array rule: a first component with
// magnitude above 90 cannot be a latitude, so the array is [lon, lat].
// Exactly 90 stays as (lat, lng).
func AdaptCoordinates(tuples [][]float64) (domain.RouteGeometry, error) {
	if len(tuples) == 0 {
		return nil, fmt.Errorf("coordinate array is empty")
	}
	if len(tuples[0]) < 2 {
		return nil, fmt.Errorf("coordinate 0 has %d values, want 2", len(tuples[0]))
	}
	swap := math.Abs(tuples[0][0]) > 90

	out := make(domain.RouteGeometry, 0, len(tuples))
	for i, t := range tuples {
		p, err := tuplePoint(i, t, swap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func tuplePoint(i int, t []float64, swap bool) (domain.RoutePoint, error) {
	if len(t) < 2 {
		return domain.RoutePoint{}, fmt.Errorf("coordinate %d has %d values, want 2", i, len(t))
	}
	p := domain.RoutePoint{Lat: t[0], Lng: t[1]}
	if swap {
		p = domain.RoutePoint{Lat: t[1], Lng: t[0]}
	}
	if !p.Valid() {
		return domain.RoutePoint{}, fmt.Errorf("coordinate %d (%v, %v): %w", i, p.Lat, p.Lng, domain.ErrInvalidCoordinate)
	}
	return p, nil
}

func decodePolyline(s string) (domain.RouteGeometry, error) {
	if s == "" {
		return nil, fmt.Errorf("polyline string is empty")
	}
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}
	out := make(domain.RouteGeometry, 0, len(coords))
	for i, c := range coords {
		p, err := tuplePoint(i, c, false)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("polyline has no points")
	}
	return out, nil
}

func isEmpty(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
