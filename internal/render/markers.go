package render

import (
	"math"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
)

const (
	maxDistanceMarkers       = 10
	connectorThresholdMeters = 50
)

type DistanceMarker struct {
	Position   domain.RoutePoint `json:"position"`
	DistanceKm float64           `json:"distance_km"`
	Label      string            `json:"label"`
}

// MarkerInterval picks the spacing of distance markers for a route length.
func MarkerInterval(distanceKm float64) float64 {
	switch {
	case distanceKm <= 2:
		return 0.5
	case distanceKm <= 10:
		return 1
	default:
		return 2
	}
}

// DistanceMarkers places evenly spaced markers along path. The route's
// reported distance decides where they go; positions are found by
// interpolating along the haversine length of the path, so the two need not
// agree exactly. No marker is placed at or beyond the end.
func DistanceMarkers(path domain.RouteGeometry, distanceKm float64) []DistanceMarker {
	if len(path) < 2 || distanceKm <= 0 {
		return nil
	}

	interval := MarkerInterval(distanceKm)
	n := int(math.Floor(distanceKm / interval))
	if n > maxDistanceMarkers {
		interval = distanceKm / maxDistanceMarkers
		n = maxDistanceMarkers
	}

	cum := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cum[i] = cum[i-1] + geometry.DistanceMeters(path[i-1], path[i])
	}
	pathLen := cum[len(cum)-1]

	var out []DistanceMarker
	seg := 0
	for k := 1; k <= n; k++ {
		km := float64(k) * interval
		if km >= distanceKm-1e-9 {
			break
		}
		target := km / distanceKm * pathLen
		for seg < len(path)-2 && cum[seg+1] < target {
			seg++
		}

		pos := path[seg]
		if span := cum[seg+1] - cum[seg]; span > 0 {
			pos = geometry.Interpolate(path[seg], path[seg+1], (target-cum[seg])/span)
		}
		out = append(out, DistanceMarker{Position: pos, DistanceKm: km, Label: FormatDistance(km)})
	}
	return out
}

// Connector is a dashed line from where the user clicked to where the
// routed path actually starts or ends.
type Connector struct {
	From domain.RoutePoint `json:"from"`
	To   domain.RoutePoint `json:"to"`
	End  string            `json:"end"`
}

// Connectors checks whether the clicked start and end lie more than 50 m from
// the path's ends. It returns the connector lines to draw and a copy of the
// path with those ends moved to the clicked points.
func Connectors(path domain.RouteGeometry, clickedStart, clickedEnd *domain.RoutePoint) ([]Connector, domain.RouteGeometry) {
	adjusted := append(domain.RouteGeometry(nil), path...)
	if len(path) < 2 {
		return nil, adjusted
	}

	var out []Connector
	first, last := path[0], path[len(path)-1]
	if clickedStart != nil && geometry.DistanceMeters(*clickedStart, first) > connectorThresholdMeters {
		out = append(out, Connector{From: *clickedStart, To: first, End: "start"})
		adjusted[0] = *clickedStart
	}
	if clickedEnd != nil && geometry.DistanceMeters(*clickedEnd, last) > connectorThresholdMeters {
		out = append(out, Connector{From: *clickedEnd, To: last, End: "end"})
		adjusted[len(adjusted)-1] = *clickedEnd
	}
	return out, adjusted
}
