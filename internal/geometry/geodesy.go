package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"quantaroute-demo/internal/domain"
)

// Bearing is the initial great-circle heading from a to b in degrees,
// in (-180, 180].
func Bearing(a, b domain.RoutePoint) float64 {
	return geo.Bearing(a.Orb(), b.Orb())
}

// BearingDelta normalises a heading change to [-180, 180].
// Positive is clockwise (a right turn).
func BearingDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}

// DistanceMeters is the haversine distance between two points.
func DistanceMeters(a, b domain.RoutePoint) float64 {
	return geo.DistanceHaversine(a.Orb(), b.Orb())
}

// PathLengthMeters sums haversine distances along the path.
func PathLengthMeters(g domain.RouteGeometry) float64 {
	if len(g) < 2 {
		return 0
	}
	return geo.LengthHaversine(g.LineString())
}

// Bounds returns the bounding box used to fit the map to a set of routes.
// ok is false when no route has any points.
func Bounds(gs ...domain.RouteGeometry) (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, g := range gs {
		if len(g) == 0 {
			continue
		}
		gb := g.LineString().Bound()
		if !found {
			b = gb
			found = true
			continue
		}
		b = b.Union(gb)
	}
	return b, found
}

// Interpolate returns the point fraction t of the way from a to b, linear in
// degrees. Good enough for the short spans it is used on.
func Interpolate(a, b domain.RoutePoint, t float64) domain.RoutePoint {
	return domain.RoutePoint{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

// Compass8 maps a heading in degrees to an eight-point compass name.
func Compass8(bearing float64) string {
	names := [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
	b := math.Mod(bearing+360, 360)
	return names[int(math.Floor((b+22.5)/45))%8]
}
