// Package trips stitches the legs of a multi-waypoint optimized trip into
// one continuous path and instruction list.
package trips

import (
	"encoding/json"
	"fmt"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
	"quantaroute-demo/internal/wire"
)

const component = "trips"

// WaypointManeuver tags the synthetic instruction inserted between legs.
const WaypointManeuver = "waypoint"

// Segment is one point-to-point trip as returned by the optimizer.
type Segment struct {
	Geometry        json.RawMessage
	Instructions    []wire.Instruction
	DistanceMeters  float64
	DurationSeconds float64
}

// Fragment is the stitched result. Instructions are still in backend form;
// the synthesizer turns them into domain instructions.
type Fragment struct {
	Geometry     domain.RouteGeometry
	Instructions []wire.Instruction
	DistanceKm   float64
	DurationMin  float64
}

// FromTrip reads a wire trip. Steps come from the legs when any leg has
// them, otherwise from the trip-level instruction list.
func FromTrip(t wire.Trip) Segment {
	var steps []wire.Instruction
	for _, leg := range t.Legs {
		steps = append(steps, leg.Steps...)
	}
	if len(steps) == 0 {
		steps = append(steps, t.Instructions...)
	}
	return Segment{
		Geometry:        t.Geometry,
		Instructions:    steps,
		DistanceMeters:  t.Distance.Float(),
		DurationSeconds: t.Duration.Float(),
	}
}

// WaypointReached builds the marker shown where leg i ends and leg i+1 begins.
func WaypointReached(i int) wire.Instruction {
	text := fmt.Sprintf("Waypoint %d reached - continue to next stop", i)
	name := fmt.Sprintf("Waypoint %d", i)
	return wire.Instruction{Text: &text, StreetName: &name, ManeuverType: WaypointManeuver}
}

// Stitch concatenates segments in order. The first point of every segment
// after the first duplicates the previous segment's last point and is
// dropped, unless the segment has fewer than two points. A segment whose
// geometry cannot be read adds nothing to the path but its instructions and
// totals still count.
func Stitch(segs []Segment) (Fragment, domain.Diagnostics) {
	var (
		frag         Fragment
		diags        domain.Diagnostics
		meters, secs float64
	)

	for i, s := range segs {
		g, gd := geometry.Adapt(s.Geometry)
		if len(gd) > 0 {
			diags.Warn(component, fmt.Sprintf("segment %d skipped: %s", i, gd[0].Message))
		}

		switch {
		case len(g) == 0:
		case i > 0 && len(frag.Geometry) > 0 && len(g) >= 2:
			frag.Geometry = append(frag.Geometry, g[1:]...)
		default:
			frag.Geometry = append(frag.Geometry, g...)
		}

		if i > 0 {
			frag.Instructions = append(frag.Instructions, WaypointReached(i))
		}
		frag.Instructions = append(frag.Instructions, s.Instructions...)

		meters += s.DistanceMeters
		secs += s.DurationSeconds
	}

	frag.DistanceKm = meters / 1000
	frag.DurationMin = secs / 60
	return frag, diags
}
