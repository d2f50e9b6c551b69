// Package instructions produces turn-by-turn steps for a route, either by
// cleaning up what the backend sent or by reading turns off the geometry.
package instructions

import (
	"fmt"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
	"quantaroute-demo/internal/wire"
)

const component = "instructions"

const arriveText = "Arrive at your destination"

// Input is the part of a route the synthesizer looks at.
type Input struct {
	Geometry    domain.RouteGeometry
	DistanceKm  float64
	DurationMin float64
}

type Options struct {
	Profile  domain.Profile
	Emphasis Emphasis
}

// Synthesize returns the steps for a route. Backend steps are used when
// there are any; otherwise steps come from the geometry, or from the totals
// when the geometry is too short. The result always ends with an arrive
// step unless there was nothing to describe at all.
func Synthesize(backend []wire.Instruction, in Input, opts Options) ([]domain.Instruction, domain.Diagnostics) {
	var diags domain.Diagnostics
	if opts.Emphasis == nil {
		opts.Emphasis = Strong
	}
	if !opts.Profile.Known() {
		opts.Profile = domain.ProfileCar
	}

	var steps []domain.Instruction
	switch {
	case len(backend) > 0:
		steps = make([]domain.Instruction, 0, len(backend)+1)
		for i, b := range backend {
			step, ok := fromBackend(b, opts.Emphasis)
			if !ok {
				diags.Warn(component, fmt.Sprintf("step %d: unreadable geometry, no highlight segment", i))
			}
			steps = append(steps, step)
		}
	case len(in.Geometry) >= 3:
		steps = fromPath(in.Geometry, opts.Profile)
	case len(in.Geometry) > 0 || in.DistanceKm > 0:
		steps = fromTotals(in, opts.Profile)
	default:
		return nil, diags
	}

	if steps[len(steps)-1].TurnType != domain.TurnArrive {
		arrive := domain.Instruction{Text: arriveText, TurnType: domain.TurnArrive}
		if p, ok := in.Geometry.Last(); ok {
			arrive.Location = &p
		}
		steps = append(steps, arrive)
	}
	return steps, diags
}

// fromBackend converts one backend step. ok is false when the step carried
// geometry that could not be read.
func fromBackend(b wire.Instruction, emph Emphasis) (domain.Instruction, bool) {
	text := ""
	if b.Text != nil {
		text = *b.Text
	}

	turn := DetectTurnType(text)
	if b.ManeuverType == "waypoint" {
		turn = domain.TurnWaypoint
	}

	street := b.StreetName
	if street == nil {
		street = ExtractStreetName(text)
	}

	step := domain.Instruction{
		Text:            InjectStreetName(text, street, emph),
		TurnType:        turn,
		DistanceMeters:  nonNegative(b.Distance),
		DurationSeconds: nonNegative(b.Duration),
		StreetName:      street,
	}

	if len(b.Location) >= 2 {
		// maneuver.location follows GeoJSON order
		p := domain.RoutePoint{Lat: b.Location[1], Lng: b.Location[0]}
		if p.Valid() {
			step.Location = &p
		}
	}

	if wire.IsNull(b.Geometry) {
		return step, true
	}
	seg, diags := geometry.Adapt(b.Geometry)
	step.SegmentGeometry = seg
	return step, len(diags) == 0
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
