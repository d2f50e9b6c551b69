package instructions

import (
	"fmt"
	"math"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
)

// TurnThresholdDegrees is the heading change that starts a new step.
const TurnThresholdDegrees = 30

// RoadType guesses a road class from a stretch's length, since geometry
// alone carries no road names.
func RoadType(km float64, profile domain.Profile) string {
	switch profile {
	case domain.ProfileBicycle:
		switch {
		case km > 3:
			return "Cycle Path"
		case km > 1:
			return "Park Connector"
		default:
			return "Cycling Route"
		}
	case domain.ProfileFoot:
		switch {
		case km > 2:
			return "Walking Path"
		case km > 0.5:
			return "Pedestrian Way"
		default:
			return "Walkway"
		}
	default:
		switch {
		case km > 5:
			return "Major Highway"
		case km > 2:
			return "Primary Road"
		case km > 0.8:
			return "Secondary Road"
		default:
			return "Local Road"
		}
	}
}

// DirectionLabel phrases a signed heading change (positive is clockwise).
func DirectionLabel(delta float64) string {
	switch {
	case delta > 90:
		return "Turn right"
	case delta < -90:
		return "Turn left"
	case delta > TurnThresholdDegrees:
		return "Keep right"
	case delta < -TurnThresholdDegrees:
		return "Keep left"
	default:
		return "Continue straight"
	}
}

func TurnTypeForDelta(delta float64) domain.TurnType {
	switch {
	case delta > TurnThresholdDegrees:
		return domain.TurnRight
	case delta < -TurnThresholdDegrees:
		return domain.TurnLeft
	default:
		return domain.TurnStraight
	}
}

type stretch struct {
	start, end int
	delta      float64
}

// splitAtTurns cuts the path at every vertex where the heading changes by
// more than the threshold. Each stretch records the turn taken at its start;
// the first has none. Repeated points are stepped over so they cannot fake
// a heading.
func splitAtTurns(p domain.RouteGeometry) []stretch {
	var out []stretch
	cur := stretch{start: 0}
	prev := 0
	for v := 1; v < len(p)-1; v++ {
		if p[v] == p[prev] {
			continue
		}
		next := v + 1
		for next < len(p) && p[next] == p[v] {
			next++
		}
		if next == len(p) {
			break
		}
		delta := geometry.BearingDelta(geometry.Bearing(p[prev], p[v]), geometry.Bearing(p[v], p[next]))
		if math.Abs(delta) > TurnThresholdDegrees {
			cur.end = v
			out = append(out, cur)
			cur = stretch{start: v, delta: delta}
		}
		prev = v
	}
	cur.end = len(p) - 1
	return append(out, cur)
}

func secondsAt(meters float64, profile domain.Profile) float64 {
	return math.Round(meters / 1000 / profile.AverageSpeedKmh() * 3600)
}

// fromPath derives steps from geometry alone. p must have at least 3 points.
func fromPath(p domain.RouteGeometry, profile domain.Profile) []domain.Instruction {
	stretches := splitAtTurns(p)
	out := make([]domain.Instruction, 0, len(stretches)+1)

	for i, s := range stretches {
		seg := append(domain.RouteGeometry(nil), p[s.start:s.end+1]...)
		meters := geometry.PathLengthMeters(seg)
		road := RoadType(meters/1000, profile)

		var text string
		turn := domain.TurnStraight
		if i == 0 {
			text = fmt.Sprintf("Head %s on %s", geometry.Compass8(geometry.Bearing(p[s.start], p[s.start+1])), road)
		} else {
			text = fmt.Sprintf("%s onto %s", DirectionLabel(s.delta), road)
			turn = TurnTypeForDelta(s.delta)
		}

		loc := p[s.start]
		out = append(out, domain.Instruction{
			Text:            text,
			TurnType:        turn,
			DistanceMeters:  math.Round(meters),
			DurationSeconds: secondsAt(meters, profile),
			StreetName:      &road,
			Location:        &loc,
			SegmentGeometry: seg,
		})
	}
	return out
}

// fromTotals is the last resort when there is too little geometry to read
// turns from: one opening step, a second one on long routes.
func fromTotals(in Input, profile domain.Profile) []domain.Instruction {
	km := in.DistanceKm
	if km <= 0 {
		km = geometry.PathLengthMeters(in.Geometry) / 1000
	}
	seconds := in.DurationMin * 60
	if seconds <= 0 {
		seconds = secondsAt(km*1000, profile)
	}

	compass := "north"
	if len(in.Geometry) >= 2 {
		compass = geometry.Compass8(geometry.Bearing(in.Geometry[0], in.Geometry[1]))
	}
	road := RoadType(km, profile)

	share := 1.0
	if km > 2 {
		share = 0.6
	}
	first := domain.Instruction{
		Text:            fmt.Sprintf("Head %s on %s", compass, road),
		TurnType:        domain.TurnStraight,
		DistanceMeters:  math.Round(km * 1000 * share),
		DurationSeconds: math.Round(seconds * share),
		StreetName:      &road,
		SegmentGeometry: append(domain.RouteGeometry(nil), in.Geometry...),
	}
	if p, ok := in.Geometry.First(); ok {
		first.Location = &p
	}
	out := []domain.Instruction{first}

	if km > 2 {
		road2 := "Primary Road"
		if km > 5 {
			road2 = "Major Highway"
		}
		out = append(out, domain.Instruction{
			Text:            "Continue on " + road2,
			TurnType:        domain.TurnContinue,
			DistanceMeters:  math.Round(km * 1000 * 0.4),
			DurationSeconds: math.Round(seconds * 0.4),
			StreetName:      &road2,
		})
	}
	return out
}
