// Package normalize turns a backend routing response into a RouteSet.
//
// The backend answers the three routing endpoints with different shapes.
// Decode checks the shape once, at the boundary, and returns one variant;
// nothing downstream inspects raw fields.
package normalize

import (
	"encoding/json"
	"fmt"

	"quantaroute-demo/internal/wire"
)

// Response is one of SingleRoute, Alternatives, OptimizedTrips or Unrecognized.
type Response interface {
	variant() string
}

type SingleRoute struct {
	Route         wire.RoutePayload
	Algorithm     string
	ComputeTimeMs float64
}

type Alternatives struct {
	Optimal           wire.RoutePayload
	Alternatives      []wire.RoutePayload
	ComputationMethod string
	ComputeTimeMs     float64
}

type OptimizedTrips struct {
	Trips         []wire.Trip
	Algorithm     string
	ComputeTimeMs float64
}

// Unrecognized means no route can be drawn from the payload.
type Unrecognized struct {
	Reason string
}

func (SingleRoute) variant() string    { return "single" }
func (Alternatives) variant() string   { return "alternatives" }
func (OptimizedTrips) variant() string { return "optimized" }
func (Unrecognized) variant() string   { return "unrecognized" }

// Decode classifies a response body. Trips win over optimal_route, which
// wins over route, so an optimized response that also echoes a plain route
// is still stitched.
func Decode(body []byte) Response {
	var env wire.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Unrecognized{Reason: fmt.Sprintf("response is not a JSON object: %v", err)}
	}

	computeMs := env.ComputeTimeMs.Float()
	if computeMs == 0 {
		computeMs = env.TotalComputeTimeMs.Float()
	}

	switch {
	case len(env.Trips) > 0:
		return OptimizedTrips{
			Trips:         env.Trips,
			Algorithm:     env.Algorithm.String(),
			ComputeTimeMs: computeMs,
		}
	case env.OptimalRoute.Present():
		return Alternatives{
			Optimal:           *env.OptimalRoute,
			Alternatives:      present(env.AlternativeRoutes),
			ComputationMethod: env.ComputationMethod.String(),
			ComputeTimeMs:     computeMs,
		}
	case env.Route.Present() && hasGeometry(*env.Route):
		return SingleRoute{
			Route:         *env.Route,
			Algorithm:     env.Algorithm.String(),
			ComputeTimeMs: computeMs,
		}
	case env.Route.Present():
		return Unrecognized{Reason: "route object has no geometry"}
	}
	return Unrecognized{Reason: "no route, optimal_route or trips in response"}
}

// present drops list entries that were not JSON objects.
func present(ps []wire.RoutePayload) []wire.RoutePayload {
	var out []wire.RoutePayload
	for _, p := range ps {
		if p.Present() {
			out = append(out, p)
		}
	}
	return out
}

func hasGeometry(p wire.RoutePayload) bool {
	if !wire.IsNull(p.Geometry) {
		return true
	}
	return p.Route.Present() && !wire.IsNull(p.Route.Geometry)
}

// Recognized reports whether r carries something that can be normalized.
func Recognized(r Response) bool {
	_, bad := r.(Unrecognized)
	return r != nil && !bad
}
