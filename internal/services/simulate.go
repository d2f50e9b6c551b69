package services

import (
	"math"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
	"quantaroute-demo/internal/instructions"
)

const (
	simulatedSteps     = 15
	simulatedAlgorithm = "Simulated Route"
)

// Simulate builds a straight-line stand-in route for when the backend is
// unavailable. jitter in [0, 1) spreads the reported compute time over
// 50 to 150 ms.
func Simulate(start, end domain.RoutePoint, profile domain.Profile, jitter float64, emph instructions.Emphasis) domain.Route {
	path := make(domain.RouteGeometry, 0, simulatedSteps+1)
	for i := 0; i <= simulatedSteps; i++ {
		path = append(path, geometry.Interpolate(start, end, float64(i)/simulatedSteps))
	}

	km := geometry.DistanceMeters(start, end) / 1000
	minutes := km / profile.AverageSpeedKmh() * 60

	r := domain.Route{
		ID:                  "simulated",
		Kind:                domain.KindSimulated,
		Name:                simulatedAlgorithm,
		Description:         "Straight-line estimate while the routing service is unavailable",
		Geometry:            path,
		DistanceKm:          math.Max(0.1, km),
		DurationMin:         math.Max(1, minutes),
		AlgorithmName:       simulatedAlgorithm,
		ComputeTimeMs:       50 + jitter*100,
		CostRatio:           1,
		SimilarityToOptimal: 1,
		IsSelected:          true,
	}

	r.Instructions, _ = instructions.Synthesize(nil, instructions.Input{
		Geometry:    r.Geometry,
		DistanceKm:  r.DistanceKm,
		DurationMin: r.DurationMin,
	}, instructions.Options{Profile: profile, Emphasis: emph})
	return r
}
