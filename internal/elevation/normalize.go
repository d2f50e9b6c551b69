// Package elevation resamples backend elevation series for charting.
package elevation

import (
	"math"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/wire"
)

const (
	minElevationChangeMeters = 3
	minSpacingKm             = 0.05
	minPoints                = 20
	maxPoints                = 100
	pointsPerKm              = 10
)

// Normalize spreads samples evenly over the route length, drops samples that
// add nothing visible, then strides the rest down to a budget that grows
// with route length. First and last samples always survive. Fewer than two
// samples yield nil.
func Normalize(samples []domain.ElevationSample, totalKm float64) []domain.ElevationSample {
	n := len(samples)
	if n < 2 {
		return nil
	}
	if totalKm < 0 || math.IsNaN(totalKm) || math.IsInf(totalKm, 0) {
		totalKm = 0
	}

	rescaled := make([]domain.ElevationSample, n)
	for i, s := range samples {
		rescaled[i] = domain.ElevationSample{
			DistanceKm:      float64(i) / float64(n-1) * totalKm,
			ElevationMeters: s.ElevationMeters,
		}
	}
	rescaled[n-1].DistanceKm = totalKm

	kept := thin(rescaled, math.Max(minSpacingKm, totalKm/100))

	target := Budget(totalKm)
	if len(kept) <= target {
		return kept
	}
	return stride(kept, target)
}

// Budget is the point count the chart is allowed for a route of totalKm.
func Budget(totalKm float64) int {
	t := int(math.Ceil(totalKm * pointsPerKm))
	return max(minPoints, min(maxPoints, t))
}

func thin(in []domain.ElevationSample, spacing float64) []domain.ElevationSample {
	out := make([]domain.ElevationSample, 0, len(in))
	last := len(in) - 1
	for i, s := range in {
		if i == 0 || i == last {
			out = append(out, s)
			continue
		}
		prev := out[len(out)-1]
		if s.DistanceKm-prev.DistanceKm >= spacing ||
			math.Abs(s.ElevationMeters-prev.ElevationMeters) >= minElevationChangeMeters {
			out = append(out, s)
		}
	}
	return out
}

// stride keeps every step-th sample and the final one, never more than target.
func stride(in []domain.ElevationSample, target int) []domain.ElevationSample {
	step := int(math.Ceil(float64(len(in)) / float64(target)))
	out := make([]domain.ElevationSample, 0, target)
	for i := 0; i < len(in); i += step {
		out = append(out, in[i])
	}

	final := in[len(in)-1]
	if out[len(out)-1] == final {
		return out
	}
	if len(out) < target {
		return append(out, final)
	}
	out[len(out)-1] = final
	return out
}

// Stats computes min, max and cumulative climb and descent.
func Stats(samples []domain.ElevationSample) *domain.ElevationStats {
	if len(samples) == 0 {
		return nil
	}
	st := &domain.ElevationStats{
		MinMeters: samples[0].ElevationMeters,
		MaxMeters: samples[0].ElevationMeters,
	}
	for i := 1; i < len(samples); i++ {
		e := samples[i].ElevationMeters
		st.MinMeters = math.Min(st.MinMeters, e)
		st.MaxMeters = math.Max(st.MaxMeters, e)
		if d := e - samples[i-1].ElevationMeters; d > 0 {
			st.AscentMeters += d
		} else {
			st.DescentMeters -= d
		}
	}
	return st
}

// FromWire converts the backend profile.
func FromWire(points []wire.ElevationPoint) []domain.ElevationSample {
	if len(points) == 0 {
		return nil
	}
	out := make([]domain.ElevationSample, len(points))
	for i, p := range points {
		out[i] = domain.ElevationSample{DistanceKm: p.DistanceKm.Float(), ElevationMeters: p.Elevation.Float()}
	}
	return out
}

// Summarize prefers stats computed by the backend and falls back to
// computing them from the raw samples.
func Summarize(backend *wire.ElevationStats, samples []domain.ElevationSample) *domain.ElevationStats {
	if backend != nil {
		return &domain.ElevationStats{
			MinMeters:     backend.MinElevation.Float(),
			MaxMeters:     backend.MaxElevation.Float(),
			AscentMeters:  backend.TotalAscent.Float(),
			DescentMeters: backend.TotalDescent.Float(),
		}
	}
	return Stats(samples)
}
