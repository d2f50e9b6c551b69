package normalize

import (
	"fmt"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/elevation"
	"quantaroute-demo/internal/geometry"
	"quantaroute-demo/internal/instructions"
	"quantaroute-demo/internal/trips"
	"quantaroute-demo/internal/wire"
)

const (
	defaultAlgorithm          = "quantaroute"
	defaultOptimizedAlgorithm = "TSP + QuantaRoute"
)

type Options struct {
	Profile  domain.Profile
	Emphasis instructions.Emphasis
}

// Result is what one backend call produces. Set replaces the previous one
// wholesale.
type Result struct {
	Set  *domain.RouteSet
	Kind domain.RouteKind
	// NoAlternatives is set when alternatives were asked for and the backend
	// found none. AlternativesDisabled is set when they were not asked for.
	NoAlternatives       bool
	AlternativesDisabled bool
	ComputationMethod    string
	ComputeTimeMs        float64
	Diagnostics          domain.Diagnostics
}

// Normalize builds the RouteSet for a decoded response. An Unrecognized
// response yields domain.ErrNoRoute and no set.
func Normalize(resp Response, opts Options) (Result, error) {
	if !opts.Profile.Known() {
		opts.Profile = domain.ProfileCar
	}

	switch r := resp.(type) {
	case SingleRoute:
		return single(r, opts), nil
	case Alternatives:
		return alternatives(r, opts), nil
	case OptimizedTrips:
		return optimized(r, opts), nil
	case Unrecognized:
		var res Result
		res.Diagnostics.Warn("normalize", r.Reason)
		return res, fmt.Errorf("normalize response: %s: %w", r.Reason, domain.ErrNoRoute)
	}
	return Result{}, fmt.Errorf("normalize response: unknown variant %T: %w", resp, domain.ErrNoRoute)
}

// Body decodes and normalizes in one step.
func Body(body []byte, opts Options) (Result, error) {
	return Normalize(Decode(body), opts)
}

func single(r SingleRoute, opts Options) Result {
	res := Result{Kind: domain.KindSingle, AlternativesDisabled: true, ComputeTimeMs: r.ComputeTimeMs}

	route := buildRoute(r.Route, opts, &res.Diagnostics)
	route.ID = "route"
	route.Kind = domain.KindSingle
	route.Name = opts.Profile.DisplayName() + " Route"
	route.AlgorithmName = firstNonEmpty(r.Route.Algorithm.String(), r.Algorithm, defaultAlgorithm)
	route.ComputeTimeMs = r.ComputeTimeMs
	route.CostRatio = 1
	route.SimilarityToOptimal = 1

	res.ComputationMethod = route.AlgorithmName
	res.Set = domain.NewRouteSet([]domain.Route{route}, 0)
	return res
}

func alternatives(r Alternatives, opts Options) Result {
	res := Result{
		Kind:              domain.KindAlternative,
		NoAlternatives:    len(r.Alternatives) == 0,
		ComputationMethod: r.ComputationMethod,
		ComputeTimeMs:     r.ComputeTimeMs,
	}

	routes := make([]domain.Route, 0, 1+len(r.Alternatives))

	opt := buildRoute(r.Optimal, opts, &res.Diagnostics)
	opt.ID = "optimal"
	opt.Kind = domain.KindOptimal
	opt.Name = "Optimal Route"
	opt.Description = firstNonEmpty(r.Optimal.RouteDescription.String(), "Shortest path on the road network")
	opt.AlgorithmName = firstNonEmpty(r.Optimal.Algorithm.String(), defaultAlgorithm)
	opt.ComputeTimeMs = r.ComputeTimeMs
	opt.CostRatio = 1
	opt.SimilarityToOptimal = 1
	routes = append(routes, opt)

	for i, p := range r.Alternatives {
		alt := buildRoute(p, opts, &res.Diagnostics)
		alt.ID = fmt.Sprintf("alternative_%d", i+1)
		alt.Kind = domain.KindAlternative
		alt.Name = firstNonEmpty(p.RouteName.String(), fmt.Sprintf("Alternative %d", i+1))
		alt.Description = p.RouteDescription.String()
		if r.ComputationMethod != "" {
			alt.Description = fmt.Sprintf("%s (using %s algorithm)", alt.Description, r.ComputationMethod)
		}
		alt.AlgorithmName = firstNonEmpty(p.Algorithm.String(), r.ComputationMethod, defaultAlgorithm)
		alt.ComputeTimeMs = r.ComputeTimeMs
		alt.CostRatio = p.CostRatio.Float()
		alt.SimilarityToOptimal = p.SimilarityToOptimal.Float()
		routes = append(routes, alt)
	}

	res.Set = domain.NewRouteSet(routes, 0)
	return res
}

func optimized(r OptimizedTrips, opts Options) Result {
	res := Result{Kind: domain.KindOptimized, AlternativesDisabled: true, ComputeTimeMs: r.ComputeTimeMs}

	segs := make([]trips.Segment, 0, len(r.Trips))
	for _, t := range r.Trips {
		segs = append(segs, trips.FromTrip(t))
	}
	frag, diags := trips.Stitch(segs)
	res.Diagnostics = append(res.Diagnostics, diags...)

	route := domain.Route{
		ID:          "optimized",
		Kind:        domain.KindOptimized,
		Name:        "Optimized Route",
		Description: fmt.Sprintf("Visits %d stops in optimized order", len(r.Trips)+1),
		Geometry:    frag.Geometry,
		DistanceKm:  frag.DistanceKm,
		DurationMin: frag.DurationMin,
	}
	fillTotals(&route, opts.Profile)

	steps, sd := instructions.Synthesize(frag.Instructions, synthInput(route), synthOptions(opts))
	res.Diagnostics = append(res.Diagnostics, sd...)
	route.Instructions = steps

	route.AlgorithmName = firstNonEmpty(r.Algorithm, defaultOptimizedAlgorithm)
	route.ComputeTimeMs = r.ComputeTimeMs
	route.CostRatio = 1
	route.SimilarityToOptimal = 1

	res.ComputationMethod = route.AlgorithmName
	res.Set = domain.NewRouteSet([]domain.Route{route}, 0)
	return res
}

// buildRoute reads one route payload, taking each field from the payload
// itself or, failing that, from its nested "route" object.
func buildRoute(p wire.RoutePayload, opts Options, diags *domain.Diagnostics) domain.Route {
	nested := wire.RoutePayload{}
	if p.Route != nil {
		nested = *p.Route
	}

	raw := p.Geometry
	if wire.IsNull(raw) {
		raw = nested.Geometry
	}
	g, gd := geometry.Adapt(raw)
	*diags = append(*diags, gd...)

	route := domain.Route{
		Geometry:    g,
		DistanceKm:  firstNonZero(p.Distance.Float(), nested.Distance.Float()) / 1000,
		DurationMin: firstNonZero(p.Duration.Float(), nested.Duration.Float()) / 60,
	}
	fillTotals(&route, opts.Profile)

	backend := []wire.Instruction(p.Instructions)
	if len(backend) == 0 {
		backend = nested.Instructions
	}
	steps, sd := instructions.Synthesize(backend, synthInput(route), synthOptions(opts))
	*diags = append(*diags, sd...)
	route.Instructions = steps

	samples := elevation.FromWire(p.ElevationProfile)
	if len(samples) == 0 {
		samples = elevation.FromWire(nested.ElevationProfile)
	}
	stats := p.ElevationStats
	if stats == nil {
		stats = nested.ElevationStats
	}
	route.ElevationStats = elevation.Summarize(stats, samples)
	route.ElevationProfile = elevation.Normalize(samples, route.DistanceKm)

	return route
}

// fillTotals derives missing totals: distance from the path, duration from
// the profile's average speed.
func fillTotals(r *domain.Route, profile domain.Profile) {
	if r.DistanceKm <= 0 {
		r.DistanceKm = geometry.PathLengthMeters(r.Geometry) / 1000
	}
	if r.DurationMin <= 0 && r.DistanceKm > 0 {
		r.DurationMin = r.DistanceKm / profile.AverageSpeedKmh() * 60
	}
}

func synthInput(r domain.Route) instructions.Input {
	return instructions.Input{Geometry: r.Geometry, DistanceKm: r.DistanceKm, DurationMin: r.DurationMin}
}

func synthOptions(opts Options) instructions.Options {
	return instructions.Options{Profile: opts.Profile, Emphasis: opts.Emphasis}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
