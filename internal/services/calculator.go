package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/instructions"
	"quantaroute-demo/internal/normalize"
	"quantaroute-demo/internal/platform/logger"
	"quantaroute-demo/internal/platform/metrics"
	"quantaroute-demo/internal/platform/obs"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/render"
	"quantaroute-demo/internal/wire"
)

const (
	endpointRoute        = "route"
	endpointAlternatives = "alternatives"
	endpointOptimized    = "optimized"

	defaultMethod          = "quantaroute"
	defaultNumAlternatives = 3
	defaultDiversity       = 0.7
)

// CalculateRequest describes one route calculation. Waypoints holds only
// resolved points, in order.
type CalculateRequest struct {
	SessionID           string
	Start               domain.RoutePoint
	End                 domain.RoutePoint
	Waypoints           []domain.RoutePoint
	Profile             domain.Profile
	Alternatives        bool
	Method              string
	NumAlternatives     int
	DiversityPreference float64
}

// Outcome is a normalized calculation plus how it was obtained.
type Outcome struct {
	normalize.Result
	Endpoint string
	// Degraded is set when the backend failed and the route is a
	// straight-line estimate.
	Degraded bool
	Cached   bool
	Status   string
}

type Calculator struct {
	backend  ports.RoutingBackend
	cache    ports.RouteCache
	history  ports.RouteHistory
	emphasis instructions.Emphasis
	random   func() float64
}

type CalculatorOption func(*Calculator)

func WithCache(c ports.RouteCache) CalculatorOption {
	return func(calc *Calculator) { calc.cache = c }
}

func WithHistory(h ports.RouteHistory) CalculatorOption {
	return func(calc *Calculator) { calc.history = h }
}

// WithEmphasis sets how street names are highlighted in instruction text.
func WithEmphasis(e instructions.Emphasis) CalculatorOption {
	return func(calc *Calculator) { calc.emphasis = e }
}

func NewCalculator(backend ports.RoutingBackend, opts ...CalculatorOption) *Calculator {
	c := &Calculator{backend: backend, emphasis: instructions.Strong, random: rand.Float64}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Calculate runs one route calculation against the backend.
//
// Dispatch: two or more waypoints go to the optimized endpoint; otherwise
// the alternatives endpoint when alternatives are wanted, else the single
// route endpoint. A 404 from the backend is returned as
// domain.ErrNoRouteForProfile with no fallback. Any other backend failure
// produces a simulated straight-line route with Degraded set.
func (c *Calculator) Calculate(ctx context.Context, req CalculateRequest) (_ Outcome, err error) {
	defer obs.Time(ctx, "calculator.Calculate")(&err)

	if !req.Start.Valid() || !req.End.Valid() {
		return Outcome{}, fmt.Errorf("calculate route: start %v end %v: %w", req.Start, req.End, domain.ErrInvalidCoordinate)
	}
	for i, w := range req.Waypoints {
		if !w.Valid() {
			return Outcome{}, fmt.Errorf("calculate route: waypoint %d: %w", i+1, domain.ErrInvalidCoordinate)
		}
	}
	if !req.Profile.Known() {
		req.Profile = domain.ProfileCar
	}

	endpoint, payload := buildRequest(req)
	body, cached, err := c.fetch(ctx, endpoint, payload)
	if err != nil {
		if errors.Is(err, domain.ErrNoRouteForProfile) || ctx.Err() != nil {
			return Outcome{}, err
		}

		logger.L().Warn("route calculation failed, using simulated route",
			"req_id", obs.RequestID(ctx), "endpoint", endpoint, "err", err)
		metrics.SimulatedRoutesTotal.Inc()

		sim := Simulate(req.Start, req.End, req.Profile, c.random(), c.emphasis)
		out := Outcome{
			Result: normalize.Result{
				Set:                  domain.NewRouteSet([]domain.Route{sim}, 0),
				Kind:                 domain.KindSimulated,
				AlternativesDisabled: true,
				ComputationMethod:    sim.AlgorithmName,
				ComputeTimeMs:        sim.ComputeTimeMs,
			},
			Endpoint: endpoint,
			Degraded: true,
			Status:   "Route calculation failed: " + err.Error(),
		}
		c.record(ctx, req, out)
		return out, nil
	}

	res, err := normalize.Body(body, normalize.Options{Profile: req.Profile, Emphasis: c.emphasis})
	for _, d := range res.Diagnostics {
		metrics.NormalizeWarningsTotal.WithLabelValues(d.Component).Inc()
		logger.L().Warn("route data problem",
			"req_id", obs.RequestID(ctx), "component", d.Component, "msg", d.Message)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("calculate route: %w", err)
	}

	out := Outcome{Result: res, Endpoint: endpoint, Cached: cached, Status: statusMessage(res, len(req.Waypoints))}
	c.record(ctx, req, out)
	return out, nil
}

func buildRequest(req CalculateRequest) (string, any) {
	start := req.Start.LatLngList()
	end := req.End.LatLngList()

	var waypoints [][]float64
	for _, w := range req.Waypoints {
		waypoints = append(waypoints, w.LatLngList())
	}

	if len(req.Waypoints) >= 2 {
		// The optimized endpoint wants every stop, start and end included.
		all := make([][]float64, 0, len(waypoints)+2)
		all = append(all, start)
		all = append(all, waypoints...)
		all = append(all, end)
		return endpointOptimized, wire.OptimizedRequest{
			Start:     start,
			End:       end,
			Waypoints: all,
			Profile:   string(req.Profile),
		}
	}

	if req.Alternatives {
		method := req.Method
		if method == "" {
			method = defaultMethod
		}
		n := req.NumAlternatives
		if n <= 0 {
			n = defaultNumAlternatives
		}
		div := req.DiversityPreference
		if div <= 0 {
			div = defaultDiversity
		}
		return endpointAlternatives, wire.AlternativesRequest{
			RouteRequest: wire.RouteRequest{
				Start:     start,
				End:       end,
				Waypoints: waypoints,
				Profile:   string(req.Profile),
			},
			Method:              method,
			NumAlternatives:     n,
			DiversityPreference: div,
		}
	}

	no := false
	return endpointRoute, wire.RouteRequest{
		Start:        start,
		End:          end,
		Waypoints:    waypoints,
		Profile:      string(req.Profile),
		Algorithm:    defaultMethod,
		Alternatives: &no,
	}
}

// fetch returns the backend body for a request, from the cache when
// possible. Cache failures are logged and otherwise ignored.
func (c *Calculator) fetch(ctx context.Context, endpoint string, payload any) ([]byte, bool, error) {
	var key []byte
	if c.cache != nil {
		b, err := json.Marshal(payload)
		if err == nil {
			key = b
			body, ok, err := c.cache.Get(ctx, endpoint, key)
			switch {
			case err != nil:
				logger.L().Warn("route cache read failed", "req_id", obs.RequestID(ctx), "err", err)
			case ok:
				metrics.RouteCacheHitsTotal.Inc()
				return body, true, nil
			default:
				metrics.RouteCacheMissesTotal.Inc()
			}
		}
	}

	var body []byte
	var err error
	switch p := payload.(type) {
	case wire.OptimizedRequest:
		body, err = c.backend.Optimized(ctx, p)
	case wire.AlternativesRequest:
		body, err = c.backend.Alternatives(ctx, p)
	case wire.RouteRequest:
		body, err = c.backend.Route(ctx, p)
	default:
		return nil, false, fmt.Errorf("unknown request type %T", payload)
	}
	if err != nil {
		return nil, false, err
	}

	if c.cache != nil && key != nil && normalize.Recognized(normalize.Decode(body)) {
		if err := c.cache.Put(ctx, endpoint, key, body); err != nil {
			logger.L().Warn("route cache write failed", "req_id", obs.RequestID(ctx), "err", err)
		}
	}
	return body, false, nil
}

// record stores the selected route in the history, when one is configured.
func (c *Calculator) record(ctx context.Context, req CalculateRequest, out Outcome) {
	if c.history == nil || req.SessionID == "" || out.Set == nil {
		return
	}
	r, ok := out.Set.Selected()
	if !ok {
		return
	}
	err := c.history.Record(ctx, ports.HistoryEntry{
		SessionID:   req.SessionID,
		Kind:        r.Kind,
		Profile:     req.Profile,
		Algorithm:   r.AlgorithmName,
		DistanceKm:  r.DistanceKm,
		DurationMin: r.DurationMin,
		Polyline:    render.Polyline(r.Geometry),
	})
	if err != nil {
		logger.L().Warn("route history write failed", "req_id", obs.RequestID(ctx), "err", err)
	}
}

func statusMessage(res normalize.Result, waypoints int) string {
	switch res.Kind {
	case domain.KindOptimized:
		return fmt.Sprintf("Optimized route through %d waypoints", waypoints)
	case domain.KindAlternative:
		if res.NoAlternatives {
			return "No alternative routes found"
		}
		return fmt.Sprintf("Found %d routes", res.Set.Len())
	}
	return "Route calculated"
}
