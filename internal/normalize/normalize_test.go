package normalize

import (
	"errors"
	"math"
	"testing"

	"quantaroute-demo/internal/domain"
)

const eps = 1e-9

func TestSingleRouteResponse(t *testing.T) {
	body := []byte(`{"route": {
		"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.60, 12.98]]},
		"distance": 1000,
		"duration": 120
	}}`)

	res, err := Body(body, Options{Profile: domain.ProfileCar})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != domain.KindSingle || !res.AlternativesDisabled {
		t.Fatalf("kind = %q disabled = %v", res.Kind, res.AlternativesDisabled)
	}
	if res.Set.Len() != 1 {
		t.Fatalf("routes = %d, want 1", res.Set.Len())
	}

	r, ok := res.Set.Selected()
	if !ok || !r.IsSelected {
		t.Fatalf("route not selected")
	}
	want := domain.RouteGeometry{{Lat: 12.97, Lng: 77.59}, {Lat: 12.98, Lng: 77.60}}
	if len(r.Geometry) != 2 || r.Geometry[0] != want[0] || r.Geometry[1] != want[1] {
		t.Fatalf("geometry = %v, want %v", r.Geometry, want)
	}
	if math.Abs(r.DistanceKm-1.0) > eps || math.Abs(r.DurationMin-2.0) > eps {
		t.Fatalf("totals = %v km %v min, want 1 km 2 min", r.DistanceKm, r.DurationMin)
	}
	if last := r.Instructions[len(r.Instructions)-1]; last.TurnType != domain.TurnArrive {
		t.Fatalf("last instruction = %q, want arrive", last.TurnType)
	}
}

func TestAlternativesWithNoneFound(t *testing.T) {
	body := []byte(`{
		"optimal_route": {"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.60, 12.98]]}, "distance": 1000, "duration": 120},
		"alternative_routes": [],
		"computation_method": "penalty",
		"total_compute_time_ms": 12.5
	}`)

	res, err := Body(body, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Set.Len() != 1 {
		t.Fatalf("routes = %d, want 1", res.Set.Len())
	}
	if !res.NoAlternatives || res.AlternativesDisabled {
		t.Fatalf("flags no=%v disabled=%v, want true/false", res.NoAlternatives, res.AlternativesDisabled)
	}
	r, _ := res.Set.Selected()
	if r.ID != "optimal" || r.ComputeTimeMs != 12.5 {
		t.Fatalf("selected = %q compute = %v", r.ID, r.ComputeTimeMs)
	}
}

func TestAlternativesReadNestedRouteFields(t *testing.T) {
	body := []byte(`{
		"optimal_route": {"route": {"geometry": [[12.97, 77.59], [12.98, 77.60]], "distance": 2000, "duration": 300}},
		"alternative_routes": [
			{"route_name": "Scenic", "route_description": "Via the lake", "cost_ratio": 1.2, "similarity_to_optimal": 0.4,
			 "geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.61, 12.99]]}, "distance": 2500, "duration": 360},
			{"route_name": "Broken", "geometry": {"type": "Point"}, "distance": 3000, "duration": 400}
		],
		"computation_method": "plateau"
	}`)

	res, err := Body(body, Options{Profile: domain.ProfileFoot})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Set.Len() != 3 || res.NoAlternatives {
		t.Fatalf("routes = %d no-alternatives = %v", res.Set.Len(), res.NoAlternatives)
	}

	routes := res.Set.Routes()
	if math.Abs(routes[0].DistanceKm-2) > eps || len(routes[0].Geometry) != 2 {
		t.Fatalf("optimal = %v km, %d points", routes[0].DistanceKm, len(routes[0].Geometry))
	}

	alt := routes[1]
	if alt.ID != "alternative_1" || alt.Name != "Scenic" || alt.Description != "Via the lake (using plateau algorithm)" {
		t.Fatalf("alternative = %q %q %q", alt.ID, alt.Name, alt.Description)
	}
	if alt.CostRatio != 1.2 || alt.SimilarityToOptimal != 0.4 || alt.AlgorithmName != "plateau" {
		t.Fatalf("alternative metrics = %v %v %q", alt.CostRatio, alt.SimilarityToOptimal, alt.AlgorithmName)
	}
	if alt.IsSelected {
		t.Fatalf("alternative should not be selected")
	}

	broken := routes[2]
	if broken.Drawable() {
		t.Fatalf("broken route should not be drawable")
	}
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected a geometry diagnostic")
	}
}

func TestOptimizedTripsAreStitched(t *testing.T) {
	body := []byte(`{
		"trips": [
			{"geometry": {"type": "LineString", "coordinates": [[77.59, 12.89], [77.60, 12.90]]}, "distance": 1200, "duration": 150,
			 "legs": [{"steps": [{"instruction": "Head north"}]}]},
			{"geometry": {"type": "LineString", "coordinates": [[77.60, 12.90], [77.61, 12.91]]}, "distance": 800, "duration": 90,
			 "instructions": [{"instruction": "Turn right", "name": "Lake Road"}]}
		],
		"compute_time_ms": 40
	}`)

	res, err := Body(body, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != domain.KindOptimized || res.Set.Len() != 1 {
		t.Fatalf("kind = %q routes = %d", res.Kind, res.Set.Len())
	}

	r, _ := res.Set.Selected()
	if len(r.Geometry) != 3 {
		t.Fatalf("points = %d, want 3", len(r.Geometry))
	}
	markers := 0
	for _, in := range r.Instructions {
		if in.TurnType == domain.TurnWaypoint {
			markers++
		}
	}
	if markers != 1 {
		t.Fatalf("waypoint markers = %d, want 1", markers)
	}
	if r.AlgorithmName != "TSP + QuantaRoute" {
		t.Fatalf("algorithm = %q", r.AlgorithmName)
	}
	if math.Abs(r.DistanceKm-2) > eps || math.Abs(r.DurationMin-4) > eps {
		t.Fatalf("totals = %v km %v min, want 2 km 4 min", r.DistanceKm, r.DurationMin)
	}
}

func TestUnrecognizedResponse(t *testing.T) {
	for _, body := range []string{`{}`, `{"route": {"distance": 5}}`, `[1,2]`, `not json`} {
		res, err := Body([]byte(body), Options{})
		if !errors.Is(err, domain.ErrNoRoute) {
			t.Fatalf("body %s: err = %v, want ErrNoRoute", body, err)
		}
		if res.Set != nil {
			t.Fatalf("body %s: got a route set", body)
		}
	}
}

func TestMissingTotalsAreDerived(t *testing.T) {
	body := []byte(`{"route": {"geometry": [[0, 0], [0, 1]]}}`)

	res, err := Body(body, Options{Profile: domain.ProfileFoot})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := res.Set.Selected()
	if math.Abs(r.DistanceKm-111.3195) > 0.01 {
		t.Fatalf("distance = %v, want ~111.32", r.DistanceKm)
	}
	if math.Abs(r.DurationMin-r.DistanceKm/5*60) > eps {
		t.Fatalf("duration = %v, want walking pace", r.DurationMin)
	}
}

func TestElevationIsNormalizedToRouteLength(t *testing.T) {
	body := []byte(`{"route": {
		"geometry": [[12.97, 77.59], [12.98, 77.60]],
		"distance": 1500, "duration": 400,
		"elevation_profile": [
			{"distance_km": 0, "elevation_m": 900},
			{"distance_km": 0.2, "elevation_m": 905},
			{"distance_km": 1.1, "elevation_m": 898}
		]
	}}`)

	res, _ := Body(body, Options{Profile: domain.ProfileBicycle})
	r, _ := res.Set.Selected()
	if len(r.ElevationProfile) != 3 {
		t.Fatalf("samples = %d, want 3", len(r.ElevationProfile))
	}
	if last := r.ElevationProfile[2].DistanceKm; math.Abs(last-1.5) > eps {
		t.Fatalf("last distance = %v, want 1.5", last)
	}
	if r.ElevationStats == nil || r.ElevationStats.AscentMeters != 5 {
		t.Fatalf("stats = %+v", r.ElevationStats)
	}
}

func TestMalformedRouteObjectDoesNotHideOtherVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string route beside trips",
			`{"route": "oops", "trips": [{"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.60, 12.98]]}, "distance": 1000}]}`,
			"optimized"},
		{"string optimal_route beside route",
			`{"optimal_route": 7, "route": {"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.60, 12.98]]}}}`,
			"single"},
		{"string route alone", `{"route": "oops"}`, "unrecognized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode([]byte(tt.body)).variant(); got != tt.want {
				t.Fatalf("variant = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNonObjectAlternativesAreDropped(t *testing.T) {
	body := []byte(`{
		"optimal_route": {"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.60, 12.98]]}, "distance": 1000, "duration": 120,
			"elevation_stats": "n/a"},
		"alternative_routes": ["bad", {"geometry": {"type": "LineString", "coordinates": [[77.59, 12.97], [77.61, 12.99]]}, "distance": 1500}]
	}`)

	res, err := Body(body, Options{Profile: domain.ProfileCar})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Set.Len() != 2 {
		t.Fatalf("routes = %d, want 2", res.Set.Len())
	}
	opt, _ := res.Set.At(0)
	if opt.DistanceKm != 1 {
		t.Fatalf("optimal distance = %v, want 1", opt.DistanceKm)
	}
}
