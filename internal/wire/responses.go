package wire

import "encoding/json"

// Instruction is one backend maneuver. The backend names fields "name",
// "distance" (meters) and "duration" (seconds); the older street_name,
// distance_m and duration_s spellings are accepted too. Decoding never
// fails: a malformed step becomes a zero Instruction.
type Instruction struct {
	Text         *string
	StreetName   *string
	Distance     float64
	Duration     float64
	Geometry     json.RawMessage
	ManeuverType string
	// Location is raw [lon, lat] from maneuver.location or location.
	Location []float64
}

func (in *Instruction) UnmarshalJSON(b []byte) error {
	*in = Instruction{}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}

	in.Text = firstString(m, "instruction", "text")
	in.StreetName = firstString(m, "name", "street_name")
	in.Distance = firstNumber(m, "distance", "distance_m")
	in.Duration = firstNumber(m, "duration", "duration_s")
	if g, ok := m["geometry"]; ok && !IsNull(g) {
		in.Geometry = g
	}

	if raw, ok := m["maneuver"]; ok {
		var man struct {
			Type     Text         `json:"type"`
			Location List[Number] `json:"location"`
		}
		if err := json.Unmarshal(raw, &man); err == nil {
			in.ManeuverType = string(man.Type)
			in.Location = numbers(man.Location)
		}
	}
	if in.Location == nil {
		if raw, ok := m["location"]; ok {
			var loc List[Number]
			_ = loc.UnmarshalJSON(raw)
			in.Location = numbers(loc)
		}
	}
	return nil
}

func numbers(l List[Number]) []float64 {
	if len(l) < 2 {
		return nil
	}
	out := make([]float64, len(l))
	for i, n := range l {
		out[i] = float64(n)
	}
	return out
}

type ElevationPoint struct {
	DistanceKm Number `json:"distance_km"`
	Elevation  Number `json:"elevation_m"`
}

type ElevationStats struct {
	MinElevation Number `json:"min_elevation_m"`
	MaxElevation Number `json:"max_elevation_m"`
	TotalAscent  Number `json:"total_ascent_m"`
	TotalDescent Number `json:"total_descent_m"`
}

// RoutePayload is a route object as it appears under "route",
// "optimal_route" or in "alternative_routes". Some backends nest the real
// data one level deeper under "route", which Route captures.
type RoutePayload struct {
	Geometry            json.RawMessage      `json:"geometry"`
	Distance            Number               `json:"distance"`
	Duration            Number               `json:"duration"`
	Instructions        List[Instruction]    `json:"instructions"`
	ElevationProfile    List[ElevationPoint] `json:"elevation_profile"`
	ElevationStats      *ElevationStats      `json:"elevation_stats"`
	RouteName           Text                 `json:"route_name"`
	RouteDescription    Text                 `json:"route_description"`
	CostRatio           Number               `json:"cost_ratio"`
	SimilarityToOptimal Number               `json:"similarity_to_optimal"`
	Algorithm           Text                 `json:"algorithm"`
	Route               *RoutePayload        `json:"route"`

	present bool
}

// UnmarshalJSON never fails. A value that is not an object leaves the
// payload absent (see Present), and a malformed elevation_stats is dropped
// without losing the rest of the route.
func (p *RoutePayload) UnmarshalJSON(b []byte) error {
	*p = RoutePayload{}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil || obj == nil {
		return nil
	}

	type plain RoutePayload
	var v struct {
		plain
		ElevationStats json.RawMessage `json:"elevation_stats"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*p = RoutePayload(v.plain)
	p.ElevationStats = nil
	if !IsNull(v.ElevationStats) {
		var st ElevationStats
		if err := json.Unmarshal(v.ElevationStats, &st); err == nil {
			p.ElevationStats = &st
		}
	}
	p.present = true
	return nil
}

// Present reports whether the payload was decoded from a JSON object.
func (p *RoutePayload) Present() bool { return p != nil && p.present }

// Leg carries the per-leg steps of an optimized trip.
type Leg struct {
	Steps List[Instruction] `json:"steps"`
}

type Trip struct {
	Geometry     json.RawMessage   `json:"geometry"`
	Distance     Number            `json:"distance"`
	Duration     Number            `json:"duration"`
	Legs         List[Leg]         `json:"legs"`
	Instructions List[Instruction] `json:"instructions"`
}

// Envelope is the union of every top-level response field. Which fields are
// populated decides the response variant.
type Envelope struct {
	Route              *RoutePayload      `json:"route"`
	OptimalRoute       *RoutePayload      `json:"optimal_route"`
	AlternativeRoutes  List[RoutePayload] `json:"alternative_routes"`
	Trips              List[Trip]         `json:"trips"`
	ComputationMethod  Text               `json:"computation_method"`
	Algorithm          Text               `json:"algorithm"`
	ComputeTimeMs      Number             `json:"compute_time_ms"`
	TotalComputeTimeMs Number             `json:"total_compute_time_ms"`
	DiversityMetrics   json.RawMessage    `json:"diversity_metrics"`
}
