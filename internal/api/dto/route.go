package dto

// Point is a coordinate as the page sends it.
type Point struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

// CalculateRouteRequest asks for a route between two points. Either point
// may be given as typed text instead (start_query / end_query), which is
// parsed as coordinates or geocoded.
type CalculateRouteRequest struct {
	Start               *Point  `json:"start" validate:"required_without=StartQuery"`
	StartQuery          string  `json:"start_query" validate:"omitempty,max=200"`
	End                 *Point  `json:"end" validate:"required_without=EndQuery"`
	EndQuery            string  `json:"end_query" validate:"omitempty,max=200"`
	Profile             string  `json:"profile" validate:"omitempty,oneof=car bicycle foot motorcycle"`
	Alternatives        *bool   `json:"alternatives"`
	Method              string  `json:"method" validate:"omitempty,oneof=quantaroute plateau penalty via_point corridor multi_objective"`
	NumAlternatives     int     `json:"num_alternatives" validate:"omitempty,min=1,max=5"`
	DiversityPreference float64 `json:"diversity_preference" validate:"omitempty,gt=0,lte=1"`
}

type SelectRouteRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

type LineStyle struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

type InstructionResponse struct {
	Text            string      `json:"text"`
	TurnType        string      `json:"turn_type"`
	DistanceMeters  float64     `json:"distance_m"`
	DurationSeconds float64     `json:"duration_s"`
	DistanceText    string      `json:"distance_text"`
	StreetName      *string     `json:"street_name,omitempty"`
	Location        []float64   `json:"location,omitempty"`
	Segment         [][]float64 `json:"segment,omitempty"`
}

type ElevationPoint struct {
	DistanceKm float64 `json:"distance_km"`
	Elevation  float64 `json:"elevation_m"`
}

type ElevationStats struct {
	MinElevation float64 `json:"min_elevation_m"`
	MaxElevation float64 `json:"max_elevation_m"`
	TotalAscent  float64 `json:"total_ascent_m"`
	TotalDescent float64 `json:"total_descent_m"`
}

type DistanceMarker struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
	Label      string  `json:"label"`
}

type Connector struct {
	From []float64 `json:"from"`
	To   []float64 `json:"to"`
	End  string    `json:"end"`
}

type RouteResponse struct {
	ID                  string                `json:"id"`
	Kind                string                `json:"kind"`
	Name                string                `json:"name"`
	Description         string                `json:"description,omitempty"`
	Selected            bool                  `json:"selected"`
	Drawable            bool                  `json:"drawable"`
	DistanceKm          float64               `json:"distance_km"`
	DurationMin         float64               `json:"duration_min"`
	DistanceText        string                `json:"distance_text"`
	DurationText        string                `json:"duration_text"`
	Algorithm           string                `json:"algorithm"`
	ComputeTimeMs       float64               `json:"compute_time_ms"`
	CostRatio           float64               `json:"cost_ratio"`
	SimilarityToOptimal float64               `json:"similarity_to_optimal"`
	Style               LineStyle             `json:"style"`
	Geometry            [][]float64           `json:"geometry"`
	Polyline            string                `json:"polyline"`
	Instructions        []InstructionResponse `json:"instructions"`
	ElevationProfile    []ElevationPoint      `json:"elevation_profile"`
	ElevationStats      *ElevationStats       `json:"elevation_stats,omitempty"`
}

// RoutesResponse is everything the page needs to draw a calculation.
type RoutesResponse struct {
	SessionID            string           `json:"session_id"`
	Profile              string           `json:"profile"`
	ProfileName          string           `json:"profile_name"`
	Kind                 string           `json:"kind,omitempty"`
	Routes               []RouteResponse  `json:"routes"`
	SelectedIndex        int              `json:"selected_index"`
	NoAlternatives       bool             `json:"no_alternatives"`
	AlternativesDisabled bool             `json:"alternatives_disabled"`
	Degraded             bool             `json:"degraded"`
	Cached               bool             `json:"cached"`
	ComputationMethod    string           `json:"computation_method,omitempty"`
	ComputeTimeMs        float64          `json:"compute_time_ms"`
	Status               string           `json:"status,omitempty"`
	Warnings             []string         `json:"warnings,omitempty"`
	Bounds               []float64        `json:"bounds,omitempty"`
	Markers              []DistanceMarker `json:"distance_markers"`
	Connectors           []Connector      `json:"connectors"`
	Waypoints            []WaypointSlot   `json:"waypoints"`
}
