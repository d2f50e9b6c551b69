// Package wire holds the JSON shapes exchanged with the QuantaRoute backend.
// Coordinates in request bodies are [lat, lng]; geometry in responses is
// kept raw and handed to the geometry adapter.
package wire

type RouteRequest struct {
	Start        []float64   `json:"start"`
	End          []float64   `json:"end"`
	Waypoints    [][]float64 `json:"waypoints,omitempty"`
	Profile      string      `json:"profile"`
	Algorithm    string      `json:"algorithm,omitempty"`
	Alternatives *bool       `json:"alternatives,omitempty"`
}

type AlternativesRequest struct {
	RouteRequest
	Method              string  `json:"method"`
	NumAlternatives     int     `json:"num_alternatives"`
	DiversityPreference float64 `json:"diversity_preference"`
}

// OptimizedRequest lists every stop, start and end included, in Waypoints.
type OptimizedRequest struct {
	Start     []float64   `json:"start"`
	End       []float64   `json:"end"`
	Waypoints [][]float64 `json:"waypoints"`
	Profile   string      `json:"profile"`
}

type HealthResponse struct {
	Status               string `json:"status"`
	QuantaRouteAvailable *bool  `json:"quantaroute_available,omitempty"`
}

// ErrorBody is the backend's error envelope (FastAPI style).
type ErrorBody struct {
	Detail string `json:"detail"`
}
