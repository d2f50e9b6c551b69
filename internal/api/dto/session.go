package dto

import "time"

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Profile   string `json:"profile"`
}

// WaypointRequest sets a waypoint from a point or from typed text.
type WaypointRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng   *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Query string   `json:"query" validate:"required_without_all=Lat Lng,max=200"`
}

type WaypointSlot struct {
	Index   int      `json:"index"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Pending bool     `json:"pending"`
	Marker  string   `json:"marker,omitempty"`
}

type WaypointsResponse struct {
	Waypoints []WaypointSlot `json:"waypoints"`
	Resolved  int            `json:"resolved"`
	Pending   int            `json:"pending"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Ready         bool   `json:"ready"`
	Message       string `json:"message"`
	BackendStatus string `json:"backend_status,omitempty"`
	Mode          string `json:"mode"`
	APIURL        string `json:"api_url"`
	AuthMethod    string `json:"auth_method"`
	Error         string `json:"error,omitempty"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Profile     string    `json:"profile"`
	Algorithm   string    `json:"algorithm"`
	DistanceKm  float64   `json:"distance_km"`
	DurationMin float64   `json:"duration_min"`
	Polyline    string    `json:"polyline"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}
