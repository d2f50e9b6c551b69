package api

import (
	"net/http"

	"quantaroute-demo/internal/api/handlers"
	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/platform/metrics"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/services"
)

// Deps are the services the HTTP layer needs. History may be nil.
type Deps struct {
	Backend    ports.RoutingBackend
	Settings   config.Backend
	Sessions   *services.SessionStore
	Calculator *services.Calculator
	Locator    *services.Locator
	History    ports.RouteHistory
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{Backend: d.Backend, Settings: d.Settings}
	sessions := handlers.NewSessionHandler(d.Sessions, d.Calculator, d.Locator, d.History)

	mux.HandleFunc("/health", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/sessions", sessions.Create)
	mux.HandleFunc("GET /api/sessions/{id}", sessions.Get)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessions.Clear)
	mux.HandleFunc("POST /api/sessions/{id}/routes", sessions.Calculate)
	mux.HandleFunc("POST /api/sessions/{id}/select", sessions.Select)
	mux.HandleFunc("GET /api/sessions/{id}/geojson", sessions.GeoJSON)
	mux.HandleFunc("GET /api/sessions/{id}/history", sessions.History)

	mux.HandleFunc("GET /api/sessions/{id}/waypoints", sessions.ListWaypoints)
	mux.HandleFunc("POST /api/sessions/{id}/waypoints", sessions.AddWaypoint)
	mux.HandleFunc("POST /api/sessions/{id}/waypoints/resolve", sessions.ResolveWaypoint)
	mux.HandleFunc("PUT /api/sessions/{id}/waypoints/{i}", sessions.SetWaypoint)
	mux.HandleFunc("DELETE /api/sessions/{id}/waypoints/{i}", sessions.RemoveWaypoint)
	mux.HandleFunc("POST /api/sessions/{id}/waypoints/{i}/up", sessions.MoveWaypointUp)
	mux.HandleFunc("POST /api/sessions/{id}/waypoints/{i}/down", sessions.MoveWaypointDown)

	return requestIDMiddleware(loggingMiddleware(mux))
}
