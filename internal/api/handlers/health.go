package handlers

import (
	"context"
	"net/http"
	"time"

	"quantaroute-demo/internal/api/dto"
	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/services"
)

const healthTimeout = 5 * time.Second

type HealthHandler struct {
	Backend  ports.RoutingBackend
	Settings config.Backend
}

// Health reports the gateway as up and relays the backend's status. The
// gateway itself answers 200 even when the backend is down so the page can
// show the status line.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	rep := services.CheckHealth(ctx, h.Backend)

	auth := "none"
	if h.Settings.APIKey != "" {
		auth = "bearer"
	}
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:        "ok",
		Ready:         rep.Ready,
		Message:       rep.Message,
		BackendStatus: rep.BackendStatus,
		Mode:          h.Settings.Mode,
		APIURL:        h.Settings.BaseURL,
		AuthMethod:    auth,
		Error:         rep.Error,
	})
}
