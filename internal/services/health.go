package services

import (
	"context"
	"errors"

	"quantaroute-demo/internal/ports"
)

const (
	HealthReady     = "QuantaRoute Ready"
	HealthConnected = "QuantaRoute API Connected"
	HealthError     = "Server Error"
	HealthOffline   = "Server Offline"
)

type HealthReport struct {
	Ready         bool
	BackendStatus string
	Message       string
	Error         string
}

// CheckHealth asks the backend for its status. "ok" and "healthy" count as
// ready; an error reply is a server error and no reply at all means the
// server is offline.
func CheckHealth(ctx context.Context, backend ports.RoutingBackend) HealthReport {
	h, err := backend.Health(ctx)
	if err != nil {
		var coded interface{ StatusCode() int }
		if errors.As(err, &coded) {
			return HealthReport{Message: HealthError, Error: err.Error()}
		}
		return HealthReport{Message: HealthOffline, Error: err.Error()}
	}

	switch h.Status {
	case "ok", "healthy":
		msg := HealthConnected
		if h.QuantaRouteAvailable != nil && *h.QuantaRouteAvailable {
			msg = HealthReady
		}
		return HealthReport{Ready: true, BackendStatus: h.Status, Message: msg}
	}
	return HealthReport{BackendStatus: h.Status, Message: HealthError}
}
