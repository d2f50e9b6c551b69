package ports

import (
	"context"
	"time"

	"quantaroute-demo/internal/domain"
)

// One calculated route as it was shown to the user.
type HistoryEntry struct {
	ID          string
	SessionID   string
	Kind        domain.RouteKind
	Profile     domain.Profile
	Algorithm   string
	DistanceKm  float64
	DurationMin float64
	Polyline    string
	CreatedAt   time.Time
}

// Port: persistence for calculated routes.
type RouteHistory interface {
	Record(ctx context.Context, e HistoryEntry) error
	// Return the newest entries of a session first.
	List(ctx context.Context, sessionID string, limit int) ([]HistoryEntry, error)
}
