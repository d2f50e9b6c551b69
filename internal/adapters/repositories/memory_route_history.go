package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"quantaroute-demo/internal/ports"
)

// MemoryRouteHistory keeps history in process. Used when no database is
// configured.
type MemoryRouteHistory struct {
	mu      sync.Mutex
	entries map[string][]ports.HistoryEntry
	max     int
}

// NewMemoryRouteHistory keeps at most max entries per session.
func NewMemoryRouteHistory(max int) *MemoryRouteHistory {
	if max <= 0 {
		max = 50
	}
	return &MemoryRouteHistory{entries: make(map[string][]ports.HistoryEntry), max: max}
}

func (m *MemoryRouteHistory) Record(ctx context.Context, e ports.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	list := append(m.entries[e.SessionID], e)
	if len(list) > m.max {
		list = list[len(list)-m.max:]
	}
	m.entries[e.SessionID] = list
	return nil
}

func (m *MemoryRouteHistory) List(ctx context.Context, sessionID string, limit int) ([]ports.HistoryEntry, error) {
	m.mu.Lock()
	stored := m.entries[sessionID]
	out := make([]ports.HistoryEntry, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	m.mu.Unlock()

	// Entries recorded within the same clock tick keep newest-first order.

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
