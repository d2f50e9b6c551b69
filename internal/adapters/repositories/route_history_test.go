package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/db"
	"quantaroute-demo/internal/ports"
)

func TestMemoryRouteHistoryNewestFirst(t *testing.T) {
	h := NewMemoryRouteHistory(2)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, kind := range []domain.RouteKind{domain.KindSingle, domain.KindOptimal, domain.KindOptimized} {
		e := ports.HistoryEntry{SessionID: "s1", Kind: kind, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := h.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	_ = h.Record(ctx, ports.HistoryEntry{SessionID: "s2", Kind: domain.KindSimulated})

	got, err := h.List(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2 (capped)", len(got))
	}
	if got[0].Kind != domain.KindOptimized || got[1].Kind != domain.KindOptimal {
		t.Fatalf("order = %q, %q", got[0].Kind, got[1].Kind)
	}
	if got[0].ID == "" {
		t.Fatalf("entry id not assigned")
	}

	if got, _ := h.List(ctx, "s1", 1); len(got) != 1 {
		t.Fatalf("limit ignored: %d entries", len(got))
	}
}

func TestMemoryRouteHistorySameInstant(t *testing.T) {
	h := NewMemoryRouteHistory(5)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_ = h.Record(ctx, ports.HistoryEntry{SessionID: "s", Kind: domain.KindSingle, CreatedAt: at})
	_ = h.Record(ctx, ports.HistoryEntry{SessionID: "s", Kind: domain.KindOptimal, CreatedAt: at})

	got, _ := h.List(ctx, "s", 10)
	if len(got) != 2 || got[0].Kind != domain.KindOptimal {
		t.Fatalf("entries = %+v, want optimal first", got)
	}
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresRouteHistory(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	conn, err := db.Open(ctx, url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()
	if err := InitSchema(ctx, conn); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	h := NewPostgresRouteHistory(conn)
	session := "test-" + time.Now().Format("150405.000000")
	entry := ports.HistoryEntry{
		SessionID:   session,
		Kind:        domain.KindOptimal,
		Profile:     domain.ProfileBicycle,
		Algorithm:   "quantaroute",
		DistanceKm:  3.2,
		DurationMin: 12,
		Polyline:    "_p~iF~ps|U_ulLnnqC",
	}
	if err := h.Record(ctx, entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := h.List(ctx, session, 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Profile != domain.ProfileBicycle || got[0].Polyline != entry.Polyline {
		t.Fatalf("entries = %+v", got)
	}

	if _, err := h.Prune(ctx, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
}

func TestNilDBErrors(t *testing.T) {
	h := NewPostgresRouteHistory(nil)
	if err := h.Record(context.Background(), ports.HistoryEntry{SessionID: "s"}); err == nil {
		t.Fatalf("expected an error for a nil DB")
	}
	if err := InitSchema(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a nil DB")
	}
}
