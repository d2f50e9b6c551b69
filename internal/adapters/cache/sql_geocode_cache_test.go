package cache

import (
	"context"
	"os"
	"testing"

	"quantaroute-demo/internal/adapters/repositories"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/db"
)

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	if _, _, err := c.Get(context.Background(), "x"); err == nil {
		t.Fatalf("expected an error for a nil DB")
	}
	if err := c.Put(context.Background(), "x", domain.RoutePoint{}); err == nil {
		t.Fatalf("expected an error for a nil DB")
	}
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestSQLGeocodeCacheRoundTrip(t *testing.T) {
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
	if err := repositories.InitSchema(ctx, conn); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	c := NewSQLGeocodeCache(conn)
	want := domain.RoutePoint{Lat: 12.9763, Lng: 77.5929}
	if err := c.Put(ctx, "Cubbon Park, Bengaluru", want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "cubbon park,  bengaluru")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if got != want {
		t.Fatalf("point = %v, want %v", got, want)
	}
	if _, ok, _ := c.Get(ctx, "nowhere at all"); ok {
		t.Fatalf("unexpected hit")
	}
}
