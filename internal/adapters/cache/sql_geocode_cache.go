package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping typed place names to
// points. Keys are normalized with GeocodeKey.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// GeocodeKey folds case and whitespace so "Cubbon  Park" and "cubbon park"
// share an entry.
func GeocodeKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (s *SQLGeocodeCache) Get(ctx context.Context, query string) (_ domain.RoutePoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.RoutePoint{}, false, errors.New("geocode cache: db is nil")
	}
	key := GeocodeKey(query)
	if key == "" {
		return domain.RoutePoint{}, false, nil
	}

	var p domain.RoutePoint
	err = s.DB.QueryRowContext(ctx, `SELECT lat, lng FROM geocode_cache WHERE query = $1;`, key).Scan(&p.Lat, &p.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoutePoint{}, false, nil
	}
	if err != nil {
		return domain.RoutePoint{}, false, fmt.Errorf("get geocode cache %q: %w", key, err)
	}
	return p, true, nil
}

// Put stores or refreshes one query -> point mapping.
func (s *SQLGeocodeCache) Put(ctx context.Context, query string, p domain.RoutePoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	key := GeocodeKey(query)
	if key == "" {
		return fmt.Errorf("insert geocode cache: empty query")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (query, lat, lng)
	VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		updated_at = now();
	`, key, p.Lat, p.Lng)
	if err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", key, err)
	}
	return nil
}
