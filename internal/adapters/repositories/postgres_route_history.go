package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/obs"
	"quantaroute-demo/internal/ports"
)

// Postgres-backed implementation of the RouteHistory port.
type PostgresRouteHistory struct{ DB *sql.DB }

func NewPostgresRouteHistory(db *sql.DB) *PostgresRouteHistory {
	return &PostgresRouteHistory{DB: db}
}

func (p *PostgresRouteHistory) Record(ctx context.Context, e ports.HistoryEntry) (err error) {
	defer obs.Time(ctx, "history.Record")(&err)

	if p.DB == nil {
		return errors.New("postgres route history: DB is nil")
	}
	if e.SessionID == "" {
		return errors.New("record route: session id must not be empty")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO route_history (
		id, session_id, kind, profile, algorithm,
		distance_km, duration_min, polyline, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = p.DB.ExecContext(ctx, query,
		e.ID, e.SessionID, string(e.Kind), string(e.Profile), e.Algorithm,
		e.DistanceKm, e.DurationMin, e.Polyline, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record route: insert route_history: %w", err)
	}
	return nil
}

func (p *PostgresRouteHistory) List(ctx context.Context, sessionID string, limit int) (_ []ports.HistoryEntry, err error) {
	defer obs.Time(ctx, "history.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres route history: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, session_id, kind, profile, algorithm,
		distance_km, duration_min, polyline, created_at
	FROM route_history
	WHERE session_id = $1
	ORDER BY created_at DESC
	LIMIT $2;
	`
	rows, err := p.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list routes: query route_history table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.HistoryEntry, 0, limit)
	for rows.Next() {
		var e ports.HistoryEntry
		var kind, profile string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &profile, &e.Algorithm,
			&e.DistanceKm, &e.DurationMin, &e.Polyline, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		e.Kind = domain.RouteKind(kind)
		e.Profile = domain.Profile(profile)
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return out, nil
}

// Prune deletes entries older than the cutoff and reports how many went.
func (p *PostgresRouteHistory) Prune(ctx context.Context, before time.Time) (int64, error) {
	if p.DB == nil {
		return 0, errors.New("postgres route history: DB is nil")
	}
	res, err := p.DB.ExecContext(ctx, `DELETE FROM route_history WHERE created_at < $1;`, before)
	if err != nil {
		return 0, fmt.Errorf("prune routes: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
