// Package storage persists the small amount of local state fintrack
// owns itself: which budget alerts the user has dismissed. Everything
// else lives behind the REST backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the sqlite database at dbPath and brings its
// schema up to date.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Dismiss records an alert id as dismissed. Dismissing the same id
// twice is a no-op.
func (s *Store) Dismiss(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dismissed_alerts (alert_id) VALUES (?) ON CONFLICT (alert_id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("insert dismissed alert: %w", err)
	}
	return nil
}

// DismissedIDs returns every dismissed alert id as a membership set.
func (s *Store) DismissedIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT alert_id FROM dismissed_alerts`)
	if err != nil {
		return nil, fmt.Errorf("query dismissed alerts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dismissed alert: %w", err)
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dismissed alerts: %w", err)
	}
	return out, nil
}

// Prune removes dismissals older than the cutoff. Alert ids embed the
// month they were raised in, so old rows can never match again and
// only take up space.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dismissed_alerts WHERE dismissed_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune dismissed alerts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return n, nil
}
