package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteStore is a write-through Store on an embedded SQLite database, for
// single-process deployments that want history to survive restarts without an
// external service. Series are stored as JSON blobs keyed by player id; the
// append/cap logic stays in AppendOrReplace so the schema is just two
// key-value tables.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database file and ensures the
// schema exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	schema := `
    CREATE TABLE IF NOT EXISTS price_series (
      player_id TEXT PRIMARY KEY,
      points    TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS smoothed_state (
      player_id TEXT PRIMARY KEY,
      value     REAL NOT NULL
    );`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Series(ctx context.Context, playerID string) ([]PricePoint, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT points FROM price_series WHERE player_id = ?`, playerID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select series: %w", err)
	}
	var series []PricePoint
	if err := json.Unmarshal([]byte(data), &series); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return series, nil
}

func (s *SQLiteStore) PutSeries(ctx context.Context, playerID string, series []PricePoint) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
    INSERT INTO price_series (player_id, points) VALUES (?, ?)
    ON CONFLICT(player_id) DO UPDATE SET points = excluded.points`, playerID, string(data))
	if err != nil {
		return fmt.Errorf("upsert series: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Smoothed(ctx context.Context, playerID string) (float64, error) {
	var v float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM smoothed_state WHERE player_id = ?`, playerID).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select smoothed: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) PutSmoothed(ctx context.Context, playerID string, v float64) error {
	_, err := s.db.ExecContext(ctx, `
    INSERT INTO smoothed_state (player_id, value) VALUES (?, ?)
    ON CONFLICT(player_id) DO UPDATE SET value = excluded.value`, playerID, v)
	if err != nil {
		return fmt.Errorf("upsert smoothed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PlayerIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player_id FROM price_series ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("select player ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Flush is a no-op: every write already committed.
func (s *SQLiteStore) Flush(context.Context) error { return nil }

func (s *SQLiteStore) Close() error { return s.db.Close() }
