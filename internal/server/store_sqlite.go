package server

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baileydunning/pinpoint/internal/leaderboard"
)

// SQLiteStore backs both halves of Store with the local database: player
// state in the kv table, leaderboard rows in leaderboard_rows.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the raw value stored under key. A missing key is not an
// error; it reports ok=false.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value))
	return err
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM kv WHERE key = ?
	`, key)
	return err
}

// Create inserts a leaderboard row. Rows are idempotent by id: replaying
// an id that already exists is success, not a conflict.
func (s *SQLiteStore) Create(ctx context.Context, row leaderboard.Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_rows (
			id, date, player_name, distance_km, zoom_level,
			guess_lat, guess_lng, actual_lat, actual_lng,
			country, actual_display_name, actual_state,
			guess_country, guess_state, guess_city, guess_display_name
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, row.ID, row.Date, row.PlayerName, row.DistanceKm, row.ZoomLevel,
		row.GuessLat, row.GuessLng, row.ActualLat, row.ActualLng,
		row.Country, row.ActualDisplayName, row.ActualState,
		row.GuessCountry, row.GuessState, row.GuessCity, row.GuessDisplayName)
	return err
}

func (s *SQLiteStore) List(ctx context.Context) ([]leaderboard.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, player_name, distance_km, zoom_level,
			guess_lat, guess_lng, actual_lat, actual_lng,
			country, actual_display_name, actual_state,
			guess_country, guess_state, guess_city, guess_display_name
		FROM leaderboard_rows
		ORDER BY date DESC, distance_km ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []leaderboard.Row
	for rows.Next() {
		var r leaderboard.Row
		if err := rows.Scan(
			&r.ID, &r.Date, &r.PlayerName, &r.DistanceKm, &r.ZoomLevel,
			&r.GuessLat, &r.GuessLng, &r.ActualLat, &r.ActualLng,
			&r.Country, &r.ActualDisplayName, &r.ActualState,
			&r.GuessCountry, &r.GuessState, &r.GuessCity, &r.GuessDisplayName,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
