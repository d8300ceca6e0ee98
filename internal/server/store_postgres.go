package server

import (
	"context"
	"database/sql"

	"github.com/baileydunning/pinpoint/internal/leaderboard"
)

// PostgresStore is the shared leaderboard backend selected by
// LEADERBOARD_DSN. It covers only the leaderboard half of Store: player
// state always lives in the local SQLite file.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the leaderboard table when it does not exist yet. The
// shared database is outside the goose migration set, so the store
// bootstraps its own schema.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leaderboard_rows (
			id                  TEXT PRIMARY KEY,
			date                TEXT NOT NULL,
			player_name         TEXT NOT NULL,
			distance_km         DOUBLE PRECISION NOT NULL,
			zoom_level          INTEGER NOT NULL DEFAULT 0,
			guess_lat           DOUBLE PRECISION NOT NULL DEFAULT 0,
			guess_lng           DOUBLE PRECISION NOT NULL DEFAULT 0,
			actual_lat          DOUBLE PRECISION NOT NULL DEFAULT 0,
			actual_lng          DOUBLE PRECISION NOT NULL DEFAULT 0,
			country             TEXT NOT NULL DEFAULT '',
			actual_display_name TEXT NOT NULL DEFAULT '',
			actual_state        TEXT NOT NULL DEFAULT '',
			guess_country       TEXT NOT NULL DEFAULT '',
			guess_state         TEXT NOT NULL DEFAULT '',
			guess_city          TEXT NOT NULL DEFAULT '',
			guess_display_name  TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// Create inserts a leaderboard row. Rows are idempotent by id.
func (s *PostgresStore) Create(ctx context.Context, row leaderboard.Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_rows (
			id, date, player_name, distance_km, zoom_level,
			guess_lat, guess_lng, actual_lat, actual_lng,
			country, actual_display_name, actual_state,
			guess_country, guess_state, guess_city, guess_display_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`, row.ID, row.Date, row.PlayerName, row.DistanceKm, row.ZoomLevel,
		row.GuessLat, row.GuessLng, row.ActualLat, row.ActualLng,
		row.Country, row.ActualDisplayName, row.ActualState,
		row.GuessCountry, row.GuessState, row.GuessCity, row.GuessDisplayName)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]leaderboard.Row, error) {
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
