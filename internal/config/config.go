package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"pinpoint.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	GeometryURL string `env:"GEOMETRY_URL" envDefault:"https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"`

	GeocodeURL       string        `env:"GEOCODE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocodeUserAgent string        `env:"GEOCODE_USER_AGENT" envDefault:"pinpoint/1.0 (github.com/baileydunning/pinpoint)"`
	GeocodeInterval  time.Duration `env:"GEOCODE_INTERVAL" envDefault:"1s"`

	// LeaderboardDSN selects a shared Postgres leaderboard. Empty keeps
	// leaderboard rows in the local SQLite database.
	LeaderboardDSN string `env:"LEADERBOARD_DSN"`

	PlayerName string `env:"PLAYER_NAME" envDefault:"Anonymous"`
	SPADir     string `env:"SPA_DIR" envDefault:"web/dist"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
