package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// geoState reports whether the world geometry is resident without
// triggering a fetch.
type geoState interface {
	Loaded() bool
}

func handleHealth(logger *slog.Logger, db *sql.DB, geometry geoState) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]result{
			"sqlite":   {Status: "ok"},
			"geometry": {Status: "ok"},
		}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			checks["sqlite"] = result{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		// Geometry still warming up is reported but does not flip the
		// status; the dependent endpoints degrade to 503 on their own.
		if !geometry.Loaded() {
			checks["geometry"] = result{Status: "loading"}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(checks)
	}
}
