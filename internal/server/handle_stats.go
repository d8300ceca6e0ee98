package server

import (
	"net/http"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/stats"
)

// Stats are recomputed from the round history on every request; nothing
// aggregated is ever persisted.
func handleStats(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := history.GameResults(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, stats.Recompute(results))
	}
}
