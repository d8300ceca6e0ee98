package server

import (
	"errors"
	"net/http"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/geo"
)

type DailyStatusResponse struct {
	Date          string `json:"date"`
	Played        bool   `json:"played"`
	CurrentStreak int    `json:"currentStreak"`
	BestStreak    int    `json:"bestStreak"`
	MsUntilNext   int64  `json:"msUntilNext"`
}

func handleDaily(scheduler *game.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		puzzle, err := scheduler.PuzzleFor(r.Context(), scheduler.Today())
		if err != nil {
			if errors.Is(err, geo.ErrGeometryUnavailable) {
				writeError(w, http.StatusServiceUnavailable, "world geometry not loaded yet")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, puzzle)
	}
}

func handleDailyStatus(scheduler *game.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := scheduler.Today()

		played, err := scheduler.HasPlayed(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		current, best, err := scheduler.Streak(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, DailyStatusResponse{
			Date:          date,
			Played:        played,
			CurrentStreak: current,
			BestStreak:    best,
			MsUntilNext:   scheduler.TimeUntilNext().Milliseconds(),
		})
	}
}
