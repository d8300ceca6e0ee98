package server

import (
	"net/http"
	"strings"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
)

type LeaderboardResponse struct {
	Date string            `json:"date"`
	Rows []leaderboard.Row `json:"rows"`
}

func handleLeaderboard(lb *leaderboard.Client, scheduler *game.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = scheduler.Today()
		}

		rows, err := lb.Day(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}
		if rows == nil {
			rows = []leaderboard.Row{}
		}

		writeJSON(w, http.StatusOK, LeaderboardResponse{
			Date: leaderboard.NormalizeDate(date),
			Rows: rows,
		})
	}
}

func handleLeaderboardCreate(lb *leaderboard.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var row leaderboard.Row
		if err := readJSON(w, r, &row); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		row.Date = strings.TrimSpace(row.Date)
		row.PlayerName = strings.TrimSpace(row.PlayerName)
		if row.Date == "" || row.PlayerName == "" {
			writeError(w, http.StatusBadRequest, "date and playerName are required")
			return
		}
		if row.ID == "" {
			row.ID = leaderboard.NewRowID(row.Date, row.PlayerName, row.DistanceKm)
		}

		if err := lb.Submit(r.Context(), row); err != nil {
			writeError(w, http.StatusServiceUnavailable, "leaderboard unavailable")
			return
		}

		writeJSON(w, http.StatusCreated, row)
	}
}
