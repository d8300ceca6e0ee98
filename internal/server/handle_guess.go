package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/geo"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

type GuessRequest struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	ZoomLevel int     `json:"zoomLevel"`
	MaxZoom   int     `json:"maxZoom"`
}

type GuessResponse struct {
	PuzzleID             string                    `json:"puzzleId"`
	Date                 string                    `json:"date"`
	DistanceKm           float64                   `json:"distanceKm"`
	Tier                 string                    `json:"tier"`
	Label                string                    `json:"label"`
	Guess                pinpoint.Coordinate       `json:"guess"`
	Actual               pinpoint.Coordinate       `json:"actual"`
	GuessPlace           pinpoint.ResolvedLocation `json:"guessPlace"`
	ActualPlace          pinpoint.ResolvedLocation `json:"actualPlace"`
	CurrentStreak        int                       `json:"currentStreak"`
	BestStreak           int                       `json:"bestStreak"`
	LeaderboardSubmitted bool                      `json:"leaderboardSubmitted"`
}

func handleDailyGuess(logger *slog.Logger, scheduler *game.Scheduler, history *game.History, resolver game.Resolver, lb *leaderboard.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !validCoordinate(req.Lat, req.Lng) {
			writeError(w, http.StatusBadRequest, "lat must be in [-90,90] and lng in [-180,180]")
			return
		}

		date := scheduler.Today()
		puzzle, err := scheduler.PuzzleFor(r.Context(), date)
		if err != nil {
			if errors.Is(err, geo.ErrGeometryUnavailable) {
				writeError(w, http.StatusServiceUnavailable, "world geometry not loaded yet")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		guess := pinpoint.Coordinate{Lat: req.Lat, Lng: req.Lng}
		actual := puzzle.Coord()
		distance := pinpoint.DistanceKm(guess, actual)
		tier := pinpoint.TierOf(distance)

		guessPlace := resolver.Resolve(r.Context(), guess)
		actualPlace := pinpoint.NewResolvedLocation(
			puzzle.Location.Country,
			puzzle.Location.State,
			puzzle.Location.City,
			puzzle.Location.Landmark,
			"",
		)

		playerName, err := history.PlayerName(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if playerName == "" {
			playerName = "Anonymous"
		}

		result := pinpoint.DailyResult{
			Date:        date,
			PlayerName:  playerName,
			DistanceKm:  distance,
			ZoomLevel:   req.ZoomLevel,
			MaxZoom:     req.MaxZoom,
			Guess:       guess,
			Actual:      actual,
			ActualPlace: actualPlace,
			GuessPlace:  guessPlace,
		}
		if err := scheduler.RecordResult(r.Context(), result); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		round := pinpoint.GameResult{
			PuzzleID:   puzzle.ID,
			Date:       date,
			DistanceKm: distance,
			ZoomLevel:  req.ZoomLevel,
			MaxZoom:    req.MaxZoom,
			Guess:      guess,
			Actual:     actual,
			Country:    actualPlace.Country,
			City:       actualPlace.City,
			State:      actualPlace.State,
		}
		if err := history.AppendGameResult(r.Context(), round); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Leaderboard failures never fail the guess; local history is
		// already recorded.
		submitted := true
		if err := lb.Submit(r.Context(), leaderboard.FromDailyResult(result)); err != nil {
			submitted = false
			logger.Warn("leaderboard submission failed", "date", date, "error", err)
		}

		current, best, err := scheduler.Streak(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			PuzzleID:             puzzle.ID,
			Date:                 date,
			DistanceKm:           distance,
			Tier:                 tier.String(),
			Label:                tier.Label(),
			Guess:                guess,
			Actual:               actual,
			GuessPlace:           guessPlace,
			ActualPlace:          actualPlace,
			CurrentStreak:        current,
			BestStreak:           best,
			LeaderboardSubmitted: submitted,
		})
	}
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
