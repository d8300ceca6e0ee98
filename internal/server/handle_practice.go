package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/geo"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

type PracticeGuessRequest struct {
	Puzzle    pinpoint.Puzzle     `json:"puzzle"`
	Guess     pinpoint.Coordinate `json:"guess"`
	ZoomLevel int                 `json:"zoomLevel"`
	MaxZoom   int                 `json:"maxZoom"`
}

type PracticeGuessResponse struct {
	PuzzleID   string                    `json:"puzzleId"`
	DistanceKm float64                   `json:"distanceKm"`
	Tier       string                    `json:"tier"`
	Label      string                    `json:"label"`
	Guess      pinpoint.Coordinate       `json:"guess"`
	Actual     pinpoint.Coordinate       `json:"actual"`
	GuessPlace pinpoint.ResolvedLocation `json:"guessPlace"`
}

func handlePractice(index game.Index, resolver game.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coord, err := game.Sample(r.Context(), index, game.Entropy{}, game.ModePractice)
		if err != nil {
			if errors.Is(err, geo.ErrGeometryUnavailable) {
				writeError(w, http.StatusServiceUnavailable, "world geometry not loaded yet")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		loc := resolver.Resolve(r.Context(), coord)
		id := "practice-" + uuid.NewString()
		writeJSON(w, http.StatusOK, pinpoint.Puzzle{
			ID: id,
			Location: pinpoint.PuzzleLocation{
				ID:       id,
				Lat:      coord.Lat,
				Lng:      coord.Lng,
				Country:  loc.Country,
				City:     loc.City,
				State:    loc.State,
				Landmark: loc.Landmark,
			},
		})
	}
}

// Practice puzzles are not stored server-side, so the client sends the
// whole puzzle back with its guess.
func handlePracticeGuess(history *game.History, resolver game.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PracticeGuessRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Puzzle.ID == "" {
			writeError(w, http.StatusBadRequest, "puzzle is required")
			return
		}
		if !validCoordinate(req.Puzzle.Location.Lat, req.Puzzle.Location.Lng) {
			writeError(w, http.StatusBadRequest, "puzzle location out of range")
			return
		}
		if !validCoordinate(req.Guess.Lat, req.Guess.Lng) {
			writeError(w, http.StatusBadRequest, "lat must be in [-90,90] and lng in [-180,180]")
			return
		}

		actual := req.Puzzle.Coord()
		distance := pinpoint.DistanceKm(req.Guess, actual)
		tier := pinpoint.TierOf(distance)
		guessPlace := resolver.Resolve(r.Context(), req.Guess)

		round := pinpoint.GameResult{
			PuzzleID:   req.Puzzle.ID,
			Date:       today(),
			DistanceKm: distance,
			ZoomLevel:  req.ZoomLevel,
			MaxZoom:    req.MaxZoom,
			Guess:      req.Guess,
			Actual:     actual,
			Country:    req.Puzzle.Location.Country,
			City:       req.Puzzle.Location.City,
			State:      req.Puzzle.Location.State,
		}
		if err := history.AppendGameResult(r.Context(), round); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, PracticeGuessResponse{
			PuzzleID:   req.Puzzle.ID,
			DistanceKm: distance,
			Tier:       tier.String(),
			Label:      tier.Label(),
			Guess:      req.Guess,
			Actual:     actual,
			GuessPlace: guessPlace,
		})
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}
