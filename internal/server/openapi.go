package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/baileydunning/pinpoint/internal/leaderboard"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse mirrors the healthz payload for documentation.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Pinpoint API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Pinpoint location-guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns database health and world geometry load state.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/daily
	getDaily, _ := r.NewOperationContext(http.MethodGet, "/api/daily")
	getDaily.SetSummary("Today's puzzle")
	getDaily.SetDescription("Returns today's daily puzzle. Deterministic: every client sees the same location on a given date.")
	getDaily.AddRespStructure(pinpoint.Puzzle{}, openapi.WithHTTPStatus(http.StatusOK))
	getDaily.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getDaily)

	// GET /api/daily/status
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/daily/status")
	getStatus.SetSummary("Daily status")
	getStatus.SetDescription("Reports whether today's puzzle was played, the current and best streaks, and milliseconds until the next rollover.")
	getStatus.AddRespStructure(DailyStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStatus)

	// POST /api/daily/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/daily/guess")
	postGuess.SetSummary("Submit daily guess")
	postGuess.SetDescription("Scores a guess against today's puzzle, records the result locally, and submits it to the leaderboard.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postGuess)

	// POST /api/practice
	postPractice, _ := r.NewOperationContext(http.MethodPost, "/api/practice")
	postPractice.SetSummary("New practice puzzle")
	postPractice.SetDescription("Generates a fresh random practice puzzle. Not stored server-side.")
	postPractice.AddRespStructure(pinpoint.Puzzle{}, openapi.WithHTTPStatus(http.StatusOK))
	postPractice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postPractice)

	// POST /api/practice/guess
	postPracticeGuess, _ := r.NewOperationContext(http.MethodPost, "/api/practice/guess")
	postPracticeGuess.SetSummary("Submit practice guess")
	postPracticeGuess.SetDescription("Scores a guess against the submitted practice puzzle and records the round.")
	postPracticeGuess.AddReqStructure(PracticeGuessRequest{})
	postPracticeGuess.AddRespStructure(PracticeGuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPracticeGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postPracticeGuess)

	// GET /api/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/stats")
	getStats.SetSummary("Player stats")
	getStats.SetDescription("Returns aggregate stats recomputed from the round history.")
	getStats.AddRespStructure(pinpoint.PlayerStats{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Daily leaderboard")
	getLeaderboard.SetDescription("Returns leaderboard rows for one day sorted by distance. Pass date as query parameter; defaults to today.")
	getLeaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getLeaderboard)

	// POST /api/leaderboard
	postLeaderboard, _ := r.NewOperationContext(http.MethodPost, "/api/leaderboard")
	postLeaderboard.SetSummary("Submit leaderboard row")
	postLeaderboard.SetDescription("Creates a leaderboard row. Duplicate submissions of the same result are idempotent.")
	postLeaderboard.AddReqStructure(leaderboard.Row{})
	postLeaderboard.AddRespStructure(leaderboard.Row{}, openapi.WithHTTPStatus(http.StatusCreated))
	postLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postLeaderboard)

	// GET /api/player
	getPlayer, _ := r.NewOperationContext(http.MethodGet, "/api/player")
	getPlayer.SetSummary("Get player name")
	getPlayer.AddRespStructure(PlayerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPlayer)

	// PUT /api/player
	putPlayer, _ := r.NewOperationContext(http.MethodPut, "/api/player")
	putPlayer.SetSummary("Set player name")
	putPlayer.AddReqStructure(PlayerRequest{})
	putPlayer.AddRespStructure(PlayerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putPlayer)

	// GET /api/locations
	listLocations, _ := r.NewOperationContext(http.MethodGet, "/api/locations")
	listLocations.SetSummary("List saved locations")
	listLocations.AddRespStructure([]pinpoint.SavedLocation{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listLocations)

	// POST /api/locations
	createLocation, _ := r.NewOperationContext(http.MethodPost, "/api/locations")
	createLocation.SetSummary("Save a location")
	createLocation.AddReqStructure(SavedLocationRequest{})
	createLocation.AddRespStructure(pinpoint.SavedLocation{}, openapi.WithHTTPStatus(http.StatusCreated))
	createLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createLocation)

	// DELETE /api/locations/{id}
	deleteLocation, _ := r.NewOperationContext(http.MethodDelete, "/api/locations/{id}")
	deleteLocation.SetSummary("Delete a saved location")
	deleteLocation.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteLocation)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream announcing the daily rollover.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
