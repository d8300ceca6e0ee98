package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baileydunning/pinpoint/internal/geo"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

func TestPracticePuzzle(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/practice", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var p pinpoint.Puzzle
	json.NewDecoder(w.Body).Decode(&p)

	if !strings.HasPrefix(p.ID, "practice-") {
		t.Errorf("expected practice id prefix, got %q", p.ID)
	}
	if p.Location.ID != p.ID {
		t.Errorf("expected location id %q, got %q", p.ID, p.Location.ID)
	}
	if p.Location.Lat < -60 || p.Location.Lat > 70 {
		t.Errorf("latitude outside practice band: %v", p.Location.Lat)
	}
	if p.Location.Lng < -180 || p.Location.Lng >= 180 {
		t.Errorf("longitude out of range: %v", p.Location.Lng)
	}
	if p.Location.Country != "France" {
		t.Errorf("expected resolved metadata, got %+v", p.Location)
	}

	// Practice ids are unique per generation.
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/practice", nil))
	var second pinpoint.Puzzle
	json.NewDecoder(w.Body).Decode(&second)
	if second.ID == p.ID {
		t.Errorf("expected unique practice ids, got %q twice", p.ID)
	}
}

func TestPracticeGeometryUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.index.err = geo.ErrGeometryUnavailable

	req := httptest.NewRequest(http.MethodPost, "/api/practice", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPracticeGuessFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	puzzle := pinpoint.Puzzle{
		ID: "practice-test-round",
		Location: pinpoint.PuzzleLocation{
			ID:      "practice-test-round",
			Lat:     51.5074,
			Lng:     -0.1278,
			Country: "United Kingdom",
			City:    "London",
		},
	}
	body, _ := json.Marshal(PracticeGuessRequest{
		Puzzle:    puzzle,
		Guess:     pinpoint.Coordinate{Lat: 51.5074, Lng: -0.1278},
		ZoomLevel: 6,
		MaxZoom:   10,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/practice/guess", bytes.NewReader(body))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp PracticeGuessResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.PuzzleID != puzzle.ID {
		t.Errorf("expected puzzle id %q, got %q", puzzle.ID, resp.PuzzleID)
	}
	if resp.DistanceKm != 0 {
		t.Errorf("expected distance 0, got %v", resp.DistanceKm)
	}
	if resp.Tier != "excellent" || resp.Label != "Incredible!" {
		t.Errorf("expected excellent tier, got %q/%q", resp.Tier, resp.Label)
	}

	// Practice rounds land in the shared round history.
	rounds, err := env.history.GameResults(ctx)
	if err != nil {
		t.Fatalf("game results: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	if rounds[0].PuzzleID != puzzle.ID || rounds[0].Country != "United Kingdom" {
		t.Errorf("unexpected round: %+v", rounds[0])
	}

	// But never in the daily results.
	daily, err := env.history.DailyResults(ctx)
	if err != nil {
		t.Fatalf("daily results: %v", err)
	}
	if len(daily) != 0 {
		t.Errorf("expected no daily results, got %d", len(daily))
	}
}

func TestPracticeGuessValidation(t *testing.T) {
	env := newTestEnv(t)

	post := func(req PracticeGuessRequest) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(req)
		r := httptest.NewRequest(http.MethodPost, "/api/practice/guess", bytes.NewReader(body))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, r)
		return w
	}

	r := httptest.NewRequest(http.MethodPost, "/api/practice/guess", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", w.Code)
	}

	w = post(PracticeGuessRequest{Guess: pinpoint.Coordinate{Lat: 1, Lng: 2}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing puzzle: expected 400, got %d", w.Code)
	}

	w = post(PracticeGuessRequest{
		Puzzle: pinpoint.Puzzle{ID: "practice-x", Location: pinpoint.PuzzleLocation{ID: "practice-x", Lat: 95, Lng: 0}},
		Guess:  pinpoint.Coordinate{Lat: 1, Lng: 2},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("puzzle out of range: expected 400, got %d", w.Code)
	}

	w = post(PracticeGuessRequest{
		Puzzle: pinpoint.Puzzle{ID: "practice-x", Location: pinpoint.PuzzleLocation{ID: "practice-x", Lat: 10, Lng: 20}},
		Guess:  pinpoint.Coordinate{Lat: 10, Lng: 200},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("guess out of range: expected 400, got %d", w.Code)
	}
}
