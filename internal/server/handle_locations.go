package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

type SavedLocationRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func handleLocationsList(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locs, err := history.SavedLocations(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if locs == nil {
			locs = []pinpoint.SavedLocation{}
		}

		writeJSON(w, http.StatusOK, locs)
	}
}

func handleLocationsCreate(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SavedLocationRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		if !validCoordinate(req.Lat, req.Lng) {
			writeError(w, http.StatusBadRequest, "lat must be in [-90,90] and lng in [-180,180]")
			return
		}

		loc := pinpoint.SavedLocation{
			ID:      uuid.NewString(),
			Name:    req.Name,
			Lat:     req.Lat,
			Lng:     req.Lng,
			SavedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := history.AddSavedLocation(r.Context(), loc); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, loc)
	}
}

func handleLocationsDelete(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := history.RemoveSavedLocation(r.Context(), id); err != nil {
			if errors.Is(err, game.ErrNotFound) {
				writeError(w, http.StatusNotFound, "location not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
