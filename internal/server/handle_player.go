package server

import (
	"net/http"
	"strings"

	"github.com/baileydunning/pinpoint/internal/game"
)

type PlayerRequest struct {
	Name string `json:"name"`
}

type PlayerResponse struct {
	Name string `json:"name"`
}

func handlePlayerGet(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := history.PlayerName(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, PlayerResponse{Name: name})
	}
}

func handlePlayerPut(history *game.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		if err := history.SetPlayerName(r.Context(), req.Name); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, PlayerResponse{Name: req.Name})
	}
}
