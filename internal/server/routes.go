package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
)

// Index is what the handlers need from the world geometry: containment
// for sampling plus load state for health reporting.
type Index interface {
	game.Index
	Loaded() bool
}

// Deps are the wired components the handlers close over. The broker is
// injected rather than built here so the midnight announcer can publish
// into it.
type Deps struct {
	DB          *sql.DB
	Index       Index
	Scheduler   *game.Scheduler
	History     *game.History
	Resolver    game.Resolver
	Leaderboard *leaderboard.Client
	Broker      *Broker
	SPADir      string
}

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Pinpoint API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, d.DB, d.Index))

	r.Route("/api", func(r chi.Router) {
		r.Get("/daily", handleDaily(d.Scheduler))
		r.Get("/daily/status", handleDailyStatus(d.Scheduler))
		r.Post("/daily/guess", handleDailyGuess(logger, d.Scheduler, d.History, d.Resolver, d.Leaderboard))
		r.Post("/practice", handlePractice(d.Index, d.Resolver))
		r.Post("/practice/guess", handlePracticeGuess(d.History, d.Resolver))
		r.Get("/stats", handleStats(d.History))
		r.Get("/leaderboard", handleLeaderboard(d.Leaderboard, d.Scheduler))
		r.Post("/leaderboard", handleLeaderboardCreate(d.Leaderboard))
		r.Get("/player", handlePlayerGet(d.History))
		r.Put("/player", handlePlayerPut(d.History))
		r.Get("/locations", handleLocationsList(d.History))
		r.Post("/locations", handleLocationsCreate(d.History))
		r.Delete("/locations/{id}", handleLocationsDelete(d.History))
		r.Get("/events", handleEvents(d.Broker))
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
