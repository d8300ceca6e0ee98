package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/baileydunning/pinpoint/internal/database"
	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
	"github.com/baileydunning/pinpoint/internal/migrations"
	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// fakeIndex treats every point as land so sampling accepts the first
// draw. err simulates unavailable geometry.
type fakeIndex struct {
	err    error
	loaded bool
}

func (f *fakeIndex) Contains(ctx context.Context, c pinpoint.Coordinate) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func (f *fakeIndex) Loaded() bool { return f.loaded }

// fakeResolver returns a fixed location without touching the network.
type fakeResolver struct {
	loc pinpoint.ResolvedLocation
}

func (f *fakeResolver) Resolve(ctx context.Context, c pinpoint.Coordinate) pinpoint.ResolvedLocation {
	return f.loc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	router    *chi.Mux
	store     *SQLiteStore
	history   *game.History
	scheduler *game.Scheduler
	index     *fakeIndex
	broker    *Broker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	logger := discardLogger()
	store := NewSQLiteStore(db)
	index := &fakeIndex{loaded: true}
	resolver := &fakeResolver{
		loc: pinpoint.NewResolvedLocation("France", "Île-de-France", "Paris", "", ""),
	}
	history := game.NewHistory(store, logger)
	scheduler := game.NewScheduler(index, resolver, history, logger)
	broker := NewBroker()

	r := chi.NewRouter()
	addRoutes(r, logger, Deps{
		DB:          db,
		Index:       index,
		Scheduler:   scheduler,
		History:     history,
		Resolver:    resolver,
		Leaderboard: leaderboard.NewClient(store),
		Broker:      broker,
	})

	return &testEnv{
		router:    r,
		store:     store,
		history:   history,
		scheduler: scheduler,
		index:     index,
		broker:    broker,
	}
}
