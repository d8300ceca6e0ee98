package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baileydunning/pinpoint/internal/config"
	"github.com/baileydunning/pinpoint/internal/database"
	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/geo"
	"github.com/baileydunning/pinpoint/internal/geocode"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
	"github.com/baileydunning/pinpoint/internal/migrations"
	"github.com/baileydunning/pinpoint/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)

	// --- Leaderboard backend ---
	var lbStore leaderboard.Store = store
	if cfg.LeaderboardDSN != "" {
		pg, err := database.OpenPostgres(ctx, cfg.LeaderboardDSN)
		if err != nil {
			return fmt.Errorf("connecting to leaderboard postgres: %w", err)
		}
		defer pg.Close()

		pgStore := server.NewPostgresStore(pg)
		if err := pgStore.Init(ctx); err != nil {
			return fmt.Errorf("initializing leaderboard schema: %w", err)
		}
		lbStore = pgStore
		logger.Info("using shared postgres leaderboard")
	}
	lb := leaderboard.NewClient(lbStore)

	// --- Game engine ---
	index := geo.New(cfg.GeometryURL, nil, logger)
	resolver := geocode.New(cfg.GeocodeURL, cfg.GeocodeUserAgent, cfg.GeocodeInterval, index, logger)
	history := game.NewHistory(store, logger)
	scheduler := game.NewScheduler(index, resolver, history, logger)

	if err := server.SeedDefaults(ctx, logger, history, cfg.PlayerName); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	broker := server.NewBroker()

	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		DB:          db,
		Index:       index,
		Scheduler:   scheduler,
		History:     history,
		Resolver:    resolver,
		Leaderboard: lb,
		Broker:      broker,
		SPADir:      cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	// Warm the world geometry so the first puzzle request doesn't pay for
	// the download. Failure is not fatal: handlers answer 503 until a
	// later request retries the fetch.
	g.Go(func() error {
		if err := index.Load(gctx); err != nil {
			logger.Warn("geometry warmup failed", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		announceRollover(gctx, scheduler, broker, logger)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// announceRollover publishes an SSE event at each local midnight so
// connected clients know to refresh the daily puzzle. The extra second
// guarantees the clock has crossed midnight before announcing.
func announceRollover(ctx context.Context, scheduler *game.Scheduler, broker *server.Broker, logger *slog.Logger) {
	for {
		wait := scheduler.TimeUntilNext() + time.Second

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		date := scheduler.Today()
		logger.Info("daily rollover", "date", date)
		broker.Publish(server.SSEEvent{Type: "rollover", Date: date})
	}
}
