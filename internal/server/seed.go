package server

import (
	"context"
	"log/slog"

	"github.com/baileydunning/pinpoint/internal/game"
)

// SeedDefaults writes the configured player name into a fresh database.
// Idempotent: a name the player already chose is never overwritten.
func SeedDefaults(ctx context.Context, logger *slog.Logger, history *game.History, playerName string) error {
	if playerName == "" {
		return nil
	}

	existing, err := history.PlayerName(ctx)
	if err != nil {
		return err
	}
	if existing != "" {
		return nil
	}

	if err := history.SetPlayerName(ctx, playerName); err != nil {
		return err
	}

	logger.Info("seeded default player name", "name", playerName)
	return nil
}
