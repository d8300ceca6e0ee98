package server

import (
	"github.com/baileydunning/pinpoint/internal/game"
	"github.com/baileydunning/pinpoint/internal/leaderboard"
)

// Store is the persistence surface the server wires together: the player
// state KV contract plus the local leaderboard backend. SQLiteStore
// implements both; the Postgres store covers only the leaderboard half
// and is swapped in behind leaderboard.Client when a DSN is configured.
type Store interface {
	game.KV
	leaderboard.Store
}
