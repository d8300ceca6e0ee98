package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// ErrNotFound reports that a removal target does not exist.
var ErrNotFound = errors.New("not found")

// KV is the persisted key/value contract player state lives behind,
// satisfied by the server's SQLite store. Values are JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

const (
	keyPlayerName     = "playerName"
	keyGameResults    = "gameResults"
	keyDailyResults   = "dailyResults"
	keySavedLocations = "savedLocations"
)

const (
	maxGameResults    = 100
	maxDailyResults   = 30
	maxSavedLocations = 50
)

// History is the typed view over the player's persisted state. A corrupt
// value under any key is treated as empty and logged, never surfaced:
// unreadable history must not brick the game.
type History struct {
	kv     KV
	logger *slog.Logger
}

func NewHistory(kv KV, logger *slog.Logger) *History {
	return &History{kv: kv, logger: logger}
}

func (h *History) PlayerName(ctx context.Context) (string, error) {
	return load[string](ctx, h, keyPlayerName)
}

func (h *History) SetPlayerName(ctx context.Context, name string) error {
	return h.store(ctx, keyPlayerName, name)
}

func (h *History) GameResults(ctx context.Context) ([]pinpoint.GameResult, error) {
	return load[[]pinpoint.GameResult](ctx, h, keyGameResults)
}

// AppendGameResult adds one round to the rolling history. Past the cap
// the oldest entries fall off the head.
func (h *History) AppendGameResult(ctx context.Context, r pinpoint.GameResult) error {
	results, err := h.GameResults(ctx)
	if err != nil {
		return err
	}
	results = append(results, r)
	if len(results) > maxGameResults {
		results = results[len(results)-maxGameResults:]
	}
	return h.store(ctx, keyGameResults, results)
}

func (h *History) DailyResults(ctx context.Context) ([]pinpoint.DailyResult, error) {
	return load[[]pinpoint.DailyResult](ctx, h, keyDailyResults)
}

// UpsertDailyResult replaces any result recorded for the same date, keeps
// the list sorted newest first and retains at most 30 days.
func (h *History) UpsertDailyResult(ctx context.Context, r pinpoint.DailyResult) error {
	results, err := h.DailyResults(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range results {
		if results[i].Date == r.Date {
			results[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Date > results[j].Date })
	if len(results) > maxDailyResults {
		results = results[:maxDailyResults]
	}
	return h.store(ctx, keyDailyResults, results)
}

func (h *History) SavedLocations(ctx context.Context) ([]pinpoint.SavedLocation, error) {
	return load[[]pinpoint.SavedLocation](ctx, h, keySavedLocations)
}

// AddSavedLocation appends a bookmark. Past the cap the oldest fall off.
func (h *History) AddSavedLocation(ctx context.Context, loc pinpoint.SavedLocation) error {
	locs, err := h.SavedLocations(ctx)
	if err != nil {
		return err
	}
	locs = append(locs, loc)
	if len(locs) > maxSavedLocations {
		locs = locs[len(locs)-maxSavedLocations:]
	}
	return h.store(ctx, keySavedLocations, locs)
}

func (h *History) RemoveSavedLocation(ctx context.Context, id string) error {
	locs, err := h.SavedLocations(ctx)
	if err != nil {
		return err
	}
	kept := locs[:0]
	for _, l := range locs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(locs) {
		return fmt.Errorf("saved location %s: %w", id, ErrNotFound)
	}
	return h.store(ctx, keySavedLocations, kept)
}

// load decodes the JSON under key. A missing key or a corrupt value
// yields the zero value, so no partial decode ever leaks out.
func load[T any](ctx context.Context, h *History, key string) (T, error) {
	var zero T
	raw, ok, err := h.kv.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		h.logger.Warn("discarding corrupt state", "key", key, "error", err)
		return zero, nil
	}
	return v, nil
}

func (h *History) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := h.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
