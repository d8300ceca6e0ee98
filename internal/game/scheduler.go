package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
	"github.com/baileydunning/pinpoint/internal/rng"
)

const dateLayout = "2006-01-02"

// Resolver annotates a coordinate with place metadata, satisfied by
// geocode.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, c pinpoint.Coordinate) pinpoint.ResolvedLocation
}

// Scheduler maps calendar dates to deterministic daily puzzles and
// answers played/streak/countdown queries over the persisted daily
// history. Played state is always derived from history plus the clock,
// never stored, so it resets itself at the date rollover.
type Scheduler struct {
	index    Index
	resolver Resolver
	history  *History
	logger   *slog.Logger

	// now is replaced in tests to pin the clock.
	now func() time.Time

	mu    sync.Mutex
	cache map[string]pinpoint.Puzzle
}

func NewScheduler(index Index, resolver Resolver, history *History, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		index:    index,
		resolver: resolver,
		history:  history,
		logger:   logger,
		now:      time.Now,
		cache:    map[string]pinpoint.Puzzle{},
	}
}

// Today returns the local calendar date.
func (s *Scheduler) Today() string {
	return s.now().Format(dateLayout)
}

// PuzzleFor returns the puzzle for date. The date seeds the deterministic
// sampler, so every client derives the same point from the date alone;
// the per-process cache is an optimization, recomputing is always safe.
func (s *Scheduler) PuzzleFor(ctx context.Context, date string) (pinpoint.Puzzle, error) {
	s.mu.Lock()
	if p, ok := s.cache[date]; ok {
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	coord, err := SampleSeeded(ctx, s.index, rng.DateSeed(date), ModeDaily)
	if err != nil {
		return pinpoint.Puzzle{}, fmt.Errorf("sampling daily point: %w", err)
	}
	loc := s.resolver.Resolve(ctx, coord)

	id := "daily-" + date
	p := pinpoint.Puzzle{
		ID: id,
		Location: pinpoint.PuzzleLocation{
			ID:       id,
			Lat:      coord.Lat,
			Lng:      coord.Lng,
			Country:  loc.Country,
			City:     loc.City,
			State:    loc.State,
			Landmark: loc.Landmark,
		},
	}

	s.mu.Lock()
	s.cache[date] = p
	s.mu.Unlock()
	return p, nil
}

// HasPlayed reports whether a daily result is recorded for date.
func (s *Scheduler) HasPlayed(ctx context.Context, date string) (bool, error) {
	results, err := s.history.DailyResults(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range results {
		if r.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// RecordResult stores a completed daily round, replacing any earlier
// result for the same date.
func (s *Scheduler) RecordResult(ctx context.Context, r pinpoint.DailyResult) error {
	return s.history.UpsertDailyResult(ctx, r)
}

// Streak reports the current and best runs of consecutive played days.
// The current streak anchors on today, or on yesterday when today is
// still unplayed; any missing day breaks it.
func (s *Scheduler) Streak(ctx context.Context) (current, best int, err error) {
	results, err := s.history.DailyResults(ctx)
	if err != nil {
		return 0, 0, err
	}

	played := make(map[string]bool, len(results))
	days := make([]time.Time, 0, len(results))
	for _, r := range results {
		d, perr := time.ParseInLocation(dateLayout, r.Date, time.Local)
		if perr != nil {
			s.logger.Warn("skipping result with unparseable date", "date", r.Date)
			continue
		}
		if !played[r.Date] {
			played[r.Date] = true
			days = append(days, d)
		}
	}

	start := truncateToDay(s.now())
	if !played[start.Format(dateLayout)] {
		start = start.AddDate(0, 0, -1)
	}
	for d := start; played[d.Format(dateLayout)]; d = d.AddDate(0, 0, -1) {
		current++
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return current, best, nil
}

// TimeUntilNext reports how long until the next local midnight, when the
// daily puzzle rolls over.
func (s *Scheduler) TimeUntilNext() time.Duration {
	now := s.now()
	return truncateToDay(now).AddDate(0, 0, 1).Sub(now)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
