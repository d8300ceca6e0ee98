// Package leaderboard holds the shared daily ranking. Rows live in an
// append-only store keyed by a deterministic id, so resubmitting an
// identical result is a no-op rather than a duplicate.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// ErrUnavailable reports that the leaderboard backend could not serve a
// request in time. Callers keep their local history regardless.
var ErrUnavailable = errors.New("leaderboard unavailable")

// Row is one submitted daily result. Resolved place fields for both ends
// of the guess ride along for display.
type Row struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	PlayerName        string  `json:"playerName"`
	DistanceKm        float64 `json:"distanceKm"`
	ZoomLevel         int     `json:"zoomLevel"`
	GuessLat          float64 `json:"guessLat"`
	GuessLng          float64 `json:"guessLng"`
	ActualLat         float64 `json:"actualLat"`
	ActualLng         float64 `json:"actualLng"`
	Country           string  `json:"country,omitempty"`
	ActualDisplayName string  `json:"actualDisplayName,omitempty"`
	ActualState       string  `json:"actualState,omitempty"`
	GuessCountry      string  `json:"guessCountry,omitempty"`
	GuessState        string  `json:"guessState,omitempty"`
	GuessCity         string  `json:"guessCity,omitempty"`
	GuessDisplayName  string  `json:"guessDisplayName,omitempty"`
}

// Store is the persistence contract. Create must treat an existing id as
// success, not a conflict.
type Store interface {
	Create(ctx context.Context, row Row) error
	List(ctx context.Context) ([]Row, error)
}

// NewRowID derives the canonical row id from the fields that identify a
// result. Identical results collide on purpose.
func NewRowID(date, playerName string, distanceKm float64) string {
	return date + "-" + playerName + "-" + strconv.FormatFloat(distanceKm, 'f', -1, 64)
}

// FromDailyResult flattens a completed daily round into its row.
func FromDailyResult(r pinpoint.DailyResult) Row {
	return Row{
		ID:                NewRowID(r.Date, r.PlayerName, r.DistanceKm),
		Date:              r.Date,
		PlayerName:        r.PlayerName,
		DistanceKm:        r.DistanceKm,
		ZoomLevel:         r.ZoomLevel,
		GuessLat:          r.Guess.Lat,
		GuessLng:          r.Guess.Lng,
		ActualLat:         r.Actual.Lat,
		ActualLng:         r.Actual.Lng,
		Country:           r.ActualPlace.Country,
		ActualDisplayName: r.ActualPlace.DisplayName,
		ActualState:       r.ActualPlace.State,
		GuessCountry:      r.GuessPlace.Country,
		GuessState:        r.GuessPlace.State,
		GuessCity:         r.GuessPlace.City,
		GuessDisplayName:  r.GuessPlace.DisplayName,
	}
}

// Layouts tried after the fast paths, in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate coerces stored date strings to ISO YYYY-MM-DD. The
// legacy MM-DD-YYYY form and a few known layouts are rewritten
// best-effort; anything unparseable comes back as given so grouping
// still works on equal raw strings.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("01-02-2006", s); err == nil {
		return t.Format("2006-01-02")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// GroupByDay buckets rows by normalized date. Each day is sorted
// ascending by distance with ties kept in input order.
func GroupByDay(rows []Row) map[string][]Row {
	byDay := map[string][]Row{}
	for _, r := range rows {
		day := NormalizeDate(r.Date)
		byDay[day] = append(byDay[day], r)
	}
	for _, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool { return day[i].DistanceKm < day[j].DistanceKm })
	}
	return byDay
}

// Client fronts a Store with an execution timeout so a stuck backend
// fails explicitly instead of hanging its callers.
type Client struct {
	store   Store
	timeout time.Duration
}

func NewClient(store Store) *Client {
	return &Client{store: store, timeout: 10 * time.Second}
}

// Submit writes one row. Any backend failure maps to ErrUnavailable.
func (c *Client) Submit(ctx context.Context, row Row) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.store.Create(ctx, row); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Day returns the ranking for one calendar day, already sorted.
func (c *Client) Day(ctx context.Context, date string) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	rows, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return GroupByDay(rows)[NormalizeDate(date)], nil
}
