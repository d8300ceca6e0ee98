package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

func TestNewRowID(t *testing.T) {
	tests := []struct {
		date   string
		player string
		km     float64
		want   string
	}{
		{"2024-06-01", "Ada", 123.45, "2024-06-01-Ada-123.45"},
		{"2024-06-01", "Ada", 50, "2024-06-01-Ada-50"},
		{"2024-06-01", "Ada", 0.125, "2024-06-01-Ada-0.125"},
	}
	for _, tt := range tests {
		if got := NewRowID(tt.date, tt.player, tt.km); got != tt.want {
			t.Errorf("NewRowID(%q, %q, %v) = %q, want %q", tt.date, tt.player, tt.km, got, tt.want)
		}
	}
}

func TestFromDailyResult(t *testing.T) {
	r := pinpoint.DailyResult{
		Date:        "2024-06-01",
		PlayerName:  "Ada",
		DistanceKm:  321.5,
		ZoomLevel:   4,
		Guess:       pinpoint.Coordinate{Lat: 1, Lng: 2},
		Actual:      pinpoint.Coordinate{Lat: 3, Lng: 4},
		ActualPlace: pinpoint.NewResolvedLocation("France", "Brittany", "", "", ""),
		GuessPlace:  pinpoint.NewResolvedLocation("Spain", "Galicia", "Vigo", "", ""),
	}

	row := FromDailyResult(r)
	if row.ID != "2024-06-01-Ada-321.5" {
		t.Fatalf("id = %q", row.ID)
	}
	if row.Country != "France" || row.ActualState != "Brittany" {
		t.Fatalf("actual place fields = %+v", row)
	}
	if row.GuessCountry != "Spain" || row.GuessCity != "Vigo" || row.GuessDisplayName != "Vigo, Galicia" {
		t.Fatalf("guess place fields = %+v", row)
	}
	if row.GuessLat != 1 || row.ActualLng != 4 {
		t.Fatalf("coordinates = %+v", row)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-06-01", "2024-06-01"},
		{" 2024-06-01 ", "2024-06-01"},
		{"06-15-2024", "2024-06-15"},
		{"2024-06-01T15:04:05Z", "2024-06-01"},
		{"2024/06/01", "2024-06-01"},
		{"06/15/2024", "2024-06-15"},
		{"June 1, 2024", "2024-06-01"},
		{"Jun 1, 2024", "2024-06-01"},
		{"yesterday-ish", "yesterday-ish"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	rows := []Row{
		{ID: "a", Date: "2024-06-01", PlayerName: "Ada", DistanceKm: 900},
		{ID: "b", Date: "06-01-2024", PlayerName: "Bey", DistanceKm: 120},
		{ID: "c", Date: "2024-06-02", PlayerName: "Cal", DistanceKm: 40},
		{ID: "d", Date: "2024-06-01", PlayerName: "Dee", DistanceKm: 120},
	}

	byDay := GroupByDay(rows)
	if len(byDay) != 2 {
		t.Fatalf("days = %d, want 2", len(byDay))
	}

	day := byDay["2024-06-01"]
	if len(day) != 3 {
		t.Fatalf("rows on 2024-06-01 = %d, want 3 (normalized forms merged)", len(day))
	}
	// Ascending by distance, the tie keeps submission order.
	if day[0].ID != "b" || day[1].ID != "d" || day[2].ID != "a" {
		t.Fatalf("order = %s %s %s", day[0].ID, day[1].ID, day[2].ID)
	}
	if len(byDay["2024-06-02"]) != 1 {
		t.Fatalf("rows on 2024-06-02 = %d", len(byDay["2024-06-02"]))
	}
}

type memStore struct {
	rows    []Row
	listErr error
}

func (s *memStore) Create(_ context.Context, row Row) error {
	for _, r := range s.rows {
		if r.ID == row.ID {
			return nil
		}
	}
	s.rows = append(s.rows, row)
	return nil
}

func (s *memStore) List(_ context.Context) ([]Row, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rows, nil
}

// blockedStore hangs until the call's context expires.
type blockedStore struct{}

func (blockedStore) Create(ctx context.Context, _ Row) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockedStore) List(ctx context.Context) ([]Row, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestClientSubmitAndDay(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := NewClient(store)

	rows := []Row{
		{ID: "a", Date: "2024-06-01", DistanceKm: 500},
		{ID: "b", Date: "2024-06-01", DistanceKm: 100},
		{ID: "c", Date: "2024-06-02", DistanceKm: 50},
	}
	for _, r := range rows {
		if err := c.Submit(ctx, r); err != nil {
			t.Fatalf("submit %s: %v", r.ID, err)
		}
	}
	// Duplicate id is silently idempotent.
	if err := c.Submit(ctx, rows[0]); err != nil {
		t.Fatalf("duplicate submit: %v", err)
	}
	if len(store.rows) != 3 {
		t.Fatalf("stored rows = %d, want 3", len(store.rows))
	}

	day, err := c.Day(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(day) != 2 || day[0].ID != "b" || day[1].ID != "a" {
		t.Fatalf("day rows = %+v", day)
	}

	empty, err := c.Day(ctx, "1999-01-01")
	if err != nil {
		t.Fatalf("Day empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty day rows = %+v", empty)
	}
}

func TestClientMapsFailuresToUnavailable(t *testing.T) {
	ctx := context.Background()

	broken := &memStore{listErr: errors.New("connection refused")}
	c := NewClient(broken)
	if _, err := c.Day(ctx, "2024-06-01"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("list err = %v, want ErrUnavailable", err)
	}

	c = NewClient(blockedStore{})
	c.timeout = 20 * time.Millisecond
	if err := c.Submit(ctx, Row{ID: "a"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("timed-out submit err = %v, want ErrUnavailable", err)
	}
	if _, err := c.Day(ctx, "2024-06-01"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("timed-out list err = %v, want ErrUnavailable", err)
	}
}
