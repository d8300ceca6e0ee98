// Package geocode resolves coordinates to place metadata. It asks a
// Nominatim-style remote service for the detailed answer and falls back to
// the local country index when the remote is unavailable, so Resolve never
// fails past its own boundary.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// CountryIndex is the local fallback lookup, satisfied by geo.Index.
type CountryIndex interface {
	CountryAt(ctx context.Context, c pinpoint.Coordinate) (string, error)
}

// Resolver performs throttled remote reverse geocoding. All callers in
// the process serialize through one reservation slot, so remote requests
// are spaced at least interval apart no matter how many goroutines
// resolve concurrently.
type Resolver struct {
	baseURL   string
	userAgent string
	interval  time.Duration
	client    *http.Client
	index     CountryIndex
	logger    *slog.Logger

	mu   sync.Mutex
	next time.Time
}

func New(baseURL, userAgent string, interval time.Duration, index CountryIndex, logger *slog.Logger) *Resolver {
	return &Resolver{
		baseURL:   baseURL,
		userAgent: userAgent,
		interval:  interval,
		client:    &http.Client{Timeout: 10 * time.Second},
		index:     index,
		logger:    logger,
	}
}

// Resolve returns place metadata for the coordinate. Remote failures of
// any kind degrade to a country-only result from the local index; if even
// containment misses, the result is the unknown-location placeholder.
func (r *Resolver) Resolve(ctx context.Context, c pinpoint.Coordinate) pinpoint.ResolvedLocation {
	loc, err := r.remote(ctx, c)
	if err == nil {
		return loc
	}

	r.logger.Warn("reverse geocode degraded to local lookup",
		"lat", c.Lat, "lng", c.Lng, "error", err)

	country, cerr := r.index.CountryAt(ctx, c)
	if cerr != nil {
		country = ""
	}
	return pinpoint.CountryOnly(country)
}

func (r *Resolver) remote(ctx context.Context, c pinpoint.Coordinate) (pinpoint.ResolvedLocation, error) {
	var zero pinpoint.ResolvedLocation

	if err := r.reserve(ctx); err != nil {
		return zero, err
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lng, 'f', -1, 64))
	q.Set("zoom", "14")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("requesting reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("reverse geocode status %s", resp.Status)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return zero, fmt.Errorf("decoding reverse geocode response: %w", err)
	}

	a := payload.Address
	loc := pinpoint.NewResolvedLocation(
		a.Country,
		firstNonEmpty(a.State, a.Province, a.Region),
		firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Municipality),
		firstNonEmpty(a.Tourism, a.Attraction, a.Historic),
		firstNonEmpty(a.Neighbourhood, a.Suburb, a.Quarter),
	)
	if loc.DisplayName == pinpoint.UnknownLocation {
		return zero, fmt.Errorf("reverse geocode returned no usable address")
	}
	return loc, nil
}

// reserve claims the next request slot and sleeps until it opens. The
// slot advances by interval per caller, which is what spaces requests
// process-wide instead of per goroutine.
func (r *Resolver) reserve(ctx context.Context) error {
	now := time.Now()

	r.mu.Lock()
	at := r.next
	if at.Before(now) {
		at = now
	}
	r.next = at.Add(r.interval)
	r.mu.Unlock()

	wait := at.Sub(now)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type reverseResponse struct {
	Address reverseAddress `json:"address"`
}

// reverseAddress carries every key the remote service may use for each
// conceptual field; the first populated one wins.
type reverseAddress struct {
	Country string `json:"country"`

	State    string `json:"state"`
	Province string `json:"province"`
	Region   string `json:"region"`

	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`

	Tourism    string `json:"tourism"`
	Attraction string `json:"attraction"`
	Historic   string `json:"historic"`

	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	Quarter       string `json:"quarter"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
