// Package geo loads the world country topology once per process and
// answers offline containment and country-lookup queries against it.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// ErrGeometryUnavailable reports that the world topology could not be
// fetched. Callers must surface it: an unavailable index is not the same
// as "no land anywhere".
var ErrGeometryUnavailable = errors.New("world geometry unavailable")

// Index answers point queries against world country polygons. Geometry is
// fetched lazily on first use and cached for the process lifetime;
// concurrent first callers coalesce onto a single in-flight fetch.
type Index struct {
	url       string
	client    *http.Client
	logger    *slog.Logger
	retryBase time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	features []feature
	loaded   bool
}

func New(url string, client *http.Client, logger *slog.Logger) *Index {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Index{
		url:       url,
		client:    client,
		logger:    logger,
		retryBase: 500 * time.Millisecond,
	}
}

// Load fetches and decodes the topology unless it is already resident.
// Idempotent and concurrency-safe. A failed load is not cached: the next
// caller triggers a fresh fetch.
func (ix *Index) Load(ctx context.Context) error {
	if ix.Loaded() {
		return nil
	}

	_, err, _ := ix.group.Do("topology", func() (any, error) {
		if ix.Loaded() {
			return nil, nil
		}

		start := time.Now()
		feats, err := ix.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGeometryUnavailable, err)
		}

		ix.mu.Lock()
		ix.features = feats
		ix.loaded = true
		ix.mu.Unlock()

		ix.logger.Info("world geometry loaded",
			"countries", len(feats),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil
	})
	return err
}

// Loaded reports whether the geometry is resident.
func (ix *Index) Loaded() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.loaded
}

// Contains reports whether the coordinate lies inside any country polygon.
func (ix *Index) Contains(ctx context.Context, c pinpoint.Coordinate) (bool, error) {
	feats, err := ix.snapshot(ctx)
	if err != nil {
		return false, err
	}
	for i := range feats {
		if feats[i].contains(c.Lat, c.Lng) {
			return true, nil
		}
	}
	return false, nil
}

// CountryAt returns the display name of the country containing the
// coordinate, or "" when the point is in no country. Names come from the
// numeric-ID table, falling back to the name embedded in the topology.
func (ix *Index) CountryAt(ctx context.Context, c pinpoint.Coordinate) (string, error) {
	feats, err := ix.snapshot(ctx)
	if err != nil {
		return "", err
	}
	for i := range feats {
		if feats[i].contains(c.Lat, c.Lng) {
			if name, ok := countryNames[feats[i].id]; ok {
				return name, nil
			}
			return feats[i].name, nil
		}
	}
	return "", nil
}

func (ix *Index) snapshot(ctx context.Context) ([]feature, error) {
	if err := ix.Load(ctx); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.features, nil
}

func (ix *Index) fetch(ctx context.Context) ([]feature, error) {
	var feats []feature

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(ix.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ix.url, nil)
		if err != nil {
			return err
		}

		resp, err := ix.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("fetching topology: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("fetching topology: unexpected status %s", resp.Status))
		}

		feats, err = decodeTopology(resp.Body)
		if err != nil {
			return fmt.Errorf("decoding topology: %w", err)
		}
		return nil
	})
	return feats, err
}

// feature is one country: its id from the topology, the embedded name,
// and the decoded polygons.
type feature struct {
	id       string
	name     string
	polygons []polygon
}

func (f *feature) contains(lat, lng float64) bool {
	for i := range f.polygons {
		if f.polygons[i].contains(lat, lng) {
			return true
		}
	}
	return false
}

// polygon is one outer ring plus optional holes, with a bounding box used
// to skip the ray cast for far-away points.
type polygon struct {
	box   bbox
	rings [][]vertex
}

func (p *polygon) contains(lat, lng float64) bool {
	if !p.box.contains(lat, lng) {
		return false
	}
	if len(p.rings) == 0 || !pointInRing(p.rings[0], lat, lng) {
		return false
	}
	for _, hole := range p.rings[1:] {
		if pointInRing(hole, lat, lng) {
			return false
		}
	}
	return true
}

type vertex struct {
	lat, lng float64
}

type bbox struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

func (b *bbox) expand(lat, lng float64) {
	if lat < b.minLat {
		b.minLat = lat
	}
	if lat > b.maxLat {
		b.maxLat = lat
	}
	if lng < b.minLng {
		b.minLng = lng
	}
	if lng > b.maxLng {
		b.maxLng = lng
	}
}

func (b bbox) contains(lat, lng float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lng >= b.minLng && lng <= b.maxLng
}

// pointInRing is an even-odd ray cast: count how often a horizontal ray
// from the point crosses ring edges.
func pointInRing(ring []vertex, lat, lng float64) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		pi, pj := ring[i], ring[j]
		if (pi.lat > lat) != (pj.lat > lat) &&
			lng < (pj.lng-pi.lng)*(lat-pi.lat)/(pj.lat-pi.lat)+pi.lng {
			inside = !inside
		}
		j = i
	}
	return inside
}
