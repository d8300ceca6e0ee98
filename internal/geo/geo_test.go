package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTopology is a tiny quantized world: "France" (a 10x10 square at the
// origin with a hole in the middle), "Squareland" (a multipolygon square
// at 20..25), and "Rectanglia" (a ring stitched from two arcs, one
// traversed in reverse).
const testTopology = `{
  "type": "Topology",
  "transform": {"scale": [0.5, 0.5], "translate": [0, 0]},
  "objects": {
    "countries": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": "250", "arcs": [[0], [4]], "properties": {"name": "République française"}},
        {"type": "MultiPolygon", "id": "900", "arcs": [[[1]]], "properties": {"name": "Squareland"}},
        {"type": "Polygon", "id": "901", "arcs": [[2, -4]], "properties": {"name": "Rectanglia"}}
      ]
    }
  },
  "arcs": [
    [[0, 0], [20, 0], [0, 20], [-20, 0], [0, -20]],
    [[40, 40], [10, 0], [0, 10], [-10, 0], [0, -10]],
    [[80, 0], [20, 0], [0, 20]],
    [[80, 0], [0, 20], [20, 0]],
    [[8, 8], [4, 0], [0, 4], [-4, 0], [0, -4]]
  ]
}`

func testIndex(t *testing.T) *Index {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testTopology))
	}))
	t.Cleanup(srv.Close)

	ix := New(srv.URL, srv.Client(), discardLogger())
	ix.retryBase = time.Millisecond
	return ix
}

func TestContains(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		coord pinpoint.Coordinate
		want  bool
	}{
		{"inside square", pinpoint.Coordinate{Lat: 2, Lng: 2}, true},
		{"inside hole", pinpoint.Coordinate{Lat: 5, Lng: 5}, false},
		{"inside multipolygon", pinpoint.Coordinate{Lat: 22, Lng: 22}, true},
		{"inside stitched ring", pinpoint.Coordinate{Lat: 5, Lng: 45}, true},
		{"open water", pinpoint.Coordinate{Lat: -5, Lng: -5}, false},
		{"far outside every bbox", pinpoint.Coordinate{Lat: 60, Lng: -150}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ix.Contains(ctx, tc.coord)
			if err != nil {
				t.Fatalf("Contains: %v", err)
			}
			if got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.coord, got, tc.want)
			}
		})
	}
}

func TestCountryAt(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		coord pinpoint.Coordinate
		want  string
	}{
		// Id 250 is in the name table; the table wins over the
		// embedded properties name.
		{"name table", pinpoint.Coordinate{Lat: 2, Lng: 2}, "France"},
		{"properties fallback", pinpoint.Coordinate{Lat: 22, Lng: 22}, "Squareland"},
		{"reversed arc ring", pinpoint.Coordinate{Lat: 5, Lng: 45}, "Rectanglia"},
		{"no country", pinpoint.Coordinate{Lat: -5, Lng: -5}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ix.CountryAt(ctx, tc.coord)
			if err != nil {
				t.Fatalf("CountryAt: %v", err)
			}
			if got != tc.want {
				t.Errorf("CountryAt(%v) = %q, want %q", tc.coord, got, tc.want)
			}
		})
	}
}

func TestLoadCoalescesConcurrentCallers(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		time.Sleep(30 * time.Millisecond)
		w.Write([]byte(testTopology))
	}))
	defer srv.Close()

	ix := New(srv.URL, srv.Client(), discardLogger())
	ix.retryBase = time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ix.Contains(context.Background(), pinpoint.Coordinate{Lat: 2, Lng: 2}); err != nil {
				t.Errorf("Contains: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := fetches.Load(); n != 1 {
		t.Errorf("expected exactly 1 fetch, got %d", n)
	}
}

func TestLoadFailureSurfaced(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ix := New(srv.URL, srv.Client(), discardLogger())
	ix.retryBase = time.Millisecond

	err := ix.Load(context.Background())
	if !errors.Is(err, ErrGeometryUnavailable) {
		t.Fatalf("Load error = %v, want ErrGeometryUnavailable", err)
	}
	if _, err := ix.Contains(context.Background(), pinpoint.Coordinate{}); !errors.Is(err, ErrGeometryUnavailable) {
		t.Fatalf("Contains error = %v, want ErrGeometryUnavailable", err)
	}
	// Initial attempt plus two retries, twice.
	if n := fetches.Load(); n != 6 {
		t.Errorf("expected 6 fetch attempts, got %d", n)
	}
}

func TestLoadRecoversAfterFailure(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(testTopology))
	}))
	defer srv.Close()

	ix := New(srv.URL, srv.Client(), discardLogger())
	ix.retryBase = time.Millisecond

	if err := ix.Load(context.Background()); !errors.Is(err, ErrGeometryUnavailable) {
		t.Fatalf("first Load error = %v, want ErrGeometryUnavailable", err)
	}
	if ix.Loaded() {
		t.Fatal("index reports loaded after failed load")
	}

	healthy.Store(true)
	if err := ix.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !ix.Loaded() {
		t.Fatal("index not loaded after successful load")
	}
}

func TestDecodeUnquantizedTopology(t *testing.T) {
	// No transform: arcs carry absolute positions.
	const raw = `{
	  "type": "Topology",
	  "objects": {
	    "countries": {
	      "type": "GeometryCollection",
	      "geometries": [
	        {"type": "Polygon", "id": "900", "arcs": [[0]], "properties": {"name": "Flatland"}}
	      ]
	    }
	  },
	  "arcs": [
	    [[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]]
	  ]
	}`
	feats, err := decodeTopology(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decodeTopology: %v", err)
	}
	if len(feats) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(feats))
	}
	if !feats[0].contains(5, 5) {
		t.Error("point (5,5) not contained in Flatland")
	}
	if feats[0].contains(5, 15) {
		t.Error("point (5,15) wrongly contained in Flatland")
	}
}

func TestDecodeRejectsMissingCountries(t *testing.T) {
	const raw = `{"type": "Topology", "objects": {}, "arcs": []}`
	if _, err := decodeTopology(strings.NewReader(raw)); err == nil {
		t.Fatal("expected an error for a topology without a countries object")
	}
}
