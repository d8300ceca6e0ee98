// Package game generates puzzles and tracks the player's daily history.
// Daily puzzles are derived from the calendar date alone so independently
// built clients agree on the point without any coordination.
package game

import (
	"context"
	"math/rand/v2"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
	"github.com/baileydunning/pinpoint/internal/rng"
)

// Mode fixes the latitude band candidates are drawn from. Both modes
// exclude extreme polar latitudes so attempts are spent where land is.
// Longitude is always uniform over [-180,180).
type Mode struct {
	Name   string
	MinLat float64
	MaxLat float64
}

var (
	ModeDaily    = Mode{Name: "daily", MinLat: -70, MaxLat: 70}
	ModePractice = Mode{Name: "practice", MinLat: -60, MaxLat: 70}
)

// Index is the land-containment lookup sampling validates candidates
// against, satisfied by geo.Index.
type Index interface {
	Contains(ctx context.Context, c pinpoint.Coordinate) (bool, error)
}

// Source yields uniform floats in [0,1). *rng.Sequence satisfies it.
type Source interface {
	Next() float64
}

// Entropy adapts the process RNG to Source for practice sampling.
type Entropy struct{}

func (Entropy) Next() float64 { return rand.Float64() }

const (
	maxAttempts = 1000

	// subSeedStep spaces the per-attempt seeds of a seeded draw. Part of
	// the cross-client contract: attempt i always derives from
	// seed + i*subSeedStep, never from a shared advancing stream.
	subSeedStep = 1000
)

// fallbackCoordinate is returned when every attempt misses land, so
// generation is total. Central Paris.
var fallbackCoordinate = pinpoint.Coordinate{Lat: 48.8566, Lng: 2.3522}

// SampleSeeded draws the deterministic point for seed. Each attempt runs
// a fresh sequence from its own sub-seed and draws latitude then
// longitude; the first candidate the index confirms as land wins.
// Containment errors propagate, exhaustion does not.
func SampleSeeded(ctx context.Context, index Index, seed uint32, mode Mode) (pinpoint.Coordinate, error) {
	for i := uint32(0); i < maxAttempts; i++ {
		c := draw(rng.New(seed+i*subSeedStep), mode)
		ok, err := index.Contains(ctx, c)
		if err != nil {
			return pinpoint.Coordinate{}, err
		}
		if ok {
			return c, nil
		}
	}
	return fallbackCoordinate, nil
}

// Sample draws a point from a single advancing source. Used for practice
// puzzles, where reproducibility across clients does not matter.
func Sample(ctx context.Context, index Index, src Source, mode Mode) (pinpoint.Coordinate, error) {
	for i := 0; i < maxAttempts; i++ {
		c := draw(src, mode)
		ok, err := index.Contains(ctx, c)
		if err != nil {
			return pinpoint.Coordinate{}, err
		}
		if ok {
			return c, nil
		}
	}
	return fallbackCoordinate, nil
}

func draw(src Source, mode Mode) pinpoint.Coordinate {
	lat := mode.MinLat + src.Next()*(mode.MaxLat-mode.MinLat)
	lng := -180 + src.Next()*360
	return pinpoint.Coordinate{Lat: lat, Lng: lng}
}
