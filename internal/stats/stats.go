// Package stats derives aggregate player statistics from the recorded
// round history. The snapshot is never a source of truth: recomputing
// over the same history always reproduces it exactly.
package stats

import (
	"math"
	"sort"

	"github.com/baileydunning/pinpoint/internal/pinpoint"
)

// Recompute builds the stats snapshot for history. Pure function: no
// held state, input never mutated.
func Recompute(history []pinpoint.GameResult) pinpoint.PlayerStats {
	s := pinpoint.PlayerStats{
		TotalGames: len(history),
		Countries:  map[string]pinpoint.CountryRollup{},
		Continents: map[string]int{},
	}
	if len(history) == 0 {
		return s
	}

	distances := make([]float64, 0, len(history))
	zoomSum := 0
	for _, r := range history {
		distances = append(distances, r.DistanceKm)
		zoomSum += r.ZoomLevel
		s.Continents[ContinentOf(r.Country)]++

		if r.Country == "" {
			continue
		}
		roll, ok := s.Countries[r.Country]
		if !ok || r.DistanceKm < roll.BestDistanceKm {
			roll.BestDistanceKm = r.DistanceKm
			roll.BestDistanceZoom = r.ZoomLevel
		}
		roll.Count++
		s.Countries[r.Country] = roll
	}

	sort.Float64s(distances)
	n := len(distances)
	if n%2 == 1 {
		s.MedianDistanceKm = distances[n/2]
	} else {
		s.MedianDistanceKm = (distances[n/2-1] + distances[n/2]) / 2
	}
	s.BestDistanceKm = distances[0]
	s.WorstDistanceKm = distances[n-1]
	s.AverageZoomLevel = float64(zoomSum) / float64(n)
	return s
}

// Percent converts part of total to the nearest whole percentage.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
