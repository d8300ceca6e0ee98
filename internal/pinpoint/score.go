package pinpoint

import "math"

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates,
// computed with the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	const rad = math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * rad
	dLng := (b.Lng - a.Lng) * rad

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(a.Lat*rad)*math.Cos(b.Lat*rad)*sinLng*sinLng
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Tier classifies a guess by how close it landed. Lower values are better;
// the ordering is part of the contract, the exact cutoffs are not.
type Tier int

const (
	TierExcellent Tier = iota
	TierGood
	TierFair
	TierFar
)

// Cutoffs are upper bounds in km, checked in order. Every non-negative
// distance maps to exactly one tier.
var tierSteps = []struct {
	upTo  float64
	tier  Tier
	label string
}{
	{100, TierExcellent, "Incredible!"},
	{500, TierGood, "Close!"},
	{2000, TierFair, "Not bad"},
	{math.Inf(1), TierFar, "Way off"},
}

// TierOf maps a distance to its accuracy tier.
func TierOf(distanceKm float64) Tier {
	for _, s := range tierSteps {
		if distanceKm < s.upTo {
			return s.tier
		}
	}
	return TierFar
}

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierFair:
		return "fair"
	default:
		return "far"
	}
}

// Label returns the human-readable caption shown for the tier.
func (t Tier) Label() string {
	for _, s := range tierSteps {
		if s.tier == t {
			return s.label
		}
	}
	return tierSteps[len(tierSteps)-1].label
}
