// Package rng implements the deterministic pseudo-random sequence behind
// daily puzzles. The exact bit patterns are a wire contract: independently
// built clients derive the same daily coordinate only as long as the mix
// constants and the date hash below never change.
package rng

// Sequence is a mulberry32 generator. A sequence is restarted by
// constructing a new one with the same seed, never by rewinding.
type Sequence struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *Sequence {
	return &Sequence{state: seed}
}

// Next returns the next value in [0,1). The mix is mulberry32 with its
// published constants: increment 0x6D2B79F5, xor-shifts 15/7/14,
// multiplicands t|1 and t|61, all in wrapping 32-bit arithmetic.
func (s *Sequence) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / (1 << 32)
}

// DateSeed maps an ISO date string (YYYY-MM-DD) to a seed: a rolling 31x
// hash over the raw bytes with signed 32-bit wraparound, then the absolute
// value. Part of the same wire contract as Next.
func DateSeed(date string) uint32 {
	var h int32
	for i := 0; i < len(date); i++ {
		h = h*31 + int32(date[i])
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}
