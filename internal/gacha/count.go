package gacha

import "math"

// CountRange is an inclusive integer range.
type CountRange struct {
	Min int
	Max int
}

// RandomCount returns a uniform integer in [r.Min, r.Max].
// A reversed range (Min > Max) yields Min.
func RandomCount(r CountRange, rng RandomSource) int {
	if r.Max <= r.Min {
		return r.Min
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	span := float64(r.Max-r.Min) + 1
	off := int(math.Floor(rng.Float64() * span))
	// a source returning exactly 1.0 must not escape the range
	if off > r.Max-r.Min {
		off = r.Max - r.Min
	}
	return r.Min + off
}
