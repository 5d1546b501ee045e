package gacha

import "errors"

var ErrEmptyPool = errors.New("weighted pool is empty")

// PickIndex selects an index with probability weights[i] / sum(weights).
//
// A value r is drawn uniformly from [0, total) and weights are subtracted in
// order until r drops to 0 or below. When rounding leaves r slightly above
// zero after the last weight, the last index is returned.
func PickIndex(weights []float64, rng RandomSource) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyPool
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// WeightedRandom picks one entry from pool, weighting each by weight(entry).
func WeightedRandom[T any](pool []T, weight func(T) float64, rng RandomSource) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, ErrEmptyPool
	}
	ws := make([]float64, len(pool))
	for i, e := range pool {
		ws[i] = weight(e)
	}
	i, err := PickIndex(ws, rng)
	if err != nil {
		return zero, err
	}
	return pool[i], nil
}
