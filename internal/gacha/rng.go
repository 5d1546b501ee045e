package gacha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform floats in [0, 1). Every source in this package
// is safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

// cryptoSource reads 53 bits from crypto/rand per call.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// DefaultRNG is the source for live package opens.
func DefaultRNG() RandomSource { return cryptoSource{} }

// pcgSource is a reproducible PCG stream behind a mutex.
type pcgSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *pcgSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// NewSeededRNG returns a reproducible source for simulations and tests.
// Concurrent callers share one stream, so the sequence is only reproducible
// from a single goroutine.
func NewSeededRNG(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}

// RNGFor picks the seeded source for seed, or DefaultRNG when seed is 0.
func RNGFor(seed uint64) RandomSource {
	if seed == 0 {
		return DefaultRNG()
	}
	return NewSeededRNG(seed)
}
