// Package testutil provides deterministic random feature generation for
// tests and benchmarks.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/maxvk79/OpenMS/feature"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64Between returns a pseudo-random number in [lo, hi).
func (r *RNG) Float64Between(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Float64()*(hi-lo)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Feature generates a random feature with rt in [0, rtMax), mz in
// [0, mzMax), intensity in [1, 1000) and charge in [1, 5).
func (r *RNG) Feature(rtMax, mzMax float64) *feature.Feature {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.featureLocked(rtMax, mzMax)
}

// Features generates n random features.
func (r *RNG) Features(n int, rtMax, mzMax float64) []*feature.Feature {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*feature.Feature, n)
	for i := range out {
		out[i] = r.featureLocked(rtMax, mzMax)
	}
	return out
}

// Maps generates numMaps feature maps with perMap random features each.
func (r *RNG) Maps(numMaps, perMap int, rtMax, mzMax float64) [][]*feature.Feature {
	r.mu.Lock()
	defer r.mu.Unlock()

	maps := make([][]*feature.Feature, numMaps)
	for i := range maps {
		m := make([]*feature.Feature, perMap)
		for j := range m {
			m[j] = r.featureLocked(rtMax, mzMax)
		}
		maps[i] = m
	}
	return maps
}

// featureLocked is the internal implementation (caller must hold lock).
func (r *RNG) featureLocked(rtMax, mzMax float64) *feature.Feature {
	return feature.New(
		r.rand.Float64()*rtMax,
		r.rand.Float64()*mzMax,
		1+r.rand.Float32()*999,
		1+r.rand.Intn(4),
	)
}
