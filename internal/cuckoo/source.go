package cuckoo

import "math/rand"

// Source supplies the randomness used by the engine. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal value.
	NormFloat64() float64
}

// NewSource returns a seeded source for reproducible runs.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
