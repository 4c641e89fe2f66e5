package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Int63n  func(n int64) int64
	Bool    func() bool
}

func NewRandomizer() Randomizer {
	return newRandomizer(time.Now().Unix())
}

// NewSeededRandomizer gives reproducible sequences for tests that
// compare against a reference computation.
func NewSeededRandomizer(seed int64) Randomizer {
	return newRandomizer(seed)
}

func newRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Int63n:  random.Int63n,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
	}
}
