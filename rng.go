package sakura

import (
	"fmt"
	"math/rand/v2"
)

// Range is a general-purpose min/max band. Every randomized tuning constant in
// Config is a Range.
type Range struct {
	Min, Max float64
}

// Random returns a uniformly distributed value in [Min, Max].
// An inverted range is a programmer error: it panics in debug mode and
// otherwise yields a value between the two bounds.
func (r Range) Random() float64 {
	return randRange(r.Min, r.Max)
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// randRange returns a uniform random value between min and max.
func randRange(min, max float64) float64 {
	if min == max {
		return min
	}
	if min > max && globalDebug {
		panic(fmt.Sprintf("sakura debug: inverted random range [%v, %v]", min, max))
	}
	return min + rand.Float64()*(max-min)
}

// randIndex returns a uniform index in [0, n). n must be positive.
func randIndex(n int) int {
	return rand.IntN(n)
}

// chance reports true with probability p.
func chance(p float64) bool {
	return rand.Float64() < p
}
