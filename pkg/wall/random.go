package wall

import "math/rand/v2"

// Source is the random primitive behind every draw. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// Shuffle permutes n elements by calling swap.
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a PCG generator seeded with seed. The same seed yields
// the same sequence of layouts.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func newRuntimeSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Range is the half-open interval [Min, Max).
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Contains reports whether v lies in [Min, Max]. The upper bound is
// inclusive so a degenerate range contains its only value.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Uniform draws one number uniformly from r.
func Uniform(src Source, r Range) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// permutation returns 0..n-1 in an order chosen by src.
func permutation(src Source, n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	src.Shuffle(n, func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}
