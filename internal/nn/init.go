package nn

import "math/rand/v2"

// NewRand returns a deterministic generator for weight initialization.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// normal draws a weight from N(0, 1). A nil rng uses the global source.
func normal(rng *rand.Rand) float64 {
	if rng == nil {
		//nolint:gosec // Weight initialization is not security-critical.
		return rand.NormFloat64()
	}
	return rng.NormFloat64()
}
