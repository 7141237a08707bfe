package types

import "math/rand/v2"

// Rand is a source of uniformly distributed values in [0, 1). Every
// stochastic operation receives its source explicitly; nothing in the
// tracing core draws from a global generator.
type Rand interface {
	Float32() float32
}

// Create a PCG generator for the given seed and stream. Distinct streams
// with the same seed produce independent sequences.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Return a random point inside the unit sphere. Candidates are drawn from
// the [-1, 1) cube and rejected until one lands strictly inside the sphere.
func RandomInUnitSphere(rng Rand) Vec3 {
	for {
		p := Vec3{
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
		}
		if p.SquaredLen() < 1.0 {
			return p
		}
	}
}

// Return a random point inside the unit disk on the z=0 plane.
func RandomInUnitDisk(rng Rand) Vec3 {
	for {
		p := Vec3{2*rng.Float32() - 1, 2*rng.Float32() - 1, 0}
		if p.SquaredLen() < 1.0 {
			return p
		}
	}
}
