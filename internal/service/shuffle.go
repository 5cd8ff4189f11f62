package service

import "math/rand/v2"

// RandSource supplies random indices for shuffling
type RandSource interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand uses the global math/rand/v2 source, which is safe for concurrent use
var DefaultRand RandSource = defaultRand{}

// Shuffle returns a shuffled copy of src using Fisher-Yates. src is not modified.
func Shuffle[T any](src []T, rng RandSource) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffledIndices returns a random permutation of 0..n-1
func ShuffledIndices(n int, rng RandSource) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return Shuffle(indices, rng)
}
