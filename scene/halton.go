package scene

import "math/rand"

// hashxy combines a pixel coordinate into a single 64-bit value using a
// small avalanche mix, giving every pixel an independent deterministic
// seed for its Halton sub-sequence.
func hashxy(x, y int) uint64 {
	h := uint64(x)*0x1f123bb5 + uint64(y)*0x5f356495
	h ^= h >> 15
	h *= 0x7feb352d
	h ^= h >> 13
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}

// permutation builds a random digit-permutation table of the given base,
// deterministically shuffled from seed.
func permutation(base int, seed uint64) []int {
	perm := make([]int, base)
	for i := range perm {
		perm[i] = i
	}
	r := rand.New(rand.NewSource(int64(seed)))
	r.Shuffle(base, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

// radicalInverse computes the base-b radical inverse of index, scrambled
// by a per-digit permutation table.
func radicalInverse(index uint64, base int, perm []int) float64 {
	invBase := 1.0 / float64(base)
	frac := invBase
	result := 0.0
	i := index
	b := uint64(base)
	for i > 0 {
		result += float64(perm[i%b]) * frac
		i /= b
		frac *= invBase
	}
	return result
}

// Halton produces a deterministic low-discrepancy 2-D sequence per pixel,
// using permuted radical inverse in base 2 and base 3.
type Halton struct {
	perm2, perm3 []int
}

// NewHalton seeds a generator's digit permutations from the hash of
// (x, y). Base 2 and base 3 admit only 2 and 6 digit permutations, so
// there are 12 distinct sub-sequences and many pixels share one.
func NewHalton(x, y int) *Halton {
	seed := hashxy(x, y)
	return &Halton{
		perm2: permutation(2, seed*2654435761+1),
		perm3: permutation(3, seed*2246822519+2),
	}
}

// Generate returns count 2-D samples in [0,1)^2.
func (h *Halton) Generate(count int) [][2]float64 {
	samples := make([][2]float64, count)
	for i := 0; i < count; i++ {
		idx := uint64(i + 1)
		samples[i] = [2]float64{
			radicalInverse(idx, 2, h.perm2),
			radicalInverse(idx, 3, h.perm3),
		}
	}
	return samples
}
