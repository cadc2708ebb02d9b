package dataset

import "math/rand/v2"

// Shuffler permutes n elements by calling swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a locally owned random source. A non-nil seed makes the
// resulting permutation reproducible; nil draws fresh entropy.
func NewShuffler(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(*seed)
	return rand.New(rand.NewPCG(s, s))
}

// Shuffle permutes records in place. Every ordering is equally likely given
// an unbiased source.
func Shuffle(records []Record, s Shuffler) {
	s.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// ShuffleAndCut shuffles records in place and slices the result.
func ShuffleAndCut(records []Record, ratios Ratios, s Shuffler) Partition {
	Shuffle(records, s)
	return Cut(records, ratios)
}
