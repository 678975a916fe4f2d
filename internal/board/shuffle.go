package board

import "github.com/lumilearn/quiz-runner/internal/models"

// Deterministic seeded shuffle for the match-pairs right column. The same
// seed must always produce the same order across runs and platforms, so the
// host's default random source is never used: the seed string is hashed with
// FNV-1a and fed into an xorshift64* generator driving a Fisher-Yates pass.

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func hashSeed(seed string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= fnvPrime64
	}
	if h == 0 {
		// xorshift state must be non-zero.
		h = fnvOffset64
	}
	return h
}

type xorshift64 struct {
	state uint64
}

func newXorshift64(seed string) *xorshift64 {
	return &xorshift64{state: hashSeed(seed)}
}

func (x *xorshift64) next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return s * 2685821657736338717
}

// intn returns a value in [0, n).
func (x *xorshift64) intn(n int) int {
	return int(x.next() % uint64(n))
}

// shuffleChoices returns a seed-determined permutation of items. The input
// slice is not modified.
func shuffleChoices(seed string, items []models.Choice) []models.Choice {
	out := append([]models.Choice(nil), items...)
	rng := newXorshift64(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
