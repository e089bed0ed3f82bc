package rng

import "unicode/utf16"

// Hash folds a seed string into a 32-bit value, FNV-1a style. The fold runs
// over UTF-16 code units so the same seed maps to the same value regardless
// of which client computed it.
func Hash(seed string) uint32 {
	h := uint32(2166136261)
	for _, u := range utf16.Encode([]rune(seed)) {
		h ^= uint32(u)
		h *= 16777619
	}
	return h
}

// New returns a linear-congruential generator seeded with the given state.
// Each call advances the state and yields a value in [0, 1).
func New(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state = state*1664525 + 1013904223
		return float64(state) / 4294967296.0
	}
}

// Shuffle returns a new slice holding a Fisher–Yates permutation of items,
// driven by the seed string. The input is never mutated. The same
// (input order, seed) pair always yields the same permutation; reproducible
// daily puzzles depend on this.
func Shuffle(items []string, seed string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rnd := New(Hash(seed))
	for i := len(out) - 1; i > 0; i-- {
		j := int(rnd() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
