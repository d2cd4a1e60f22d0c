package anagram

import (
	"maps"
	"time"
)

// frequencyMap counts rune occurrences in a token.
type frequencyMap map[rune]int

// newFrequencyMap scans token once and counts every rune.
func newFrequencyMap(token string) frequencyMap {
	counts := make(frequencyMap)
	for _, r := range token {
		counts[r]++
	}
	return counts
}

// ExactFrequencyMap builds an independent frequency map for each token and
// reports whether the maps are equal. Comparison is exact: case, whitespace
// and punctuation all count. Two empty tokens are anagrams.
//
// The elapsed time covers both map constructions and the comparison.
func ExactFrequencyMap(a, b string) (bool, time.Duration) {
	start := time.Now()

	first := newFrequencyMap(a)
	second := newFrequencyMap(b)
	ok := maps.Equal(first, second)

	return ok, time.Since(start)
}
