package anagram

import "time"

// SinglePassDecrement builds one frequency map from a and consumes b against
// it, latching failure on the first rune of b that is missing from the map
// or as soon as the token lengths are seen to differ.
//
// This algorithm is intentionally flawed and must stay that way:
//   - a count that reaches zero keeps its key, so a surplus repeated rune in b
//     is still "present" and is accepted when len(a) == len(b)
//     ("aab" vs "abb" reports true);
//   - the length comparison only runs inside the loop, so an empty b never
//     latches ("abc" vs "" reports true).
func SinglePassDecrement(a, b string) (bool, time.Duration) {
	start := time.Now()

	counts := newFrequencyMap(a)
	lenA, lenB := Length(a), Length(b)
	failed := false

	for _, r := range b {
		if n, ok := counts[r]; ok && n > 0 {
			counts[r] = n - 1
		}

		if _, ok := counts[r]; !ok || lenA != lenB {
			failed = true
			break
		}
	}

	return !failed, time.Since(start)
}
