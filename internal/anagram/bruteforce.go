package anagram

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BruteForceCount rejects tokens of different length, then upper-cases both
// and counts, for each rune of a, how many runes of b match it. The count is
// reset for every outer rune and the outer scan stops at the first rune with
// no match. The verdict is whether the last examined count is positive.
//
// The result approximates an anagram check and is kept that way on purpose:
// multiplicity is never tracked ("aab" vs "abb" reports true), the verdict
// comes from a single count rather than all of them, and two empty tokens
// report false because no count is ever taken.
func BruteForceCount(a, b string) (bool, time.Duration) {
	start := time.Now()

	if Length(a) != Length(b) {
		return false, time.Since(start)
	}

	upper := cases.Upper(language.Und)
	first := []rune(upper.String(a))
	second := []rune(upper.String(b))

	count := 0
	for _, c := range first {
		count = 0
		for _, d := range second {
			if c == d {
				count++
			}
		}
		if count == 0 {
			break
		}
	}

	return count > 0, time.Since(start)
}
