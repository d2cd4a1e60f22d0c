// Package anagram implements three ways of deciding whether two tokens are
// anagrams of each other.
//
// Every algorithm shares the CompareFunc signature: it takes two tokens and
// returns its verdict together with the wall-clock time spent computing it.
// The algorithms are alternatives to be compared side by side, not composed:
//   - ExactFrequencyMap: two rune frequency maps compared for equality.
//     This is the reference algorithm and is correct for every input.
//   - SinglePassDecrement: one frequency map consumed by the second token.
//     It cannot detect surplus repeated runes when lengths match.
//   - BruteForceCount: case-folded nested-loop presence count. It never
//     accounts for multiplicity and reports on the last rune it examined.
//
// The limitations of SinglePassDecrement and BruteForceCount are part of
// their contract. They are exercised by tests and surfaced by the bench
// pipeline as documented discrepancies; do not correct them.
//
// Token length is measured in runes, and all iteration is rune-wise.
//
// # Usage
//
//	ok, elapsed := anagram.ExactFrequencyMap("carbon", "corban")
//
//	alg, err := anagram.ParseAlgorithm("ebay")
//	if err != nil {
//	    return err
//	}
//	anagram.Run(alg, "carbon", "corban", reporter)
package anagram
