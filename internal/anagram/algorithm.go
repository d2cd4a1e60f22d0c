package anagram

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// CompareFunc is the operation every algorithm implements. It reports
// whether a and b are anagrams under the algorithm's own definition and how
// long the decision took.
type CompareFunc func(a, b string) (bool, time.Duration)

// Reporter receives the outcome of a single comparison.
// Implementations own all formatting; the algorithms never print.
type Reporter interface {
	Report(name string, isAnagram bool, elapsed time.Duration)
}

// Algorithm enumerates the available comparison algorithms.
// The set is closed: every value maps to exactly one CompareFunc.
type Algorithm int

const (
	// Exact is ExactFrequencyMap, the reference algorithm.
	Exact Algorithm = iota

	// Decrement is SinglePassDecrement.
	Decrement

	// BruteForce is BruteForceCount.
	BruteForce
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm when the input matches no
// algorithm name or shorthand.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// algorithmInfo holds the static description of an algorithm.
type algorithmInfo struct {
	name       string
	shorthand  string
	fn         CompareFunc
	limitation string
}

var algorithmTable = map[Algorithm]algorithmInfo{
	Exact: {
		name:      "ExactFrequencyMap",
		shorthand: "ana",
		fn:        ExactFrequencyMap,
	},
	Decrement: {
		name:      "SinglePassDecrement",
		shorthand: "ebay",
		fn:        SinglePassDecrement,
		limitation: "surplus repeated characters in the second token go undetected " +
			"when both tokens have the same length, and an empty second token " +
			"is always accepted",
	},
	BruteForce: {
		name:      "BruteForceCount",
		shorthand: "san",
		fn:        BruteForceCount,
		limitation: "only checks that each character of the first token occurs " +
			"somewhere in the second; repeated-character counts are ignored " +
			"and two empty tokens are rejected",
	},
}

// Algorithms returns every algorithm in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{Exact, Decrement, BruteForce}
}

// String returns the canonical algorithm name, e.g. "ExactFrequencyMap".
func (a Algorithm) String() string {
	if info, ok := algorithmTable[a]; ok {
		return info.name
	}
	return "Unknown"
}

// Shorthand returns the short command-line name of the algorithm.
func (a Algorithm) Shorthand() string {
	return algorithmTable[a].shorthand
}

// Slug returns the kebab-case form of the name, e.g. "exact-frequency-map".
func (a Algorithm) Slug() string {
	name := a.String()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Func returns the comparison function implementing the algorithm.
// It returns nil for values outside the enumeration.
func (a Algorithm) Func() CompareFunc {
	return algorithmTable[a].fn
}

// Limitation describes the documented, intentionally preserved weakness of
// the algorithm. It is empty for the reference algorithm.
func (a Algorithm) Limitation() string {
	return algorithmTable[a].limitation
}

// Flawed reports whether the algorithm has a documented limitation.
func (a Algorithm) Flawed() bool {
	return a.Limitation() != ""
}

// Valid reports whether a is one of the enumerated algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithmTable[a]
	return ok
}

// ParseAlgorithm resolves a user supplied name. It accepts the shorthand
// ("ana", "ebay", "san"), the canonical name or its kebab-case slug, all
// compared case-insensitively. Partial names are rejected.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)
	for _, alg := range Algorithms() {
		if strings.EqualFold(s, alg.Shorthand()) ||
			strings.EqualFold(s, alg.String()) ||
			strings.EqualFold(s, alg.Slug()) {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (use ana, ebay or san)", ErrUnknownAlgorithm, s)
}

// Compare runs the algorithm on a and b.
func (a Algorithm) Compare(tokenA, tokenB string) (bool, time.Duration) {
	return a.Func()(tokenA, tokenB)
}

// Run compares a and b with alg and hands the outcome to r.
// A nil Reporter is allowed; the verdict is returned either way.
func Run(alg Algorithm, tokenA, tokenB string, r Reporter) bool {
	ok, elapsed := alg.Compare(tokenA, tokenB)
	if r != nil {
		r.Report(alg.String(), ok, elapsed)
	}
	return ok
}

// Length returns the token length used by every algorithm: its rune count.
func Length(token string) int {
	return utf8.RuneCountInString(token)
}
