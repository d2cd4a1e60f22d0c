package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/corpus"
)

// PairConfig is a user defined pair in the configuration file.
type PairConfig struct {
	// A and B are the tokens to compare. Empty tokens are allowed.
	A string `yaml:"a"`
	B string `yaml:"b"`

	// Expected is the intended verdict. When omitted, the ExactFrequencyMap
	// verdict is used.
	Expected *bool `yaml:"expected,omitempty"`
}

// Defaults holds run settings from the configuration file.
// CLI flags take precedence over these values.
type Defaults struct {
	Iterations  int      `yaml:"iterations,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
	Color       string   `yaml:"color,omitempty"`
	Algorithms  []string `yaml:"algorithms,omitempty"`

	// Pairs selects fixed pairs by selector, e.g. ["W+", "E-"].
	Pairs []string `yaml:"pairs,omitempty"`
}

// File represents the structure of the .anagram configuration file.
type File struct {
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Pairs maps pair names to user defined pairs.
	Pairs map[string]PairConfig `yaml:"pairs,omitempty"`
}

// CustomPairs converts the configured pairs to corpus pairs, sorted by name.
func (cf *File) CustomPairs() ([]corpus.Pair, error) {
	names := slices.Sorted(maps.Keys(cf.Pairs))
	out := make([]corpus.Pair, 0, len(names))
	for _, name := range names {
		pc := cf.Pairs[name]

		expected, _ := anagram.ExactFrequencyMap(pc.A, pc.B)
		if pc.Expected != nil {
			expected = *pc.Expected
		}

		p, err := corpus.NewCustomPair(name, pc.A, pc.B, expected)
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q: %w", name, err)
		}
		out = append(out, p)
	}
	return out, nil
}
