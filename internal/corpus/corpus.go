package corpus

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Model identifies the kind of input a pair exercises.
type Model int

const (
	// Word pairs are short single words.
	Word Model = iota

	// EmbeddedSpaces pairs are the full passage with spaces preserved.
	EmbeddedSpaces

	// Minified pairs are the full passage with spaces removed.
	Minified

	// Custom pairs come from user configuration.
	Custom
)

// String returns the model name.
func (m Model) String() string {
	switch m {
	case Word:
		return "Word"
	case EmbeddedSpaces:
		return "EmbeddedSpaces"
	case Minified:
		return "Minified"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Letter returns the selector letter of the model, or "" for Custom.
func (m Model) Letter() string {
	switch m {
	case Word:
		return "W"
	case EmbeddedSpaces:
		return "E"
	case Minified:
		return "M"
	default:
		return ""
	}
}

// MarshalText encodes the model as its name.
func (m Model) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a model name.
func (m *Model) UnmarshalText(text []byte) error {
	for _, candidate := range []Model{Word, EmbeddedSpaces, Minified, Custom} {
		if strings.EqualFold(string(text), candidate.String()) {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownModel, string(text))
}

// Variant says whether the two tokens of a pair are expected to be anagrams.
type Variant int

const (
	// Congruent pairs are anagrams.
	Congruent Variant = iota

	// Incongruent pairs are not.
	Incongruent
)

// String returns "+" or "-".
func (v Variant) String() string {
	if v == Congruent {
		return "+"
	}
	return "-"
}

// MarshalText encodes the variant as its sign.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes "+" or "-".
func (v *Variant) UnmarshalText(text []byte) error {
	switch string(text) {
	case "+":
		*v = Congruent
	case "-":
		*v = Incongruent
	default:
		return fmt.Errorf("%w: variant %q", ErrUnknownModel, string(text))
	}
	return nil
}

var (
	// ErrUnknownModel is returned when a selector names no fixed pair.
	ErrUnknownModel = errors.New("unknown model")

	// ErrEmptyPairName is returned when a custom pair has no name.
	ErrEmptyPairName = errors.New("pair name is required")
)

// Pair is two tokens to compare together with their expected outcome.
type Pair struct {
	Name    string
	Model   Model
	Variant Variant
	A       string
	B       string
}

// Expected reports whether A and B are meant to be anagrams.
func (p Pair) Expected() bool {
	return p.Variant == Congruent
}

// Selector returns the pair's model selector, e.g. "E-". Custom pairs
// return their name.
func (p Pair) Selector() string {
	if p.Model == Custom {
		return p.Name
	}
	return p.Model.Letter() + p.Variant.String()
}

// LengthA returns the rune length of A.
func (p Pair) LengthA() int { return utf8.RuneCountInString(p.A) }

// LengthB returns the rune length of B.
func (p Pair) LengthB() int { return utf8.RuneCountInString(p.B) }

var fixedPairs = []Pair{
	{Name: "W+", Model: Word, Variant: Congruent, A: "carbon", B: "corban"},
	{Name: "W-", Model: Word, Variant: Incongruent, A: "carbo", B: "corban"},
	{Name: "E+", Model: EmbeddedSpaces, Variant: Congruent, A: NoSignature, B: NoSignature},
	{Name: "E-", Model: EmbeddedSpaces, Variant: Incongruent, A: NoSignature, B: Signature},
	{Name: "M+", Model: Minified, Variant: Congruent, A: NoSignatureMinified, B: NoSignatureMinified},
	{Name: "M-", Model: Minified, Variant: Incongruent, A: NoSignatureMinified, B: SignatureMinified},
}

// Pairs returns the fixed pairs in canonical order: W+ W- E+ E- M+ M-.
// The returned slice is a copy.
func Pairs() []Pair {
	out := make([]Pair, len(fixedPairs))
	copy(out, fixedPairs)
	return out
}

// Lookup returns the fixed pair for a model and variant.
func Lookup(m Model, v Variant) (Pair, error) {
	for _, p := range fixedPairs {
		if p.Model == m && p.Variant == v {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("%w: %s%s", ErrUnknownModel, m, v)
}

// ParseSelector resolves a selector such as "W+" or "e-". Letters are
// matched case-insensitively; the sign must be "+" or "-".
func ParseSelector(s string) (Pair, error) {
	s = strings.TrimSpace(s)
	for _, p := range fixedPairs {
		if strings.EqualFold(s, p.Selector()) {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("%w: %q (use W+, W-, E+, E-, M+ or M-)", ErrUnknownModel, s)
}

// Selectors returns the selectors of the fixed pairs in canonical order.
func Selectors() []string {
	out := make([]string, 0, len(fixedPairs))
	for _, p := range fixedPairs {
		out = append(out, p.Selector())
	}
	return out
}

// NewCustomPair builds a pair from user supplied tokens.
func NewCustomPair(name, a, b string, expected bool) (Pair, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pair{}, ErrEmptyPairName
	}
	v := Incongruent
	if expected {
		v = Congruent
	}
	return Pair{Name: name, Model: Custom, Variant: v, A: a, B: b}, nil
}
