package model

import (
	"fmt"
	"time"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/corpus"
)

// Case is a single unit of work: one algorithm applied to one pair.
type Case struct {
	Algorithm anagram.Algorithm
	Pair      corpus.Pair
}

// Result is the outcome of running a Case through the bench pipeline.
type Result struct {
	// === Input ===

	// Algorithm is the canonical algorithm name, e.g. "ExactFrequencyMap".
	Algorithm string `json:"algorithm"`

	// Shorthand is the short command-line name, e.g. "ana".
	Shorthand string `json:"shorthand"`

	// Pair is the pair name, e.g. "W+" or a custom pair name.
	Pair string `json:"pair"`

	// Model is the pair's model name.
	Model string `json:"model"`

	// Variant is "+" for congruent pairs and "-" otherwise.
	Variant string `json:"variant"`

	// LengthA and LengthB are the rune lengths of the two tokens.
	LengthA int `json:"length_a"`
	LengthB int `json:"length_b"`

	// === Outcome ===

	// IsAnagram is the verdict of the algorithm under test.
	IsAnagram bool `json:"is_anagram"`

	// Expected is the verdict the pair was built to produce.
	Expected bool `json:"expected"`

	// GroundTruth is the ExactFrequencyMap verdict for the same pair.
	GroundTruth bool `json:"ground_truth"`

	// Stable is true when every iteration produced the same verdict.
	Stable bool `json:"stable"`

	// Iterations is the number of times the algorithm ran.
	Iterations int `json:"iterations"`

	// Timing aggregates the elapsed time of every iteration.
	Timing Timing `json:"timing"`

	// Discrepancies lists every disagreement found by the audit step.
	Discrepancies []Discrepancy `json:"discrepancies,omitempty"`

	// === Bookkeeping ===

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains the first step error, if any.
	Error string `json:"error,omitempty"`

	algorithm anagram.Algorithm
	pair      corpus.Pair
}

// NewResult prepares a Result for c. The tokens stay attached to the
// result so pipeline steps can read them; they are not serialized.
func NewResult(c Case) *Result {
	return &Result{
		Algorithm: c.Algorithm.String(),
		Shorthand: c.Algorithm.Shorthand(),
		Pair:      c.Pair.Name,
		Model:     c.Pair.Model.String(),
		Variant:   c.Pair.Variant.String(),
		LengthA:   c.Pair.LengthA(),
		LengthB:   c.Pair.LengthB(),
		Expected:  c.Pair.Expected(),
		Stable:    true,
		algorithm: c.Algorithm,
		pair:      c.Pair,
	}
}

// Case returns the case the result was created for.
func (r *Result) Case() Case {
	return Case{Algorithm: r.algorithm, Pair: r.pair}
}

// AddStep records that a pipeline step ran.
func (r *Result) AddStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// AddDiscrepancy appends d to the result.
func (r *Result) AddDiscrepancy(d Discrepancy) {
	r.Discrepancies = append(r.Discrepancies, d)
}

// Agrees reports whether the verdict matches the ground truth.
func (r *Result) Agrees() bool {
	return r.IsAnagram == r.GroundTruth
}

// MatchesExpected reports whether the verdict matches the pair's expectation.
func (r *Result) MatchesExpected() bool {
	return r.IsAnagram == r.Expected
}

// Verdict returns the human-readable verdict line.
func (r *Result) Verdict() string {
	return VerdictText(r.IsAnagram)
}

// VerdictText returns "Strings are Anagrams" or "Strings are not Anagrams".
func VerdictText(isAnagram bool) string {
	if isAnagram {
		return "Strings are Anagrams"
	}
	return "Strings are not Anagrams"
}

// Timing aggregates durations over several iterations.
type Timing struct {
	Samples int           `json:"samples"`
	Min     time.Duration `json:"min_ns"`
	Max     time.Duration `json:"max_ns"`
	Mean    time.Duration `json:"mean_ns"`
	Total   time.Duration `json:"total_ns"`
}

// Add records one sample.
func (t *Timing) Add(d time.Duration) {
	if t.Samples == 0 || d < t.Min {
		t.Min = d
	}
	if d > t.Max {
		t.Max = d
	}
	t.Samples++
	t.Total += d
	t.Mean = t.Total / time.Duration(t.Samples)
}

// DiscrepancyKind classifies a disagreement with a reference verdict.
type DiscrepancyKind int

const (
	// FalsePositive means the algorithm accepted a pair the reference rejected.
	FalsePositive DiscrepancyKind = iota

	// FalseNegative means the algorithm rejected a pair the reference accepted.
	FalseNegative
)

// String returns "false_positive" or "false_negative".
func (k DiscrepancyKind) String() string {
	switch k {
	case FalsePositive:
		return "false_positive"
	case FalseNegative:
		return "false_negative"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its string form.
func (k DiscrepancyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes the string form of a kind.
func (k *DiscrepancyKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "false_positive":
		*k = FalsePositive
	case "false_negative":
		*k = FalseNegative
	default:
		return fmt.Errorf("unknown discrepancy kind %q", string(text))
	}
	return nil
}

// Reference names what a verdict was compared against.
const (
	AgainstExpected    = "expected"
	AgainstGroundTruth = "ground_truth"
)

// Discrepancy is a single disagreement between the algorithm under test and
// a reference verdict.
type Discrepancy struct {
	Kind DiscrepancyKind `json:"kind"`

	// Against is AgainstExpected or AgainstGroundTruth.
	Against string `json:"against"`

	Description string `json:"description"`

	// Documented is true when the algorithm carries a documented limitation
	// that explains the disagreement.
	Documented bool `json:"documented"`
}

// NewDiscrepancy builds the discrepancy for a verdict that differs from want.
func NewDiscrepancy(alg anagram.Algorithm, got, want bool, against string) Discrepancy {
	kind := FalseNegative
	if got && !want {
		kind = FalsePositive
	}
	desc := fmt.Sprintf("%s reported %q, %s is %q",
		alg, VerdictText(got), against, VerdictText(want))
	if alg.Flawed() {
		desc += ": " + alg.Limitation()
	}
	return Discrepancy{
		Kind:        kind,
		Against:     against,
		Description: desc,
		Documented:  alg.Flawed(),
	}
}
