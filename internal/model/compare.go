package model

import (
	"sort"
	"time"
)

// Directions reported when comparing timings between two runs.
const (
	DirectionFaster    = "faster"
	DirectionSlower    = "slower"
	DirectionUnchanged = "unchanged"
)

// DefaultNoiseThreshold is the relative change in mean time below which a
// timing is reported as unchanged.
const DefaultNoiseThreshold = 0.10

// RunMetadata identifies one side of a comparison.
type RunMetadata struct {
	RunID         string    `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	Iterations    int       `json:"iterations"`
	Results       int       `json:"results"`
	Discrepancies int       `json:"discrepancies"`
}

// ComparisonEntry is the change for one algorithm and pair present in both runs.
type ComparisonEntry struct {
	Algorithm string `json:"algorithm"`
	Pair      string `json:"pair"`

	PreviousVerdict bool `json:"previous_verdict"`
	CurrentVerdict  bool `json:"current_verdict"`
	VerdictChanged  bool `json:"verdict_changed"`

	PreviousMean time.Duration `json:"previous_mean_ns"`
	CurrentMean  time.Duration `json:"current_mean_ns"`
	Delta        time.Duration `json:"delta_ns"`
	Direction    string        `json:"direction"`
}

// Comparison holds the differences between two bench runs.
type Comparison struct {
	Previous RunMetadata `json:"previous_run"`
	Current  RunMetadata `json:"current_run"`

	Entries []ComparisonEntry `json:"entries"`

	// Added and Removed list "algorithm/pair" keys present in only one run.
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	VerdictChanges int `json:"verdict_changes"`

	// Direction is the overall timing trend over the shared entries.
	Direction     string        `json:"direction"`
	PreviousTotal time.Duration `json:"previous_total_ns"`
	CurrentTotal  time.Duration `json:"current_total_ns"`
	TotalDelta    time.Duration `json:"total_delta_ns"`
}

// CompareBenchReports compares previous against current. Errored results
// are left out because they carry no timing.
func CompareBenchReports(previous, current *BenchReport) *Comparison {
	c := &Comparison{
		Previous: runMetadata(previous),
		Current:  runMetadata(current),
	}

	prev := indexResults(previous)
	curr := indexResults(current)

	for _, key := range sortedKeys(curr) {
		cr := curr[key]
		pr, ok := prev[key]
		if !ok {
			c.Added = append(c.Added, key)
			continue
		}

		e := ComparisonEntry{
			Algorithm:       cr.Algorithm,
			Pair:            cr.Pair,
			PreviousVerdict: pr.IsAnagram,
			CurrentVerdict:  cr.IsAnagram,
			VerdictChanged:  pr.IsAnagram != cr.IsAnagram,
			PreviousMean:    pr.Timing.Mean,
			CurrentMean:     cr.Timing.Mean,
			Delta:           cr.Timing.Mean - pr.Timing.Mean,
			Direction:       TimingDirection(pr.Timing.Mean, cr.Timing.Mean, DefaultNoiseThreshold),
		}
		if e.VerdictChanged {
			c.VerdictChanges++
		}
		c.PreviousTotal += e.PreviousMean
		c.CurrentTotal += e.CurrentMean
		c.Entries = append(c.Entries, e)
	}

	for _, key := range sortedKeys(prev) {
		if _, ok := curr[key]; !ok {
			c.Removed = append(c.Removed, key)
		}
	}

	c.TotalDelta = c.CurrentTotal - c.PreviousTotal
	c.Direction = TimingDirection(c.PreviousTotal, c.CurrentTotal, DefaultNoiseThreshold)
	return c
}

// TimingDirection classifies the change from previous to current. Changes
// within threshold (relative to previous) are unchanged.
func TimingDirection(previous, current time.Duration, threshold float64) string {
	if previous <= 0 {
		if current > 0 {
			return DirectionSlower
		}
		return DirectionUnchanged
	}

	ratio := float64(current-previous) / float64(previous)
	switch {
	case ratio > threshold:
		return DirectionSlower
	case ratio < -threshold:
		return DirectionFaster
	default:
		return DirectionUnchanged
	}
}

// ResultKey identifies a result across runs.
func ResultKey(r *Result) string {
	return r.Algorithm + "/" + r.Pair
}

func runMetadata(b *BenchReport) RunMetadata {
	return RunMetadata{
		RunID:         b.RunID,
		StartedAt:     b.StartedAt,
		Iterations:    b.Iterations,
		Results:       len(b.Results),
		Discrepancies: b.Summary.Discrepancies,
	}
}

func indexResults(b *BenchReport) map[string]*Result {
	m := make(map[string]*Result, len(b.Results))
	for _, r := range b.Results {
		if r == nil || r.Error != "" {
			continue
		}
		m[ResultKey(r)] = r
	}
	return m
}

func sortedKeys(m map[string]*Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
