package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/gregallentrester/anagram/internal/anagram"
)

// BenchReport is one complete bench run.
type BenchReport struct {
	// RunID uniquely identifies the run in the history store.
	RunID string `json:"run_id"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Iterations is the per-case iteration count used for the run.
	Iterations int `json:"iterations"`

	Results []*Result `json:"results"`
	Summary Summary   `json:"summary"`
}

// NewBenchReport starts a report with a fresh run ID.
func NewBenchReport(iterations int) *BenchReport {
	return &BenchReport{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		Iterations: iterations,
	}
}

// Finish attaches results, stamps the finish time and computes the summary.
func (b *BenchReport) Finish(results []*Result) {
	b.Results = results
	b.FinishedAt = time.Now()
	b.Summary = NewSummary(results)
}

// Duration returns the wall-clock length of the run.
func (b *BenchReport) Duration() time.Duration {
	if b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}

// Summary aggregates a bench run per algorithm.
type Summary struct {
	TotalResults  int                `json:"total_results"`
	Discrepancies int                `json:"discrepancies"`
	Errors        int                `json:"errors"`
	Algorithms    []AlgorithmSummary `json:"algorithms"`
}

// AlgorithmSummary holds totals for one algorithm.
type AlgorithmSummary struct {
	Algorithm string `json:"algorithm"`

	// Runs is the number of pairs the algorithm was run on.
	Runs int `json:"runs"`

	// Agreements counts results that match the ground truth.
	Agreements int `json:"agreements"`

	// Discrepancies counts results with at least one discrepancy.
	Discrepancies int `json:"discrepancies"`

	// Documented counts discrepancies explained by a documented limitation.
	Documented int `json:"documented"`

	Errors int `json:"errors"`

	// MeanElapsed is the mean of the per-result mean timings and
	// TotalElapsed is their sum.
	MeanElapsed  time.Duration `json:"mean_elapsed_ns"`
	TotalElapsed time.Duration `json:"total_elapsed_ns"`
}

// Undocumented returns the discrepancies not explained by a limitation.
func (s AlgorithmSummary) Undocumented() int {
	return s.Discrepancies - s.Documented
}

// NewSummary computes totals over results. Algorithms appear in canonical
// order followed by any unrecognized names in order of first appearance.
func NewSummary(results []*Result) Summary {
	byName := make(map[string]*AlgorithmSummary)
	var order []string
	for _, alg := range anagram.Algorithms() {
		order = append(order, alg.String())
	}

	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.TotalResults++

		as, ok := byName[r.Algorithm]
		if !ok {
			as = &AlgorithmSummary{Algorithm: r.Algorithm}
			byName[r.Algorithm] = as
			if _, err := anagram.ParseAlgorithm(r.Algorithm); err != nil {
				order = append(order, r.Algorithm)
			}
		}

		as.Runs++
		if r.Error != "" {
			as.Errors++
			s.Errors++
			continue
		}
		if r.Agrees() {
			as.Agreements++
		}
		if len(r.Discrepancies) > 0 {
			as.Discrepancies++
			s.Discrepancies++
			if allDocumented(r.Discrepancies) {
				as.Documented++
			}
		}
		as.TotalElapsed += r.Timing.Mean
	}

	for _, name := range order {
		as, ok := byName[name]
		if !ok {
			continue
		}
		if measured := as.Runs - as.Errors; measured > 0 {
			as.MeanElapsed = as.TotalElapsed / time.Duration(measured)
		}
		s.Algorithms = append(s.Algorithms, *as)
	}
	return s
}

func allDocumented(ds []Discrepancy) bool {
	for _, d := range ds {
		if !d.Documented {
			return false
		}
	}
	return true
}

// ForAlgorithm returns the summary entry for name.
func (s Summary) ForAlgorithm(name string) (AlgorithmSummary, bool) {
	for _, as := range s.Algorithms {
		if as.Algorithm == name {
			return as, true
		}
	}
	return AlgorithmSummary{}, false
}
