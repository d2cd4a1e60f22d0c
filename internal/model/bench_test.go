package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNewBenchReport tests the BenchReport constructor.
func TestNewBenchReport(t *testing.T) {
	t.Parallel()

	b := NewBenchReport(5)

	if _, err := uuid.Parse(b.RunID); err != nil {
		t.Errorf("expected RunID to be a UUID, got %q: %v", b.RunID, err)
	}
	if b.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
	if b.Duration() != 0 {
		t.Errorf("expected zero duration before Finish, got %v", b.Duration())
	}
	if NewBenchReport(5).RunID == b.RunID {
		t.Error("expected distinct run IDs")
	}

	b.Finish([]*Result{{Algorithm: "ExactFrequencyMap", Timing: Timing{Mean: 10}}})
	if b.FinishedAt.IsZero() {
		t.Error("expected FinishedAt to be set")
	}
	if b.Summary.TotalResults != 1 {
		t.Errorf("got %d results in summary, expected 1", b.Summary.TotalResults)
	}
}

// TestNewSummary tests per-algorithm aggregation.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	documented := Discrepancy{Kind: FalsePositive, Against: AgainstGroundTruth, Documented: true}
	undocumented := Discrepancy{Kind: FalseNegative, Against: AgainstExpected}

	results := []*Result{
		{Algorithm: "SinglePassDecrement", IsAnagram: true, GroundTruth: false,
			Discrepancies: []Discrepancy{documented}, Timing: Timing{Mean: 30 * time.Nanosecond}},
		{Algorithm: "ExactFrequencyMap", IsAnagram: true, GroundTruth: true, Timing: Timing{Mean: 10}},
		{Algorithm: "ExactFrequencyMap", IsAnagram: false, GroundTruth: false,
			Discrepancies: []Discrepancy{undocumented}, Timing: Timing{Mean: 20}},
		{Algorithm: "SinglePassDecrement", Error: "context canceled"},
		nil,
		{Algorithm: "Custom", IsAnagram: true, GroundTruth: true, Timing: Timing{Mean: 5}},
	}

	s := NewSummary(results)

	if s.TotalResults != 5 {
		t.Errorf("got %d total results, expected 5", s.TotalResults)
	}
	if s.Discrepancies != 2 || s.Errors != 1 {
		t.Errorf("got %d discrepancies and %d errors, expected 2 and 1", s.Discrepancies, s.Errors)
	}

	t.Run("canonical order first", func(t *testing.T) {
		t.Parallel()
		var names []string
		for _, as := range s.Algorithms {
			names = append(names, as.Algorithm)
		}
		want := []string{"ExactFrequencyMap", "SinglePassDecrement", "Custom"}
		if len(names) != len(want) {
			t.Fatalf("got %v, expected %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("position %d: got %s, expected %s", i, names[i], want[i])
			}
		}
	})

	t.Run("exact totals", func(t *testing.T) {
		t.Parallel()
		as, ok := s.ForAlgorithm("ExactFrequencyMap")
		if !ok {
			t.Fatal("expected ExactFrequencyMap in summary")
		}
		if as.Runs != 2 || as.Agreements != 2 || as.Discrepancies != 1 || as.Documented != 0 {
			t.Errorf("unexpected totals: %+v", as)
		}
		if as.Undocumented() != 1 {
			t.Errorf("got %d undocumented, expected 1", as.Undocumented())
		}
		if as.MeanElapsed != 15 {
			t.Errorf("got mean %v, expected 15ns", as.MeanElapsed)
		}
	})

	t.Run("decrement totals exclude errored runs from timing", func(t *testing.T) {
		t.Parallel()
		as, _ := s.ForAlgorithm("SinglePassDecrement")
		if as.Runs != 2 || as.Errors != 1 || as.Documented != 1 || as.Agreements != 0 {
			t.Errorf("unexpected totals: %+v", as)
		}
		if as.MeanElapsed != 30 {
			t.Errorf("got mean %v, expected 30ns", as.MeanElapsed)
		}
	})

	t.Run("missing algorithm", func(t *testing.T) {
		t.Parallel()
		if _, ok := s.ForAlgorithm("BruteForceCount"); ok {
			t.Error("expected BruteForceCount to be absent")
		}
	})
}
