package model

import (
	"slices"
	"testing"
	"time"
)

func benchWith(runID string, results ...*Result) *BenchReport {
	b := &BenchReport{RunID: runID, Iterations: 1}
	b.Finish(results)
	return b
}

func timed(alg, pair string, verdict bool, mean time.Duration) *Result {
	return &Result{Algorithm: alg, Pair: pair, IsAnagram: verdict, Timing: Timing{Samples: 1, Mean: mean}}
}

// TestCompareBenchReports tests run-to-run comparison.
func TestCompareBenchReports(t *testing.T) {
	t.Parallel()

	t.Run("detects verdict changes and timing direction", func(t *testing.T) {
		t.Parallel()

		prev := benchWith("old",
			timed("ExactFrequencyMap", "W+", true, 1000),
			timed("BruteForceCount", "W+", true, 1000),
		)
		curr := benchWith("new",
			timed("ExactFrequencyMap", "W+", true, 500),
			timed("BruteForceCount", "W+", false, 2000),
		)

		c := CompareBenchReports(prev, curr)

		if c.Previous.RunID != "old" || c.Current.RunID != "new" {
			t.Errorf("unexpected run IDs: %s, %s", c.Previous.RunID, c.Current.RunID)
		}
		if len(c.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(c.Entries))
		}
		if c.VerdictChanges != 1 {
			t.Errorf("expected 1 verdict change, got %d", c.VerdictChanges)
		}

		// Entries are sorted by key, so BruteForceCount comes first.
		if c.Entries[0].Algorithm != "BruteForceCount" || c.Entries[0].Direction != DirectionSlower {
			t.Errorf("unexpected first entry: %+v", c.Entries[0])
		}
		if c.Entries[1].Direction != DirectionFaster || c.Entries[1].Delta != -500 {
			t.Errorf("unexpected second entry: %+v", c.Entries[1])
		}
		if c.Direction != DirectionSlower {
			t.Errorf("expected overall slower, got %s", c.Direction)
		}
		if c.TotalDelta != 500 {
			t.Errorf("expected total delta 500, got %v", c.TotalDelta)
		}
	})

	t.Run("tracks added and removed cases", func(t *testing.T) {
		t.Parallel()

		prev := benchWith("old", timed("ExactFrequencyMap", "W+", true, 10), timed("ExactFrequencyMap", "W-", false, 10))
		curr := benchWith("new", timed("ExactFrequencyMap", "W+", true, 10), timed("ExactFrequencyMap", "aab", false, 10))

		c := CompareBenchReports(prev, curr)

		if !slices.Equal(c.Added, []string{"ExactFrequencyMap/aab"}) {
			t.Errorf("unexpected added: %v", c.Added)
		}
		if !slices.Equal(c.Removed, []string{"ExactFrequencyMap/W-"}) {
			t.Errorf("unexpected removed: %v", c.Removed)
		}
		if c.Direction != DirectionUnchanged {
			t.Errorf("expected unchanged, got %s", c.Direction)
		}
	})

	t.Run("ignores errored results", func(t *testing.T) {
		t.Parallel()

		failed := timed("ExactFrequencyMap", "W+", false, 0)
		failed.Error = "context canceled"

		c := CompareBenchReports(benchWith("old", timed("ExactFrequencyMap", "W+", true, 10)), benchWith("new", failed))
		if len(c.Entries) != 0 {
			t.Errorf("expected no entries, got %d", len(c.Entries))
		}
		if len(c.Removed) != 1 {
			t.Errorf("expected errored case to count as removed, got %v", c.Removed)
		}
	})
}

// TestTimingDirection tests the noise threshold.
func TestTimingDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		previous time.Duration
		current  time.Duration
		want     string
	}{
		{"within threshold", 1000, 1050, DirectionUnchanged},
		{"at threshold", 1000, 1100, DirectionUnchanged},
		{"slower", 1000, 1200, DirectionSlower},
		{"faster", 1000, 800, DirectionFaster},
		{"from zero", 0, 10, DirectionSlower},
		{"both zero", 0, 0, DirectionUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TimingDirection(tt.previous, tt.current, DefaultNoiseThreshold); got != tt.want {
				t.Errorf("TimingDirection(%v, %v) = %s, want %s", tt.previous, tt.current, got, tt.want)
			}
		})
	}
}
