package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/corpus"
	"github.com/gregallentrester/anagram/internal/model"
)

// TestGroundTruthStep tests the reference verdict.
func TestGroundTruthStep(t *testing.T) {
	t.Parallel()

	step := NewGroundTruthStep()
	if step.Name() != "ground_truth" {
		t.Errorf("unexpected name %q", step.Name())
	}

	tests := []struct {
		selector string
		want     bool
	}{
		{"W+", true},
		{"W-", false},
		{"E+", true},
		{"E-", false},
		{"M+", true},
		{"M-", false},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			result := newTestResult(t, anagram.BruteForce, tt.selector)
			if err := step.Do(context.Background(), result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.GroundTruth != tt.want {
				t.Errorf("got ground truth %v, expected %v", result.GroundTruth, tt.want)
			}
		})
	}
}

// TestCompareStep tests timed comparison.
func TestCompareStep(t *testing.T) {
	t.Parallel()

	t.Run("runs every iteration", func(t *testing.T) {
		t.Parallel()

		step := NewCompareStep(anagram.Decrement, 5)
		result := newTestResult(t, anagram.Decrement, "W+")

		if err := step.Do(context.Background(), result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsAnagram {
			t.Error("expected carbon/corban to be anagrams")
		}
		if result.Iterations != 5 || result.Timing.Samples != 5 {
			t.Errorf("expected 5 iterations, got %d (%d samples)", result.Iterations, result.Timing.Samples)
		}
		if !result.Stable {
			t.Error("expected stable verdict")
		}
		if result.Timing.Min > result.Timing.Max {
			t.Errorf("min %v exceeds max %v", result.Timing.Min, result.Timing.Max)
		}
	})

	t.Run("non-positive iterations run once", func(t *testing.T) {
		t.Parallel()

		step := NewCompareStep(anagram.Exact, 0)
		if step.Iterations != 1 {
			t.Errorf("expected 1 iteration, got %d", step.Iterations)
		}
	})

	t.Run("rejects unknown algorithm", func(t *testing.T) {
		t.Parallel()

		step := NewCompareStep(anagram.Algorithm(99), 1)
		result := newTestResult(t, anagram.Exact, "W+")
		if err := step.Do(context.Background(), result); !errors.Is(err, anagram.ErrUnknownAlgorithm) {
			t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
		}
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := NewCompareStep(anagram.Exact, 3)
		result := newTestResult(t, anagram.Exact, "W+")
		err := step.Do(ctx, result)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result.Iterations != 0 {
			t.Errorf("expected no iterations, got %d", result.Iterations)
		}
	})
}

// TestAuditStep tests discrepancy detection.
func TestAuditStep(t *testing.T) {
	t.Parallel()

	t.Run("requires a comparison", func(t *testing.T) {
		t.Parallel()

		result := newTestResult(t, anagram.Exact, "W+")
		if err := NewAuditStep().Do(context.Background(), result); !errors.Is(err, ErrNotCompared) {
			t.Errorf("expected ErrNotCompared, got %v", err)
		}
	})

	t.Run("agreement yields no discrepancy", func(t *testing.T) {
		t.Parallel()

		result := newTestResult(t, anagram.Exact, "W-")
		p := DefaultPipeline(anagram.Exact, 2, nil)
		if err := p.Execute(context.Background(), result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Discrepancies) != 0 {
			t.Errorf("expected no discrepancies, got %+v", result.Discrepancies)
		}
	})

	t.Run("flawed algorithm on repeated letters is documented", func(t *testing.T) {
		t.Parallel()

		pair, err := corpus.NewCustomPair("repeats", "aab", "abb", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := model.NewResult(model.Case{Algorithm: anagram.Decrement, Pair: pair})

		p := DefaultPipeline(anagram.Decrement, 1, nil)
		if err := p.Execute(context.Background(), result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Discrepancies) != 2 {
			t.Fatalf("expected 2 discrepancies, got %d", len(result.Discrepancies))
		}
		for _, d := range result.Discrepancies {
			if d.Kind != model.FalsePositive {
				t.Errorf("expected false positive, got %v", d.Kind)
			}
			if !d.Documented {
				t.Error("expected documented discrepancy")
			}
		}
	})

	t.Run("bad expectation on the reference is undocumented", func(t *testing.T) {
		t.Parallel()

		pair, err := corpus.NewCustomPair("wrong", "ab", "ba", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := model.NewResult(model.Case{Algorithm: anagram.Exact, Pair: pair})

		p := DefaultPipeline(anagram.Exact, 1, nil)
		if err := p.Execute(context.Background(), result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Discrepancies) != 1 {
			t.Fatalf("expected 1 discrepancy, got %d", len(result.Discrepancies))
		}
		d := result.Discrepancies[0]
		if d.Against != model.AgainstExpected || d.Documented {
			t.Errorf("unexpected discrepancy: %+v", d)
		}
	})
}

// TestDefaultPipeline tests the standard step order.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	p := DefaultPipeline(anagram.BruteForce, 3, nil)
	names := p.StepNames()
	expected := []string{"ground_truth", "compare", "audit"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("step %d: expected %q, got %q", i, expected[i], names[i])
		}
	}

	result := newTestResult(t, anagram.BruteForce, "M+")
	if err := p.Execute(context.Background(), result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsAnagram || !result.GroundTruth || result.Iterations != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
}
