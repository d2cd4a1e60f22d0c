package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/model"
)

// ErrNotCompared is returned by AuditStep when no comparison has run yet.
var ErrNotCompared = errors.New("audit requires a completed comparison")

// GroundTruthStep records the ExactFrequencyMap verdict for the pair.
// It is the reference every other verdict is audited against.
type GroundTruthStep struct{}

// NewGroundTruthStep creates a new ground-truth step.
func NewGroundTruthStep() *GroundTruthStep {
	return &GroundTruthStep{}
}

// Name returns the step name.
func (s *GroundTruthStep) Name() string {
	return "ground_truth"
}

// Do executes the ground-truth step.
func (s *GroundTruthStep) Do(_ context.Context, result *model.Result) error {
	pair := result.Case().Pair
	result.GroundTruth, _ = anagram.ExactFrequencyMap(pair.A, pair.B)
	return nil
}

// CompareStep runs the algorithm under test Iterations times, aggregating
// timing and checking that every iteration returns the same verdict.
type CompareStep struct {
	Algorithm  anagram.Algorithm
	Iterations int

	logger *slog.Logger
}

// CompareStepOption configures a CompareStep.
type CompareStepOption func(*CompareStep)

// WithCompareLogger sets a custom logger for the compare step.
func WithCompareLogger(logger *slog.Logger) CompareStepOption {
	return func(s *CompareStep) {
		s.logger = logger
	}
}

// NewCompareStep creates a new comparison step. Non-positive iteration
// counts run the algorithm once.
func NewCompareStep(alg anagram.Algorithm, iterations int, opts ...CompareStepOption) *CompareStep {
	if iterations <= 0 {
		iterations = 1
	}
	s := &CompareStep{
		Algorithm:  alg,
		Iterations: iterations,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CompareStep) Name() string {
	return "compare"
}

// Do executes the comparison step.
func (s *CompareStep) Do(ctx context.Context, result *model.Result) error {
	if !s.Algorithm.Valid() {
		return fmt.Errorf("%w: %d", anagram.ErrUnknownAlgorithm, int(s.Algorithm))
	}

	pair := result.Case().Pair
	fn := s.Algorithm.Func()

	s.logger.Debug("comparing",
		"algorithm", s.Algorithm.String(),
		"a", pair.A,
		"b", pair.B,
		"iterations", s.Iterations,
	)

	for i := range s.Iterations {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("comparison interrupted after %d iterations: %w", i, err)
		}

		ok, elapsed := fn(pair.A, pair.B)
		if i == 0 {
			result.IsAnagram = ok
		} else if ok != result.IsAnagram {
			result.Stable = false
		}
		result.Timing.Add(elapsed)
		result.Iterations++
	}

	if !result.Stable {
		s.logger.Warn("verdict changed between iterations",
			"algorithm", s.Algorithm.String(),
			"pair", result.Pair,
		)
	}

	return nil
}

// AuditStep compares the verdict with the pair's expectation and with the
// ground truth, recording a discrepancy for each disagreement.
type AuditStep struct {
	logger *slog.Logger
}

// AuditStepOption configures an AuditStep.
type AuditStepOption func(*AuditStep)

// WithAuditLogger sets a custom logger for the audit step.
func WithAuditLogger(logger *slog.Logger) AuditStepOption {
	return func(s *AuditStep) {
		s.logger = logger
	}
}

// NewAuditStep creates a new audit step.
func NewAuditStep(opts ...AuditStepOption) *AuditStep {
	s := &AuditStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AuditStep) Name() string {
	return "audit"
}

// Do executes the audit step.
func (s *AuditStep) Do(ctx context.Context, result *model.Result) error {
	if result.Iterations == 0 {
		return ErrNotCompared
	}

	alg := result.Case().Algorithm

	if result.IsAnagram != result.GroundTruth {
		result.AddDiscrepancy(model.NewDiscrepancy(alg, result.IsAnagram, result.GroundTruth, model.AgainstGroundTruth))
	}
	if result.IsAnagram != result.Expected {
		result.AddDiscrepancy(model.NewDiscrepancy(alg, result.IsAnagram, result.Expected, model.AgainstExpected))
	}

	for _, d := range result.Discrepancies {
		level := slog.LevelInfo
		if !d.Documented {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "discrepancy",
			"algorithm", result.Algorithm,
			"pair", result.Pair,
			"kind", d.Kind.String(),
			"against", d.Against,
			"documented", d.Documented,
		)
	}

	return nil
}

// DefaultPipeline creates the standard bench pipeline for one algorithm:
// ground truth, comparison, audit.
func DefaultPipeline(alg anagram.Algorithm, iterations int, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(append([]Option{WithLogger(logger)}, opts...)...)
	p.AddSteps(
		NewGroundTruthStep(),
		NewCompareStep(alg, iterations, WithCompareLogger(logger)),
		NewAuditStep(WithAuditLogger(logger)),
	)
	return p
}
