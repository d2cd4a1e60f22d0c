package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gregallentrester/anagram/internal/model"
)

// DefaultConcurrency is the number of cases processed at once when no
// WithConcurrency option is given. Sequential execution keeps per-case
// timings free of interference from sibling workers.
const DefaultConcurrency = 1

// BatchProcessor handles concurrent processing of multiple cases.
// It uses errgroup to manage goroutines and respect concurrency limits.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each case.
	pipelineFactory func(c model.Case) *Pipeline

	// concurrency is the maximum number of concurrent cases.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed case results.
	// Access is synchronized via mutex.
	results []*model.Result
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent cases.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each case to create a fresh
// pipeline instance, so pipeline state never leaks between cases.
func NewBatchProcessor(pipelineFactory func(c model.Case) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
		results:         make([]*model.Result, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs every case through its pipeline, at most concurrency
// at a time. Results are returned in the order of cases. A case that fails
// still yields a result with its Error set; cancellation stops cases that
// have not started and is returned as the error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, cases []model.Case) ([]*model.Result, error) {
	bp.logger.Info("starting batch processing",
		"total_cases", len(cases),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.Result, len(cases))

	err := bp.run(ctx, cases, func(result *model.Result, index int) {
		bp.mu.Lock()
		bp.results[index] = result
		bp.mu.Unlock()
	})

	bp.logger.Info("batch processing complete",
		"total_cases", len(cases),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback runs every case and calls callback for each
// completed result with its index in cases. This is useful for streaming
// results.
//
// The callback is called from the goroutine that completed the case, so it
// should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	cases []model.Case,
	callback func(result *model.Result, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_cases", len(cases),
		"concurrency", bp.concurrency,
	)

	return bp.run(ctx, cases, callback)
}

func (bp *BatchProcessor) run(ctx context.Context, cases []model.Case, done func(*model.Result, int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, c := range cases {
		g.Go(func() error {
			result := model.NewResult(c)

			select {
			case <-ctx.Done():
				result.Error = ctx.Err().Error()
				done(result, i)
				return ctx.Err()
			default:
			}

			bp.logger.Debug("running case",
				"algorithm", result.Algorithm,
				"pair", result.Pair,
				"index", i+1,
				"total", len(cases),
			)

			p := bp.pipelineFactory(c)
			if err := p.Execute(ctx, result); err != nil {
				// Recorded in the result; other cases keep running.
				bp.logger.Warn("case failed",
					"algorithm", result.Algorithm,
					"pair", result.Pair,
					"error", err,
				)
			}

			done(result, i)
			return nil
		})
	}

	return g.Wait()
}
