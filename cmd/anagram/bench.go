package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/config"
	"github.com/gregallentrester/anagram/internal/model"
	"github.com/gregallentrester/anagram/internal/pipeline"
	"github.com/gregallentrester/anagram/internal/report"
)

// ErrUndocumentedDiscrepancy is returned by bench --strict when a verdict
// disagrees with the reference and no documented limitation explains it.
var ErrUndocumentedDiscrepancy = errors.New("undocumented discrepancy found")

// NewBenchCmd creates the bench command.
func NewBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every algorithm on every pair and record the results",
		Long: `Bench runs each selected algorithm on each selected pair, audits every
verdict against ExactFrequencyMap and the pair's expected verdict, and
prints a result matrix with a per-algorithm summary.

Pairs are the six fixed pairs plus any custom pairs from the configuration
file. Runs are stored in the history database unless --no-save is given;
use 'anagram history' to compare runs.

Examples:
  # Everything, once
  anagram bench

  # 1000 iterations per case, four cases at a time
  anagram bench -n 1000 -c 4

  # Only the passage pairs, as Markdown
  anagram bench -p E+ -p E- -p M+ -p M- --markdown -o bench.md

  # Fail when a discrepancy has no documented explanation
  anagram bench --strict

Configuration file (.anagram) example:
  defaults:
    iterations: 100
  pairs:
    repeated-letters:
      a: aab
      b: abb
      expected: false`,
		Args: cobra.NoArgs,
		RunE: runBenchCmd,
	}

	cmd.Flags().IntP("iterations", "n", config.DefaultIterations,
		"Number of times each case is run")
	cmd.Flags().IntP("concurrency", "c", config.DefaultConcurrency,
		"Number of cases run at once")
	cmd.Flags().StringSliceP("algorithm", "a", nil,
		"Algorithms to run (ana, ebay, san); default all")
	cmd.Flags().StringSliceP("pair", "p", nil,
		"Fixed pairs to run (W+ W- E+ E- M+ M-); default all")
	cmd.Flags().String("config", "",
		"Configuration file path (default: .anagram in current or home directory, then config.yaml in the XDG config directory)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not store the run in the history database")
	cmd.Flags().Bool("progress", false,
		"Print each case to stderr as it completes")
	cmd.Flags().Bool("strict", false,
		"Exit with an error when a discrepancy is not explained by a documented limitation")
	addReportFlags(cmd)

	return cmd
}

// runBenchCmd executes the bench command.
func runBenchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBenchConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}
	var progress io.Writer
	if showProgress {
		progress = cmd.ErrOrStderr()
	}

	bench, runErr := runBench(ctx, cfg, logger, progress)

	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteBench(bench)
	}); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("bench interrupted: %w", runErr)
	}

	if cfg.SaveToDB {
		if err := saveBenchReport(ctx, cfg.DBDir, bench, logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved bench run %s\n", bench.RunID)
	}

	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}
	if strict {
		return checkUndocumented(bench.Summary)
	}

	return nil
}

// runBench processes every case of cfg and returns the finished report.
// On cancellation the report holds partial results and the error is returned.
// When progress is non-nil a line is written to it as each case completes.
func runBench(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress io.Writer) (*model.BenchReport, error) {
	cases := cfg.Cases()
	logger.Info("starting bench",
		"algorithms", len(cfg.Algorithms),
		"pairs", len(cfg.Pairs),
		"cases", len(cases),
		"iterations", cfg.Iterations,
		"concurrency", cfg.Concurrency,
	)

	bench := model.NewBenchReport(cfg.Iterations)

	bp := pipeline.NewBatchProcessor(
		func(c model.Case) *pipeline.Pipeline {
			return pipeline.DefaultPipeline(c.Algorithm, cfg.Iterations, logger)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	var (
		results []*model.Result
		err     error
	)
	if progress == nil {
		results, err = bp.ProcessBatch(ctx, cases)
	} else {
		results = make([]*model.Result, len(cases))
		var (
			mu   sync.Mutex
			done int
		)
		err = bp.ProcessBatchWithCallback(ctx, cases, func(r *model.Result, index int) {
			mu.Lock()
			defer mu.Unlock()
			results[index] = r
			done++
			fmt.Fprintf(progress, "[%d/%d] %s on %s: %s\n", done, len(cases), r.Algorithm, r.Pair, progressStatus(r))
		})
	}
	bench.Finish(results)

	logger.Info("bench complete",
		"run_id", bench.RunID,
		"discrepancies", bench.Summary.Discrepancies,
		"errors", bench.Summary.Errors,
		"duration", bench.Duration(),
	)

	return bench, err
}

// progressStatus summarizes a completed case for a progress line.
func progressStatus(r *model.Result) string {
	switch {
	case r.Error != "":
		return "error: " + r.Error
	case r.Agrees():
		return r.Verdict()
	default:
		return r.Verdict() + " (disagrees with " + anagram.Exact.String() + ")"
	}
}

// checkUndocumented fails when any algorithm has a discrepancy without a
// documented limitation.
func checkUndocumented(summary model.Summary) error {
	for _, as := range summary.Algorithms {
		if n := as.Undocumented(); n > 0 {
			return fmt.Errorf("%w: %s has %d", ErrUndocumentedDiscrepancy, as.Algorithm, n)
		}
	}
	return nil
}

// buildBenchConfig creates a Config from the configuration file and the
// command flags. Flags that were set explicitly override the file.
func buildBenchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.SaveToDB = true

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path that does not exist is an error; a missing default
	// file is not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(cf); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	flags := cmd.Flags()

	if flags.Changed("iterations") {
		if cfg.Iterations, err = flags.GetInt("iterations"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("algorithm") {
		names, err := flags.GetStringSlice("algorithm")
		if err != nil {
			return nil, err
		}
		if cfg.Algorithms, err = config.ParseAlgorithms(names); err != nil {
			return nil, err
		}
	}

	if flags.Changed("pair") {
		selectors, err := flags.GetStringSlice("pair")
		if err != nil {
			return nil, err
		}
		pairs, err := config.ParseSelectors(selectors)
		if err != nil {
			return nil, err
		}
		if cfg.File != nil {
			custom, err := cfg.File.CustomPairs()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, custom...)
		}
		cfg.Pairs = pairs
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
