package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/config"
	"github.com/gregallentrester/anagram/internal/corpus"
	"github.com/gregallentrester/anagram/internal/database"
	"github.com/gregallentrester/anagram/internal/model"
	"github.com/gregallentrester/anagram/internal/pipeline"
	"github.com/gregallentrester/anagram/internal/report"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <algorithm> <model>",
		Short: "Run one algorithm on one fixed pair",
		Long: `Run compares the two tokens of a fixed pair with one algorithm and prints
the verdict and the elapsed time in nanoseconds.

Algorithms:
  ana   ExactFrequencyMap (also exact-frequency-map)
  ebay  SinglePassDecrement (also single-pass-decrement)
  san   BruteForceCount (also brute-force-count)

Models (+ congruent, - incongruent):
  ` + strings.Join(corpus.Selectors(), " ") + `
  W  word pair
  E  passage with embedded spaces and punctuation
  M  the same passage with whitespace removed

Examples:
  # Exact comparison of the congruent word pair
  anagram run ana W+

  # Decrement pass on the minified passage against its signed variant
  anagram run ebay M-

  # Average over 1000 iterations and print JSON
  anagram run san E+ -n 1000 --json`,
		Args: cobra.ExactArgs(2),
		RunE: runRunCmd,
	}

	cmd.Flags().IntP("iterations", "n", config.DefaultIterations,
		"Number of times to run the comparison")
	cmd.Flags().Bool("save", false,
		"Store the result in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	addReportFlags(cmd)

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	c := cfg.Cases()[0]
	result := model.NewResult(c)
	p := pipeline.DefaultPipeline(c.Algorithm, cfg.Iterations, logger)
	if err := p.Execute(ctx, result); err != nil {
		return fmt.Errorf("%s on %s: %w", result.Algorithm, result.Pair, err)
	}

	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteResult(result)
	}); err != nil {
		return err
	}

	if cfg.SaveToDB {
		bench := model.NewBenchReport(cfg.Iterations)
		bench.Finish([]*model.Result{result})
		if err := saveBenchReport(ctx, cfg.DBDir, bench, logger); err != nil {
			return err
		}
	}

	return nil
}

// buildRunConfig creates a Config for one algorithm and one fixed pair.
func buildRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	alg, err := anagram.ParseAlgorithm(args[0])
	if err != nil {
		return nil, err
	}
	pair, err := corpus.ParseSelector(args[1])
	if err != nil {
		return nil, err
	}
	cfg.Algorithms = []anagram.Algorithm{alg}
	cfg.Pairs = []corpus.Pair{pair}
	cfg.Verbose = getVerboseFlag(cmd)

	cfg.Iterations, err = cmd.Flags().GetInt("iterations")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// saveBenchReport stores a finished run in the history database.
func saveBenchReport(ctx context.Context, dbDir string, bench *model.BenchReport, logger *slog.Logger) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveBenchReport(ctx, bench); err != nil {
		return fmt.Errorf("failed to save bench run: %w", err)
	}

	logger.Info("bench run saved",
		"run_id", bench.RunID,
		"results", len(bench.Results),
		"path", db.Path(),
	)
	return nil
}
