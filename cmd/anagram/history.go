package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/config"
	"github.com/gregallentrester/anagram/internal/corpus"
	"github.com/gregallentrester/anagram/internal/database"
	"github.com/gregallentrester/anagram/internal/model"
	"github.com/gregallentrester/anagram/internal/report"
)

// ErrNotEnoughRuns is returned when a comparison needs more stored runs.
var ErrNotEnoughRuns = errors.New("at least 2 bench runs are required for comparison")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored bench runs or compare the latest with an earlier one",
		Long: `History reads bench runs from the history database.

By default the latest run is compared with the one before it, showing:
- Verdicts that changed between the runs
- Mean time per algorithm and pair, with the delta and its direction
- Cases present in only one of the runs

Timing changes within 10% are reported as unchanged.

Examples:
  # Compare the latest two runs
  anagram history

  # List stored runs
  anagram history --list

  # Compare the latest run with a specific one (a unique ID prefix is enough)
  anagram history --with-run-id 3f2a9c

  # Mean time of SinglePassDecrement on M+ across all runs
  anagram history --trend ebay:M+

  # Output comparison in JSON format
  anagram history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List stored bench runs")
	cmd.Flags().IntP("limit", "n", 0,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().StringP("trend", "t", "",
		"Show mean time of one case across runs, as <algorithm>:<pair> (e.g. ebay:M+)")
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare the latest run with this run (use --list to see available IDs)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	addReportFlags(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		return listBenchRuns(ctx, cmd, cfg, db, limit)
	}

	trend, err := cmd.Flags().GetString("trend")
	if err != nil {
		return err
	}
	if trend != "" {
		return showTrend(ctx, cmd, cfg, db, trend)
	}

	withRunID, err := cmd.Flags().GetString("with-run-id")
	if err != nil {
		return err
	}

	comparison, err := compareRuns(ctx, db, withRunID)
	if err != nil {
		return err
	}

	return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteComparison(comparison)
	})
}

// listBenchRuns prints stored runs, newest first.
func listBenchRuns(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.HistoryDB, limit int) error {
	runs, err := db.ListBenchRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bench runs: %w", err)
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	out := cmd.OutOrStdout()

	if cfg.JSONReport {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No bench runs found in the database.")
		fmt.Fprintln(out, "\nUse 'anagram bench' to record a run.")
		return nil
	}

	if cfg.MarkdownReport {
		writeRunsMarkdown(out, runs)
		return nil
	}

	fmt.Fprintf(out, "Bench runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %10s  %7s  %13s\n", "Run ID", "Started", "Iterations", "Results", "Discrepancies")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 93))
	for _, run := range runs {
		fmt.Fprintf(out, "  %-36s  %-19s  %10d  %7d  %13d\n",
			run.RunID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Iterations,
			run.ResultCount,
			run.Discrepancies,
		)
	}

	fmt.Fprintln(out, "\nUse 'anagram history' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'anagram history --with-run-id <id>' to compare with a specific run.")

	return nil
}

// writeRunsMarkdown prints stored runs as a Markdown table.
func writeRunsMarkdown(out io.Writer, runs []database.BenchRunMetadata) {
	fmt.Fprintln(out, "| Run ID | Started | Iterations | Results | Discrepancies |")
	fmt.Fprintln(out, "|--------|---------|------------|---------|---------------|")
	for _, run := range runs {
		fmt.Fprintf(out, "| `%s` | %s | %s | %s | %s |\n",
			run.RunID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(run.Iterations),
			strconv.Itoa(run.ResultCount),
			strconv.Itoa(run.Discrepancies),
		)
	}
}

// compareRuns compares the latest run with the run named by withRunID, or
// with the run before it when withRunID is empty.
func compareRuns(ctx context.Context, db *database.HistoryDB, withRunID string) (*model.Comparison, error) {
	history, err := db.GetBenchHistory(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to get bench history: %w", err)
	}
	if len(history) == 0 {
		return nil, errors.New("no bench runs found (use 'anagram bench' to record one)")
	}

	current := history[0]

	var previous *model.BenchReport
	if withRunID != "" {
		previous, err = db.GetBenchReportByID(ctx, withRunID)
		if err != nil {
			return nil, fmt.Errorf("failed to get run %s: %w", withRunID, err)
		}
		if previous == nil {
			return nil, fmt.Errorf("run %s not found", withRunID)
		}
		if previous.RunID == current.RunID {
			return nil, fmt.Errorf("run %s is the latest run; choose an earlier one", withRunID)
		}
	} else {
		if len(history) < 2 {
			return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughRuns, len(history))
		}
		previous = history[1]
	}

	return model.CompareBenchReports(previous, current), nil
}

// showTrend prints the timing of one algorithm and pair across runs,
// oldest first, with the change from the previous run.
func showTrend(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.HistoryDB, trend string) error {
	algName, pair, ok := strings.Cut(trend, ":")
	if !ok || pair == "" {
		return fmt.Errorf("invalid trend %q (use <algorithm>:<pair>, e.g. ebay:M+)", trend)
	}
	alg, err := anagram.ParseAlgorithm(algName)
	if err != nil {
		return err
	}
	if p, err := corpus.ParseSelector(pair); err == nil {
		pair = p.Name
	}

	records, err := db.AlgorithmTimings(ctx, alg.String(), pair)
	if err != nil {
		return fmt.Errorf("failed to get timings: %w", err)
	}

	out := cmd.OutOrStdout()

	if cfg.JSONReport {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No timings found for %s on %s\n", alg, pair)
		return nil
	}

	fmt.Fprintf(out, "%s on %s (%d runs):\n\n", alg, pair, len(records))
	fmt.Fprintf(out, "  %-19s  %-8s  %12s  %12s  %s\n", "Started", "Anagram", "Mean (ns)", "Delta", "Direction")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for i, rec := range records {
		delta, direction := "-", "-"
		if i > 0 {
			prev := records[i-1].Mean
			d := rec.Mean - prev
			delta = strconv.FormatInt(d.Nanoseconds(), 10)
			if d > 0 {
				delta = "+" + delta
			}
			direction = model.TimingDirection(prev, rec.Mean, model.DefaultNoiseThreshold)
		}
		verdict := "no"
		if rec.IsAnagram {
			verdict = "yes"
		}
		fmt.Fprintf(out, "  %-19s  %-8s  %12d  %12s  %s\n",
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			verdict,
			rec.Mean.Nanoseconds(),
			delta,
			direction,
		)
	}

	return nil
}
