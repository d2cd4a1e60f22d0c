package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/config"
	"github.com/gregallentrester/anagram/internal/corpus"
	"github.com/gregallentrester/anagram/internal/database"
	"github.com/gregallentrester/anagram/internal/model"
)

// executeCommand runs cmd with args and captures stdout and stderr.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestRunCmd tests the single comparison command.
func TestRunCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints console layout", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewRunCmd(), "ana", "W+")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout, "\nMETHOD\nExactFrequencyMap\n\nStrings are Anagrams\nElapsed ") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("accepts full names and lowercase selectors", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewRunCmd(), "single-pass-decrement", "w-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "SinglePassDecrement") || !strings.Contains(stdout, "Strings are not Anagrams") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("every algorithm and model", func(t *testing.T) {
		t.Parallel()

		for _, alg := range anagram.Algorithms() {
			for _, sel := range corpus.Selectors() {
				stdout, _, err := executeCommand(t, NewRunCmd(), alg.Shorthand(), sel, "--json")
				if err != nil {
					t.Fatalf("%s %s: unexpected error: %v", alg.Shorthand(), sel, err)
				}

				var result model.Result
				if err := json.Unmarshal([]byte(stdout), &result); err != nil {
					t.Fatalf("%s %s: invalid JSON: %v", alg.Shorthand(), sel, err)
				}
				if result.IsAnagram != result.Expected {
					t.Errorf("%s %s: verdict %v, expected %v", alg.Shorthand(), sel, result.IsAnagram, result.Expected)
				}
				if len(result.Discrepancies) != 0 {
					t.Errorf("%s %s: unexpected discrepancies %v", alg.Shorthand(), sel, result.Discrepancies)
				}
			}
		}
	})

	t.Run("iterations are aggregated", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewRunCmd(), "san", "E+", "-n", "5", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var result model.Result
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if result.Iterations != 5 || result.Timing.Samples != 5 {
			t.Errorf("expected 5 iterations, got %d (%d samples)", result.Iterations, result.Timing.Samples)
		}
		if !result.Stable {
			t.Error("expected stable verdict")
		}
	})

	t.Run("rejects partial algorithm names", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, NewRunCmd(), "sa", "W+")
		if !errors.Is(err, anagram.ErrUnknownAlgorithm) {
			t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
		}
	})

	t.Run("rejects unknown model", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, NewRunCmd(), "ana", "X+")
		if !errors.Is(err, corpus.ErrUnknownModel) {
			t.Errorf("expected ErrUnknownModel, got %v", err)
		}
	})

	t.Run("requires two arguments", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCommand(t, NewRunCmd(), "ana"); err == nil {
			t.Error("expected error for missing model")
		}
	})

	t.Run("rejects conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, NewRunCmd(), "ana", "W+", "--json", "--markdown")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("rejects invalid iterations", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, NewRunCmd(), "ana", "W+", "-n", "0")
		if !errors.Is(err, config.ErrInvalidIterations) {
			t.Errorf("expected ErrInvalidIterations, got %v", err)
		}
	})

	t.Run("writes markdown to file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "reports", "run.md")
		stdout, stderr, err := executeCommand(t, NewRunCmd(), "ebay", "M+", "--markdown", "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}
		if !strings.Contains(stderr, "Report written to") {
			t.Errorf("expected file notice on stderr, got %q", stderr)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# Anagram Check") {
			t.Errorf("unexpected report %q", content)
		}
	})

	t.Run("saves to history", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		if _, _, err := executeCommand(t, NewRunCmd(), "ana", "M-", "--save", "--db-dir", dbDir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		latest, err := db.GetLatestBenchReport(t.Context())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if latest == nil || len(latest.Results) != 1 || latest.Results[0].Pair != "M-" {
			t.Errorf("unexpected stored report: %+v", latest)
		}
	})
}

// TestCheckCmd tests comparison of arbitrary tokens.
func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("agreeing algorithms", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewCheckCmd(), "listen", "silent")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(stdout, "METHOD") != 3 {
			t.Errorf("expected three reports, got %q", stdout)
		}
		if strings.Contains(stdout, "disagrees") {
			t.Errorf("expected no disagreement, got %q", stdout)
		}
	})

	t.Run("flags documented limitations", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewCheckCmd(), "aab", "abb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(stdout, "disagrees with ExactFrequencyMap") != 2 {
			t.Errorf("expected two disagreements, got %q", stdout)
		}
	})

	t.Run("selected algorithms only", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewCheckCmd(), "-a", "san", "Listen", "SILENT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(stdout, "METHOD") != 1 || !strings.Contains(stdout, "BruteForceCount") {
			t.Errorf("unexpected output %q", stdout)
		}
		if !strings.Contains(stdout, "disagrees") {
			t.Error("expected case folding to disagree with the reference")
		}
	})

	t.Run("always colors", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, NewCheckCmd(), "--color", "always", "ab", "ba")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "\x1b[") {
			t.Error("expected ansi escape sequences")
		}
	})

	t.Run("rejects invalid color", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, NewCheckCmd(), "--color", "sometimes", "ab", "ba")
		if !errors.Is(err, config.ErrInvalidColorMode) {
			t.Errorf("expected ErrInvalidColorMode, got %v", err)
		}
	})
}
