package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/config"
	"github.com/gregallentrester/anagram/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <token-a> <token-b>",
		Short: "Compare two arbitrary tokens with every algorithm",
		Long: `Check runs the selected algorithms on two tokens given on the command line
and prints each verdict with its elapsed time. Verdicts that differ from
ExactFrequencyMap are flagged together with the algorithm's documented
limitation.

Tokens are compared exactly as given; quote them to keep spaces.

Examples:
  # All three algorithms
  anagram check listen silent

  # A pair SinglePassDecrement and BruteForceCount both accept
  anagram check aab abb

  # Only BruteForceCount
  anagram check -a san Listen SILENT`,
		Args: cobra.ExactArgs(2),
		RunE: runCheckCmd,
	}

	cmd.Flags().StringSliceP("algorithm", "a", nil,
		"Algorithms to run (ana, ebay, san); default all")
	cmd.Flags().String("color", config.ColorAuto,
		"Console colors: auto, always or never")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	names, err := cmd.Flags().GetStringSlice("algorithm")
	if err != nil {
		return err
	}
	algs := anagram.Algorithms()
	if len(names) > 0 {
		algs, err = config.ParseAlgorithms(names)
		if err != nil {
			return err
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	if !slices.Contains(config.ColorModes(), colorMode) {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidColorMode)
	}

	out := cmd.OutOrStdout()
	reporter := report.NewConsoleReporter(out,
		report.WithColor(report.ColorEnabled(colorMode, out)),
	)

	a, b := args[0], args[1]
	reference, _ := anagram.ExactFrequencyMap(a, b)

	for _, alg := range algs {
		if got := anagram.Run(alg, a, b, reporter); got != reference {
			reporter.Note(fmt.Sprintf("\n%s disagrees with %s: %s",
				alg, anagram.Exact, alg.Limitation()), true)
		}
	}

	return reporter.Err()
}
