package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for anagram.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anagram",
		Short: "Compare anagram algorithms on fixed and custom token pairs",
		Long: `anagram runs three anagram algorithms side by side:

  ana   ExactFrequencyMap     exact per-character frequency comparison
  ebay  SinglePassDecrement   single map, decremented while scanning
  san   BruteForceCount       case-folded nested presence count

SinglePassDecrement and BruteForceCount have documented limitations that
are kept on purpose; every run reports where they disagree with
ExactFrequencyMap.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText, "Log format on stderr: text or json")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewBenchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
