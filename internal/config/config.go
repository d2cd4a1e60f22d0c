package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/corpus"
	"github.com/gregallentrester/anagram/internal/model"
)

// Default configuration values.
const (
	// DefaultIterations runs every case once, matching a single invocation
	// of the console tool.
	DefaultIterations = 1

	// DefaultConcurrency keeps cases sequential so timings are not skewed by
	// sibling workers competing for the CPU.
	DefaultConcurrency = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "anagram"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorModes lists the accepted color modes.
func ColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// Config holds all configuration options for a run.
// It is populated from the config file first and from CLI flags second,
// then passed down explicitly; there is no global state.
type Config struct {
	// Algorithms are the algorithms to run, in order.
	Algorithms []anagram.Algorithm

	// Pairs are the pairs each algorithm is run on, in order.
	Pairs []corpus.Pair

	// Iterations is how many times each case is repeated. Timing is
	// aggregated across iterations and the verdict must be identical on
	// every one of them.
	Iterations int

	// Concurrency is the number of cases processed at once.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ColorMode is one of ColorAuto, ColorAlways or ColorNever.
	ColorMode string

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, .anagram is searched in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// File is the loaded configuration file, if any.
	File *File

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/anagram on Linux).
	DBDir string

	// SaveToDB indicates whether results are stored in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values: every algorithm,
// every fixed pair, one iteration, one worker and automatic color.
func NewConfig() *Config {
	return &Config{
		Algorithms:  anagram.Algorithms(),
		Pairs:       corpus.Pairs(),
		Iterations:  DefaultIterations,
		Concurrency: DefaultConcurrency,
		ColorMode:   ColorAuto,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the tool.
// On Linux: ~/.local/share/anagram
// On macOS: ~/Library/Application Support/anagram
// On Windows: %LOCALAPPDATA%\anagram
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the tool.
// On Linux: ~/.config/anagram
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile copies the settings of cf into c. Zero values in the file leave
// the current setting unchanged. Custom pairs from the file are appended
// after the selected fixed pairs.
func (c *Config) ApplyFile(cf *File) error {
	if cf == nil {
		return nil
	}
	c.File = cf

	d := cf.Defaults
	if d.Iterations != 0 {
		c.Iterations = d.Iterations
	}
	if d.Concurrency != 0 {
		c.Concurrency = d.Concurrency
	}
	if d.Color != "" {
		c.ColorMode = d.Color
	}

	if len(d.Algorithms) > 0 {
		algs, err := ParseAlgorithms(d.Algorithms)
		if err != nil {
			return fmt.Errorf("invalid defaults.algorithms: %w", err)
		}
		c.Algorithms = algs
	}

	if len(d.Pairs) > 0 {
		pairs, err := ParseSelectors(d.Pairs)
		if err != nil {
			return fmt.Errorf("invalid defaults.pairs: %w", err)
		}
		c.Pairs = pairs
	}

	custom, err := cf.CustomPairs()
	if err != nil {
		return err
	}
	c.Pairs = append(c.Pairs, custom...)
	return nil
}

// ParseAlgorithms resolves a list of algorithm names, dropping duplicates.
func ParseAlgorithms(names []string) ([]anagram.Algorithm, error) {
	var out []anagram.Algorithm
	for _, name := range names {
		alg, err := anagram.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, alg) {
			out = append(out, alg)
		}
	}
	return out, nil
}

// ParseSelectors resolves a list of fixed pair selectors, dropping duplicates.
func ParseSelectors(selectors []string) ([]corpus.Pair, error) {
	var out []corpus.Pair
	seen := make(map[string]bool)
	for _, s := range selectors {
		p, err := corpus.ParseSelector(s)
		if err != nil {
			return nil, err
		}
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out, nil
}

// Cases returns every algorithm crossed with every pair, algorithm-major.
func (c *Config) Cases() []model.Case {
	cases := make([]model.Case, 0, len(c.Algorithms)*len(c.Pairs))
	for _, alg := range c.Algorithms {
		for _, p := range c.Pairs {
			cases = append(cases, model.Case{Algorithm: alg, Pair: p})
		}
	}
	return cases
}

// Validate checks if the configuration is valid.
// It returns the first error found.
func (c *Config) Validate() error {
	if len(c.Algorithms) == 0 {
		return ErrNoAlgorithm
	}
	for _, alg := range c.Algorithms {
		if !alg.Valid() {
			return ErrNoAlgorithm
		}
	}

	if len(c.Pairs) == 0 {
		return ErrNoPair
	}

	if c.Iterations <= 0 {
		return ErrInvalidIterations
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if !slices.Contains(ColorModes(), c.ColorMode) {
		return ErrInvalidColorMode
	}

	return nil
}
