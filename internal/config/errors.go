package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is().
var (
	// ErrNoAlgorithm is returned when no algorithm is selected.
	ErrNoAlgorithm = errors.New("no algorithm selected: use ana, ebay or san")

	// ErrNoPair is returned when there is nothing to compare.
	ErrNoPair = errors.New("no pair selected: use W+, W-, E+, E-, M+, M- or a configured pair")

	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("invalid iterations: must be positive")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidColorMode is returned for a color mode other than auto,
	// always or never.
	ErrInvalidColorMode = errors.New("invalid color mode: must be auto, always or never")
)
