// Package log provides structured logging built on top of the standard slog
// package.
//
// The AbbreviatingHandler shortens long string values before they reach the
// underlying handler. The corpus passages are well over a thousand runes, and
// logging a pair at debug level would otherwise print them in full on every
// iteration.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("comparing",
//	    "a", corpus.NoSignature, // first 64 runes, then "…(+1369 runes)"
//	    "algorithm", "ExactFrequencyMap",
//	)
//
//	slog.SetDefault(logger)
package log
