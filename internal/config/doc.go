// Package config provides configuration structures and utilities for the
// anagram tool. It defines which algorithms and pairs a run covers, how many
// iterations and workers to use, report format preferences and where the
// history database lives.
package config
