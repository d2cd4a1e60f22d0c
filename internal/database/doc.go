// Package database provides SQLite-based storage for bench history.
//
// This package implements the HistoryDB, which stores:
//   - Bench runs as complete JSON reports with their summaries
//   - One row per algorithm and pair with verdict and timing, so timings
//     can be queried across runs without decoding every report
//
// The database is a single file (anagram.db) opened through the CGO-free
// modernc.org/sqlite driver in WAL mode.
package database
