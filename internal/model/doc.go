// Package model defines the data structures shared by the bench pipeline,
// the history store and the report writers.
//
// This package contains the following main types:
//   - Case: one algorithm paired with one input pair
//   - Result: the outcome of running a Case, with timing and discrepancies
//   - BenchReport: a complete bench run with its per-algorithm Summary
//
// The models serialize to JSON for report output and database storage.
package model
