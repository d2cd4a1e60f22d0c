// Package pipeline provides a framework for running bench steps in sequence.
//
// Every case (one algorithm on one pair) is processed through three stages:
// the ground-truth reference verdict, the timed comparison under test, and an
// audit that records any disagreement. Each stage is a Step that receives the
// current Result and can modify it.
//
// The pipeline supports both single cases and batch processing with
// concurrency control using errgroup.
package pipeline
