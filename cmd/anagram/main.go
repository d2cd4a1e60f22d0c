// Package main provides the entry point for the anagram CLI.
//
// anagram compares three anagram algorithms on fixed word pairs and on a
// long passage, with and without whitespace, and records how their
// verdicts and timings differ.
//
// Usage:
//
//	anagram run ana W+
//	anagram check listen silent
//	anagram bench --iterations 100
//	anagram history
//
// See --help for all available options.
package main

// main is the entry point for anagram.
func main() {
	Execute()
}
