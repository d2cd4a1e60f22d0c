// Package report renders comparison results, bench runs and run-to-run
// comparisons.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the console layout, optionally colorized, with bench
//     matrices rendered as tables
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: documents with tables, alerts and a mermaid pie chart
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. ConsoleReporter
// adapts a SimpleWriter to the anagram.Reporter interface.
package report
