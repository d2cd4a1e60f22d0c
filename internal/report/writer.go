package report

import (
	"io"

	"github.com/gregallentrester/anagram/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// WriteResult outputs a single comparison result.
	// Returns the number of bytes written and any error encountered.
	WriteResult(result *model.Result) (int, error)

	// WriteBench outputs a complete bench run.
	WriteBench(report *model.BenchReport) (int, error)

	// WriteComparison outputs the differences between two bench runs.
	WriteComparison(comparison *model.Comparison) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// Our Writer writes reports, not raw bytes, so io.MultiWriter does not fit.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteResult outputs the result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteResult(result *model.Result) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteResult(result) })
}

// WriteBench outputs the bench run to all configured Writers.
func (m *MultiWriter) WriteBench(report *model.BenchReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBench(report) })
}

// WriteComparison outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteComparison(comparison *model.Comparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(comparison) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// writeString writes s to the output.
func (b baseWriter) writeString(s string) (int, error) {
	return io.WriteString(b.output, s)
}
