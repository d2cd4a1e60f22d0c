package report

import (
	"io"
	"strings"
	"time"
)

// ConsoleReporter prints each comparison in the console layout as it is
// reported. It implements anagram.Reporter.
type ConsoleReporter struct {
	w   *SimpleWriter
	err error
}

// NewConsoleReporter creates a ConsoleReporter writing to output.
func NewConsoleReporter(output io.Writer, opts ...SimpleWriterOption) *ConsoleReporter {
	return &ConsoleReporter{w: NewSimpleWriter(output, opts...)}
}

// Report writes the METHOD banner, verdict and elapsed time.
func (c *ConsoleReporter) Report(name string, isAnagram bool, elapsed time.Duration) {
	if c.err != nil {
		return
	}

	var sb strings.Builder
	c.w.writeMethod(&sb, name)
	c.w.writeVerdict(&sb, isAnagram, elapsed)
	_, c.err = c.w.writeString(sb.String())
}

// Note writes a free-form line after the last report, colored as a failure
// when warn is true.
func (c *ConsoleReporter) Note(line string, warn bool) {
	if c.err != nil {
		return
	}
	if warn {
		line = c.w.paint(line, styleFail)
	}
	_, c.err = c.w.writeString(line + "\n")
}

// Err returns the first write error, if any.
func (c *ConsoleReporter) Err() error {
	return c.err
}
