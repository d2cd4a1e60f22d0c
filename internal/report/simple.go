package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gregallentrester/anagram/internal/model"
)

// SimpleWriter outputs the console layout: a METHOD banner, the algorithm
// name, the verdict and the elapsed nanoseconds. Bench runs and comparisons
// are rendered as tables.
type SimpleWriter struct {
	baseWriter
	painter

	// verbose adds pair details, timing spread and discrepancy descriptions.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables ansi colors.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.enabled = enabled
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteResult outputs one result in the console layout.
func (w *SimpleWriter) WriteResult(result *model.Result) (int, error) {
	var sb strings.Builder

	w.writeMethod(&sb, result.Algorithm)

	if result.Error != "" {
		sb.WriteString(w.paint("Error: "+result.Error, styleFail))
		sb.WriteString("\n")
		return w.writeString(sb.String())
	}

	w.writeVerdict(&sb, result.IsAnagram, result.Timing.Mean)

	if w.verbose {
		w.writeResultDetails(&sb, result)
	}

	return w.writeString(sb.String())
}

// writeMethod writes the METHOD banner and algorithm name.
func (w *SimpleWriter) writeMethod(sb *strings.Builder, name string) {
	sb.WriteString("\n")
	sb.WriteString(w.paint("METHOD", styleHeading))
	sb.WriteString("\n")
	sb.WriteString(w.paint(name, styleName))
	sb.WriteString("\n\n")
}

// writeVerdict writes the verdict line and the elapsed time.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, isAnagram bool, elapsed time.Duration) {
	sb.WriteString(w.verdict(model.VerdictText(isAnagram), isAnagram))
	sb.WriteString("\n")
	sb.WriteString(w.paint("Elapsed "+nanos(elapsed), styleHeading))
	sb.WriteString("\n")
}

// writeResultDetails writes pair information, timing spread and discrepancies.
func (w *SimpleWriter) writeResultDetails(sb *strings.Builder, result *model.Result) {
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Pair:        %s (%s, lengths %d/%d)\n",
		result.Pair, result.Model, result.LengthA, result.LengthB)
	fmt.Fprintf(sb, "Expected:    %s\n", model.VerdictText(result.Expected))
	if result.Iterations > 1 {
		fmt.Fprintf(sb, "Iterations:  %d (min %s, max %s, mean %s ns)\n",
			result.Iterations, nanos(result.Timing.Min), nanos(result.Timing.Max), nanos(result.Timing.Mean))
	}
	if !result.Stable {
		sb.WriteString(w.paint("Verdict changed between iterations", styleFail))
		sb.WriteString("\n")
	}
	for _, d := range result.Discrepancies {
		fmt.Fprintf(sb, "  [%s] %s\n", d.Kind, d.Description)
	}
}

// WriteBench outputs the bench matrix and per-algorithm summary.
func (w *SimpleWriter) WriteBench(report *model.BenchReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(w.paint("BENCH", styleHeading))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Run ID:      %s\n", report.RunID)
	fmt.Fprintf(&sb, "Started:     %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "Duration:    %s\n", report.Duration())
	fmt.Fprintf(&sb, "Iterations:  %d\n\n", report.Iterations)

	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.Algorithm,
			r.Pair,
			strconv.Itoa(r.LengthA),
			strconv.Itoa(r.LengthB),
			yesNo(r.IsAnagram),
			yesNo(r.Expected),
			yesNo(r.GroundTruth),
			nanos(r.Timing.Mean),
			w.statusCell(r),
		})
	}
	sb.WriteString(renderTable(
		[]string{"Algorithm", "Pair", "Len A", "Len B", "Anagram", "Expected", "Reference", "Mean (ns)", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	sb.WriteString("\n\n")

	w.writeSummary(&sb, report.Summary)
	w.writeDiscrepancies(&sb, report)

	return w.writeString(sb.String())
}

// statusCell colors the status label.
func (w *SimpleWriter) statusCell(r *model.Result) string {
	status := resultStatus(r)
	switch status {
	case statusOK:
		return w.paint(status, stylePass)
	case statusDocumented:
		return w.paint(status, styleHeading)
	default:
		return w.paint(status, styleFail)
	}
}

// writeSummary writes the per-algorithm summary table.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary model.Summary) {
	rows := make([][]string, 0, len(summary.Algorithms))
	for _, as := range summary.Algorithms {
		rows = append(rows, []string{
			as.Algorithm,
			strconv.Itoa(as.Runs),
			strconv.Itoa(as.Agreements),
			strconv.Itoa(as.Discrepancies),
			strconv.Itoa(as.Documented),
			strconv.Itoa(as.Errors),
			nanos(as.MeanElapsed),
		})
	}
	sb.WriteString(renderTable(
		[]string{"Algorithm", "Runs", "Agree", "Discrepancies", "Documented", "Errors", "Mean (ns)"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Total: %d results, %d discrepancies, %d errors\n",
		summary.TotalResults, summary.Discrepancies, summary.Errors)
}

// writeDiscrepancies lists discrepancy descriptions. Documented ones are
// listed only in verbose mode.
func (w *SimpleWriter) writeDiscrepancies(sb *strings.Builder, report *model.BenchReport) {
	var lines []string
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		if r.Error != "" {
			lines = append(lines, w.paint(fmt.Sprintf("  [error] %s/%s: %s", r.Algorithm, r.Pair, r.Error), styleFail))
			continue
		}
		for _, d := range r.Discrepancies {
			if d.Documented && !w.verbose {
				continue
			}
			line := fmt.Sprintf("  [%s] %s: %s", d.Kind, r.Pair, d.Description)
			if !d.Documented {
				line = w.paint(line, styleFail)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return
	}

	sb.WriteString("\nDiscrepancies:\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// WriteComparison outputs a run-to-run comparison.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder

	sb.WriteString("Bench Comparison\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Timing:        %s\n", w.direction(c.Direction))
	fmt.Fprintf(&sb, "Previous run:  %s  %s\n", c.Previous.RunID, c.Previous.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Current run:   %s  %s\n", c.Current.RunID, c.Current.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Verdict changes: %d\n\n", c.VerdictChanges)

	rows := make([][]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		verdict := yesNo(e.CurrentVerdict)
		if e.VerdictChanged {
			verdict = w.paint(yesNo(e.PreviousVerdict)+" -> "+yesNo(e.CurrentVerdict), styleFail)
		}
		rows = append(rows, []string{
			e.Algorithm,
			e.Pair,
			verdict,
			nanos(e.PreviousMean),
			nanos(e.CurrentMean),
			signedNanos(e.Delta),
			w.direction(e.Direction),
		})
	}
	sb.WriteString(renderTable(
		[]string{"Algorithm", "Pair", "Anagram", "Previous (ns)", "Current (ns)", "Delta", "Direction"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total mean: %s -> %s ns (%s)\n",
		nanos(c.PreviousTotal), nanos(c.CurrentTotal), signedNanos(c.TotalDelta))

	if len(c.Added) > 0 {
		fmt.Fprintf(&sb, "\nAdded (%d):\n", len(c.Added))
		for _, key := range c.Added {
			fmt.Fprintf(&sb, "  [+] %s\n", key)
		}
	}
	if len(c.Removed) > 0 {
		fmt.Fprintf(&sb, "\nRemoved (%d):\n", len(c.Removed))
		for _, key := range c.Removed {
			fmt.Fprintf(&sb, "  [-] %s\n", key)
		}
	}

	return w.writeString(sb.String())
}

// direction colors a timing direction.
func (w *SimpleWriter) direction(d string) string {
	switch d {
	case model.DirectionFaster:
		return w.paint(strings.ToUpper(d), stylePass)
	case model.DirectionSlower:
		return w.paint(strings.ToUpper(d), styleFail)
	default:
		return strings.ToUpper(d)
	}
}
