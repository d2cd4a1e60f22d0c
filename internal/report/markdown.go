package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/gregallentrester/anagram/internal/anagram"
	"github.com/gregallentrester/anagram/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteResult outputs a single result in Markdown format.
func (w *MarkdownWriter) WriteResult(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Anagram Check")
	md.PlainText("")

	rows := [][]string{
		{"Algorithm", "`" + result.Algorithm + "`"},
		{"Pair", result.Pair + " (" + result.Model + ")"},
		{"Lengths", strconv.Itoa(result.LengthA) + " / " + strconv.Itoa(result.LengthB)},
		{"Verdict", result.Verdict()},
		{"Expected", model.VerdictText(result.Expected)},
		{"Reference", model.VerdictText(result.GroundTruth)},
		{"Iterations", strconv.Itoa(result.Iterations)},
		{"Elapsed (ns)", nanos(result.Timing.Mean)},
	}
	if result.Iterations > 1 {
		rows = append(rows,
			[]string{"Min (ns)", nanos(result.Timing.Min)},
			[]string{"Max (ns)", nanos(result.Timing.Max)},
		)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeResultAlert(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResultAlert writes an alert for the result's status.
func (w *MarkdownWriter) writeResultAlert(md *markdown.Markdown, result *model.Result) {
	switch resultStatus(result) {
	case statusError:
		md.Cautionf("Comparison failed: %s", result.Error)
	case statusDiscrepancy:
		md.Warningf("%s disagrees with the reference verdict and has no documented limitation.", result.Algorithm)
	case statusDocumented:
		md.Note(result.Discrepancies[0].Description)
	default:
		md.Tip("The verdict matches both the expected and the reference verdict.")
	}
	md.PlainText("")
}

// WriteBench outputs a bench run in Markdown format.
func (w *MarkdownWriter) WriteBench(report *model.BenchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeBenchHeader(md, report)
	w.writeBenchResults(md, report)
	w.writeBenchSummary(md, report.Summary)
	w.writeLimitations(md, report.Summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeBenchHeader writes the run metadata table.
func (w *MarkdownWriter) writeBenchHeader(md *markdown.Markdown, report *model.BenchReport) {
	md.H1("Anagram Bench Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.RunID + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration().String()},
			{"Iterations", strconv.Itoa(report.Iterations)},
			{"Results", strconv.Itoa(report.Summary.TotalResults)},
		},
	})
	md.PlainText("")
}

// writeBenchResults writes one table row per result.
func (w *MarkdownWriter) writeBenchResults(md *markdown.Markdown, report *model.BenchReport) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.Algorithm,
			"`" + r.Pair + "`",
			strconv.Itoa(r.LengthA) + " / " + strconv.Itoa(r.LengthB),
			yesNo(r.IsAnagram),
			yesNo(r.Expected),
			yesNo(r.GroundTruth),
			nanos(r.Timing.Mean),
			statusBadge(resultStatus(r)),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Algorithm", "Pair", "Lengths", "Anagram", "Expected", "Reference", "Mean (ns)", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusBadge decorates a status label.
func statusBadge(status string) string {
	switch status {
	case statusOK:
		return "✅ ok"
	case statusDocumented:
		return "⚠️ documented"
	case statusDiscrepancy:
		return "❌ discrepancy"
	default:
		return "💥 error"
	}
}

// writeBenchSummary writes the per-algorithm table, pie chart and alert.
func (w *MarkdownWriter) writeBenchSummary(md *markdown.Markdown, summary model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Algorithms)+1)
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
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(summary.TotalResults) + "**",
		"-",
		"**" + strconv.Itoa(summary.Discrepancies) + "**",
		"-",
		"**" + strconv.Itoa(summary.Errors) + "**",
		"-",
	})

	md.Table(markdown.TableSet{
		Header: []string{"Algorithm", "Runs", "Agree", "Discrepancies", "Documented", "Errors", "Mean (ns)"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, summary)
	w.writeBenchAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of each algorithm's share of
// the mean elapsed time.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Mean Time Share (ns)"),
		piechart.WithShowData(true),
	)

	plotted := 0
	for _, as := range summary.Algorithms {
		if as.MeanElapsed <= 0 {
			continue
		}
		chart.LabelAndIntValue(as.Algorithm, uint64(as.MeanElapsed.Nanoseconds()))
		plotted++
	}
	if plotted == 0 {
		return
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeBenchAlert writes an alert based on discrepancy and error counts.
func (w *MarkdownWriter) writeBenchAlert(md *markdown.Markdown, summary model.Summary) {
	undocumented := 0
	for _, as := range summary.Algorithms {
		undocumented += as.Undocumented()
	}

	switch {
	case undocumented > 0:
		md.Cautionf("%d result(s) disagree with the reference without a documented limitation.", undocumented)
	case summary.Errors > 0:
		md.Warningf("%d comparison(s) failed before completing.", summary.Errors)
	case summary.Discrepancies > 0:
		md.Importantf("%d discrepancy(ies) found, all explained by documented limitations.", summary.Discrepancies)
	default:
		md.Tip("Every algorithm agrees with the reference verdict.")
	}
	md.PlainText("")
}

// writeLimitations describes the limitation of every flawed algorithm in
// the run.
func (w *MarkdownWriter) writeLimitations(md *markdown.Markdown, summary model.Summary) {
	var written bool
	for _, as := range summary.Algorithms {
		alg, err := anagram.ParseAlgorithm(as.Algorithm)
		if err != nil || !alg.Flawed() {
			continue
		}
		if !written {
			md.H2("Known Limitations")
			md.PlainText("")
			written = true
		}
		md.Details(alg.String(), alg.Limitation())
	}
	if written {
		md.PlainText("")
	}
}

// WriteComparison outputs a run-to-run comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Bench Comparison")
	md.PlainText("")
	md.PlainTextf("**Timing:** %s", directionBadge(c.Direction))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows: [][]string{
			{"Run ID", "`" + c.Previous.RunID + "`", "`" + c.Current.RunID + "`", "-"},
			{"Date", c.Previous.StartedAt.Format("2006-01-02 15:04"), c.Current.StartedAt.Format("2006-01-02 15:04"), "-"},
			{"Results", strconv.Itoa(c.Previous.Results), strconv.Itoa(c.Current.Results), "-"},
			{"Discrepancies", strconv.Itoa(c.Previous.Discrepancies), strconv.Itoa(c.Current.Discrepancies),
				signedInt(c.Current.Discrepancies - c.Previous.Discrepancies)},
			{"**Total mean (ns)**", "**" + nanos(c.PreviousTotal) + "**", "**" + nanos(c.CurrentTotal) + "**",
				"**" + signedNanos(c.TotalDelta) + "**"},
		},
	})
	md.PlainText("")

	if c.VerdictChanges > 0 {
		md.Warningf("%d verdict(s) changed between runs.", c.VerdictChanges)
		md.PlainText("")
	}

	md.H2("Entries")
	md.PlainText("")
	rows := make([][]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		verdict := yesNo(e.CurrentVerdict)
		if e.VerdictChanged {
			verdict = "**" + yesNo(e.PreviousVerdict) + " → " + yesNo(e.CurrentVerdict) + "**"
		}
		rows = append(rows, []string{
			e.Algorithm,
			"`" + e.Pair + "`",
			verdict,
			nanos(e.PreviousMean),
			nanos(e.CurrentMean),
			signedNanos(e.Delta),
			e.Direction,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Algorithm", "Pair", "Anagram", "Previous (ns)", "Current (ns)", "Delta", "Direction"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(c.Added) > 0 {
		md.H2("Added (" + strconv.Itoa(len(c.Added)) + ")")
		md.PlainText("")
		md.BulletList(c.Added...)
		md.PlainText("")
	}
	if len(c.Removed) > 0 {
		md.H2("Removed (" + strconv.Itoa(len(c.Removed)) + ")")
		md.PlainText("")
		md.BulletList(c.Removed...)
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// directionBadge decorates a timing direction.
func directionBadge(direction string) string {
	switch direction {
	case model.DirectionFaster:
		return "🟢 FASTER"
	case model.DirectionSlower:
		return "🔴 SLOWER"
	default:
		return "⚪ UNCHANGED"
	}
}

// signedInt formats n with an explicit sign.
func signedInt(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by anagram*")
}
