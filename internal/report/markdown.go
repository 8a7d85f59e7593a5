package report

import (
	"io"
	"math"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter renders results as a Markdown document with a value
// table per analyzer and a mermaid pie chart where the values are counts.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(results ...*Result) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("ShopScope Report")
	md.PlainText("")
	if len(results) > 0 {
		md.PlainTextf("Page: `%s`", results[0].URL)
		md.PlainText("")
	}

	for _, r := range results {
		w.writeResult(md, r)
	}

	return md.Build()
}

func (w *MarkdownWriter) writeResult(md *markdown.Markdown, r *Result) {
	md.H2(r.Title)
	md.PlainText("")

	if r.NoData || len(r.Summary) == 0 {
		md.Note(NoDataMessage)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Summary))
	for i, p := range r.Summary {
		rows[i] = []string{p.Label, FormatValue(p.Value)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Label", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if Chart(r.Summary) == ChartNone {
		return
	}
	if chart, ok := pieChart(r); ok {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart)
		md.PlainText("")
	}
}

// pieChart builds a mermaid pie over the numeric pairs. Mermaid slices
// take whole non-negative counts, so summaries holding fractional or
// negative values (scores, densities, seconds) get no chart.
func pieChart(r *Result) (string, bool) {
	labels, values := numericPairs(r.Summary)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(r.Title),
		piechart.WithShowData(true),
	)

	total := 0.0
	for i, v := range values {
		if v < 0 || v != math.Trunc(v) {
			return "", false
		}
		total += v
		chart.LabelAndIntValue(labels[i], uint64(v))
	}
	if total == 0 {
		return "", false
	}
	return chart.String(), true
}
