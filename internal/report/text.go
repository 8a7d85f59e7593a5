package report

import (
	"fmt"
	"io"
	"strings"
)

const (
	barWidth    = 40
	barGlyph    = "█"
	separator   = "═"
	labelMaxLen = 28
)

// TextWriter renders results for a terminal: a header, a chart drawn
// with block characters and the value listing.
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

func (w *TextWriter) Write(results ...*Result) error {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		w.writeResult(&sb, r)
	}
	_, err := io.WriteString(w.output, sb.String())
	return err
}

func (w *TextWriter) writeResult(sb *strings.Builder, r *Result) {
	sb.WriteString(strings.Repeat(separator, 60) + "\n")
	fmt.Fprintf(sb, "  %s\n", r.Title)
	fmt.Fprintf(sb, "  %s\n", r.URL)
	sb.WriteString(strings.Repeat(separator, 60) + "\n")

	if r.NoData || len(r.Summary) == 0 {
		sb.WriteString(NoDataMessage + "\n")
		return
	}

	switch Chart(r.Summary) {
	case ChartBar:
		w.writeBars(sb, r)
	case ChartPie:
		w.writeShares(sb, r)
	default:
		sb.WriteString("(no numeric values to chart)\n")
	}

	sb.WriteString("\n")
	for _, line := range Lines(r.Summary) {
		sb.WriteString(line + "\n")
	}
}

// writeBars draws one bar per pair, scaled to the largest value.
func (w *TextWriter) writeBars(sb *strings.Builder, r *Result) {
	_, values := numericPairs(r.Summary)

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}

	for i, p := range r.Summary {
		v := values[i]
		n := 0
		if peak > 0 && v > 0 {
			n = max(1, int(v/peak*barWidth+0.5))
		}
		fmt.Fprintf(sb, "%-*s │%s %s\n", labelMaxLen, clip(p.Label), strings.Repeat(barGlyph, n), FormatValue(p.Value))
	}
}

// writeShares prints each numeric pair as a share of the numeric total.
func (w *TextWriter) writeShares(sb *strings.Builder, r *Result) {
	labels, values := numericPairs(r.Summary)

	total := 0.0
	for _, v := range values {
		total += v
	}
	for i, v := range values {
		share := 0.0
		if total > 0 {
			share = v / total * 100
		}
		fmt.Fprintf(sb, "%-*s %6.2f%%\n", labelMaxLen, clip(labels[i]), share)
	}
}

func clip(label string) string {
	r := []rune(label)
	if len(r) <= labelMaxLen {
		return label
	}
	return string(r[:labelMaxLen-1]) + "…"
}
