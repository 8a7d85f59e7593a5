// Package report renders analyzer summaries for people and for tools.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/IshaanNene/ShopScope/internal/types"
)

// Result is one analyzer's outcome for one page.
type Result struct {
	URL      string        `json:"url"                yaml:"url"`
	Analyzer string        `json:"analyzer"           yaml:"analyzer"`
	Title    string        `json:"title"              yaml:"title"`
	Summary  types.Summary `json:"summary"            yaml:"summary"`
	NoData   bool          `json:"no_data,omitempty"  yaml:"no_data,omitempty"`
	Elapsed  time.Duration `json:"elapsed_ns"         yaml:"elapsed"`
}

// NoDataMessage is shown in place of a summary when nothing was found.
const NoDataMessage = "No data found."

// ChartKind is the chart a summary can be drawn as.
type ChartKind int

const (
	// ChartNone means no value is numeric; only a notice is shown.
	ChartNone ChartKind = iota
	// ChartBar means every value is numeric.
	ChartBar
	// ChartPie means some values are numeric; the chart uses that subset.
	ChartPie
)

func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	case ChartPie:
		return "pie"
	default:
		return "none"
	}
}

// Chart picks the chart kind for a summary.
func Chart(s types.Summary) ChartKind {
	numeric := 0
	for _, p := range s {
		if p.IsNumeric() {
			numeric++
		}
	}
	switch {
	case numeric == 0:
		return ChartNone
	case numeric == len(s):
		return ChartBar
	default:
		return ChartPie
	}
}

// FormatValue renders a value for display. Floats get two decimals.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 2, 32)
	default:
		return fmt.Sprint(x)
	}
}

// Lines lists the summary as "label: value" lines.
func Lines(s types.Summary) []string {
	lines := make([]string, len(s))
	for i, p := range s {
		lines[i] = p.Label + ": " + FormatValue(p.Value)
	}
	return lines
}

// Writer outputs analysis results in one format.
type Writer interface {
	Write(results ...*Result) error
}

// Formats lists the supported output formats.
var Formats = []string{"text", "markdown", "json", "jsonl", "yaml", "csv"}

// NewWriter returns the Writer for format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return NewTextWriter(output), nil
	case "markdown", "md":
		return NewMarkdownWriter(output), nil
	case "json":
		return NewJSONWriter(output), nil
	case "jsonl":
		return NewJSONLWriter(output), nil
	case "yaml", "yml":
		return NewYAMLWriter(output), nil
	case "csv":
		return NewCSVWriter(output), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// numericPairs returns the numeric subset of s with values as float64.
func numericPairs(s types.Summary) ([]string, []float64) {
	var labels []string
	var values []float64
	for _, p := range s {
		if f, ok := p.Float(); ok {
			labels = append(labels, p.Label)
			values = append(values, f)
		}
	}
	return labels, values
}
