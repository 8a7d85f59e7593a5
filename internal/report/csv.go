package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

var csvHeaders = []string{"url", "analyzer", "title", "label", "value", "no_data"}

// CSVWriter outputs one row per summary pair. A result without data
// gets a single row with an empty label and value.
type CSVWriter struct {
	output io.Writer
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{output: output}
}

func (w *CSVWriter) Write(results ...*Result) error {
	cw := csv.NewWriter(w.output)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range results {
		noData := strconv.FormatBool(r.NoData)
		if r.NoData || len(r.Summary) == 0 {
			if err := cw.Write([]string{r.URL, r.Analyzer, r.Title, "", "", noData}); err != nil {
				return fmt.Errorf("write CSV row: %w", err)
			}
			continue
		}
		for _, p := range r.Summary {
			row := []string{r.URL, r.Analyzer, r.Title, p.Label, FormatValue(p.Value), noData}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONLWriter outputs one JSON object per result per line.
type JSONLWriter struct {
	output io.Writer
}

// NewJSONLWriter creates a JSONLWriter that outputs to the given writer.
func NewJSONLWriter(output io.Writer) *JSONLWriter {
	return &JSONLWriter{output: output}
}

func (w *JSONLWriter) Write(results ...*Result) error {
	enc := json.NewEncoder(w.output)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode JSONL: %w", err)
		}
	}
	return nil
}
