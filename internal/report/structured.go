package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONWriter outputs results as an indented JSON array.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

func (w *JSONWriter) Write(results ...*Result) error {
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nonNil(results)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// YAMLWriter outputs results as a YAML sequence.
type YAMLWriter struct {
	output io.Writer
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{output: output}
}

func (w *YAMLWriter) Write(results ...*Result) error {
	enc := yaml.NewEncoder(w.output)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(results)); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

func nonNil(results []*Result) []*Result {
	if results == nil {
		return []*Result{}
	}
	return results
}
