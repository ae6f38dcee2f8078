package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// Document is the layout of the JSON export.
type Document struct {
	// TaskTypes is the descriptor table keyed by task kind.
	TaskTypes model.TaskTypes `json:"task_types"`

	// Problems lists every problem in declaration order.
	Problems []model.Problem `json:"problems"`

	// Summary carries total, by_task and by_app.
	Summary model.Summary `json:"summary"`
}

// NewDocument builds the JSON document of a registry.
func NewDocument(reg *catalog.Registry) *Document {
	return &Document{
		TaskTypes: reg.TaskTypes(),
		Problems:  reg.Problems(),
		Summary:   reg.Summary(),
	}
}

// JSONWriter outputs the registry as a single JSON document.
type JSONWriter struct {
	baseWriter

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string; empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// Output is compact unless an indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the registry's JSON document followed by a newline.
func (w *JSONWriter) Write(reg *catalog.Registry) (int, error) {
	return w.writeJSON(NewDocument(reg))
}

// writeJSON encodes v without HTML escaping and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indentString != "" || w.indentPrefix != "" {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}

	if err := enc.Encode(v); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return w.output.Write(buf.Bytes())
}

// ReadJSON decodes a JSON export.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON export: %w", err)
	}
	return &doc, nil
}
