package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/problemreg/internal/catalog"
)

// Writer renders a registry to its output destination.
// Implementations only read the registry.
type Writer interface {
	// Write outputs the registry and returns the number of bytes written.
	Write(reg *catalog.Registry) (int, error)
}

// Format identifies an export format.
type Format string

const (
	// FormatJSON is the machine-readable document with task type info.
	FormatJSON Format = "json"

	// FormatCSV is the spreadsheet-friendly table.
	FormatCSV Format = "csv"

	// FormatText is the human-readable detailed report.
	FormatText Format = "txt"

	// FormatMarkdown is the documentation-friendly report.
	FormatMarkdown Format = "md"
)

// DefaultFormats returns the formats produced when none are configured.
func DefaultFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatText}
}

// ParseFormat converts a format name (or its common alias) into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DefaultFileName returns the file name used when no name is configured.
func (f Format) DefaultFileName() string {
	return "problems." + string(f)
}

// Description returns the short description shown in the closing banner.
func (f Format) Description() string {
	switch f {
	case FormatJSON:
		return "machine-readable with task type info"
	case FormatCSV:
		return "spreadsheet-friendly"
	case FormatText:
		return "human-readable detailed report"
	case FormatMarkdown:
		return "documentation-friendly report"
	default:
		return ""
	}
}

// NewWriter returns the writer for format f writing to output.
func NewWriter(f Format, output io.Writer) (Writer, error) {
	switch f {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatCSV:
		return NewCSVWriter(output), nil
	case FormatText:
		return NewTextWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
