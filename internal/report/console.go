package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// consoleWidth is the width of the rules framing console output.
const consoleWidth = 70

// ConsoleWriter prints the abbreviated summary: totals by task kind,
// application and fault category.
type ConsoleWriter struct {
	baseWriter

	// color enables ANSI colors for headings.
	color bool
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithColor enables or disables colored headings.
func WithColor(enabled bool) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.color = enabled
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
// Colors are disabled unless WithColor(true) is given.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write prints the summary of the registry.
func (w *ConsoleWriter) Write(reg *catalog.Registry) (int, error) {
	var sb strings.Builder
	s := reg.Summary()
	heading := w.style(color.Bold, color.FgCyan)
	count := w.style(color.FgGreen)

	sb.WriteString(strings.Repeat("=", consoleWidth))
	sb.WriteString("\n")
	heading.Fprintln(&sb, "AIOpsLab Problem Registry") //nolint:errcheck // strings.Builder never fails
	sb.WriteString(strings.Repeat("=", consoleWidth))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "\nTotal: %s problems\n\n", count.Sprint(s.Total))

	heading.Fprintln(&sb, "By Task Type:") //nolint:errcheck // strings.Builder never fails
	for _, c := range s.ByTask {
		fmt.Fprintf(&sb, "  - %s: %s\n", model.TaskKind(c.Key).Title(), count.Sprint(c.Count))
	}

	sb.WriteString("\n")
	heading.Fprintln(&sb, "By Application:") //nolint:errcheck // strings.Builder never fails
	for _, c := range s.ByApp {
		fmt.Fprintf(&sb, "  - %s: %s\n", c.Key, count.Sprint(c.Count))
	}

	sb.WriteString("\n")
	heading.Fprintln(&sb, "By Fault Category:") //nolint:errcheck // strings.Builder never fails
	for _, c := range s.ByFaultCategory {
		fmt.Fprintf(&sb, "  - %s: %s\n", c.Key, count.Sprint(c.Count))
	}

	return w.output.Write([]byte(sb.String()))
}

// style returns a color that honors the writer's color setting regardless
// of whether stdout is a terminal.
func (w *ConsoleWriter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if w.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// WriteBanner prints the closing banner listing the files produced.
func WriteBanner(output io.Writer, results []Result) error {
	width := 0
	for _, r := range results {
		width = max(width, len(r.Path))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", consoleWidth))
	sb.WriteString("\n")
	sb.WriteString("Files created:\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "  - %-*s (%s)\n", width, r.Path, r.Format.Description())
	}
	sb.WriteString(strings.Repeat("=", consoleWidth))
	sb.WriteString("\n")

	_, err := io.WriteString(output, sb.String())
	return err
}
