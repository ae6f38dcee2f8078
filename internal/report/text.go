package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// textWidth is the width of the rules framing each section.
const textWidth = 100

// textTitle is the first line of the text report.
const textTitle = "AIOpsLab Problem Registry - Complete Details"

// TextWriter outputs the layered human-readable report: header, task type
// descriptions, problems grouped by task kind and a summary section.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full text report.
func (w *TextWriter) Write(reg *catalog.Registry) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeTaskTypes(&sb, reg.TaskTypes())
	w.writeProblems(&sb, reg)
	w.writeSummary(&sb, reg.Summary())

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *TextWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", textWidth))
	sb.WriteString("\n")
	sb.WriteString(textTitle)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", textWidth))
	sb.WriteString("\n\n")
}

// writeTaskTypes writes the description of every task kind.
func (w *TextWriter) writeTaskTypes(sb *strings.Builder, taskTypes model.TaskTypes) {
	sb.WriteString("TASK TYPES\n")
	sb.WriteString(strings.Repeat("-", textWidth))
	sb.WriteString("\n\n")

	for _, tt := range taskTypes {
		fmt.Fprintf(sb, "%s:\n", tt.Kind.Upper())
		fmt.Fprintf(sb, "  Description: %s\n", tt.Description)
		fmt.Fprintf(sb, "  Expected Solution Format: %s\n", tt.ExpectedSolutionFormat)
		fmt.Fprintf(sb, "  Metric: %s\n", tt.Metric)
		if len(tt.SystemLevels) > 0 {
			fmt.Fprintf(sb, "  System Levels: %s\n", strings.Join(tt.SystemLevels, ", "))
		}
		if len(tt.FaultTypes) > 0 {
			fmt.Fprintf(sb, "  Fault Types: %s\n", strings.Join(tt.FaultTypes, ", "))
		}
		sb.WriteString("\n")
	}
}

// writeProblems writes one section per task kind in fixed order.
// Task kinds without problems are skipped.
func (w *TextWriter) writeProblems(sb *strings.Builder, reg *catalog.Registry) {
	for _, kind := range model.TaskKinds() {
		problems := reg.ByTask(kind)
		if len(problems) == 0 {
			continue
		}

		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("=", textWidth))
		sb.WriteString("\n")
		fmt.Fprintf(sb, "%s PROBLEMS (%d)\n", kind.Upper(), len(problems))
		sb.WriteString(strings.Repeat("=", textWidth))
		sb.WriteString("\n\n")

		for i, p := range problems {
			w.writeProblem(sb, i+1, p)
		}
	}
}

// continuationIndent aligns the later lines of a multi-line value under the
// first one. It starts with spaces so no continuation line can look like the
// first line of a record block.
var continuationIndent = "     │" + strings.Repeat(" ", 21)

// writeProblem writes a single labeled record block.
func (w *TextWriter) writeProblem(sb *strings.Builder, n int, p model.Problem) {
	fmt.Fprintf(sb, "%3d. %s %s\n", n, p.Deployment.Marker(), p.ID)
	fmt.Fprintf(sb, "     ├─ Application:       %s\n", p.App)
	fmt.Fprintf(sb, "     ├─ Namespace:         %s\n", p.Namespace)
	fmt.Fprintf(sb, "     ├─ Faulty Service:    %s\n", p.FaultyService)
	fmt.Fprintf(sb, "     ├─ Fault Type:        %s\n", p.FaultType)
	fmt.Fprintf(sb, "     ├─ Fault Description: %s\n", p.FaultDescription)
	fmt.Fprintf(sb, "     ├─ Workload:          %s\n", p.Workload)
	fmt.Fprintf(sb, "     ├─ Expected Solution: %s\n", strings.ReplaceAll(p.ExpectedSolution, "\n", "\n"+continuationIndent))
	fmt.Fprintf(sb, "     ├─ System Level:      %s\n", p.SystemLevel)
	fmt.Fprintf(sb, "     └─ Fault Category:    %s\n", p.FaultCategory)
	sb.WriteString("\n")
}

// writeSummary writes the totals section.
func (w *TextWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", textWidth))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("=", textWidth))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "Total Problems: %d\n\n", s.Total)

	sb.WriteString("By Task Type:\n")
	writeTaskCounts(sb, s.ByTask)

	sb.WriteString("\nBy Application:\n")
	writeCounts(sb, s.ByApp)

	sb.WriteString("\nBy System Level:\n")
	writeCounts(sb, s.BySystemLevel)

	sb.WriteString("\nBy Fault Category:\n")
	writeCounts(sb, s.ByFaultCategory)

	sb.WriteString("\nBy Deployment:\n")
	for _, d := range model.Deployments() {
		fmt.Fprintf(sb, "  - %s: %d\n", d.Label(), s.ByDeployment.Get(d.String()))
	}
}

// writeTaskCounts writes task tallies with capitalized task names.
func writeTaskCounts(sb *strings.Builder, counts model.Counts) {
	for _, c := range counts {
		fmt.Fprintf(sb, "  - %s: %d\n", model.TaskKind(c.Key).Title(), c.Count)
	}
}

// writeCounts writes one "  - key: n" line per tally entry.
func writeCounts(sb *strings.Builder, counts model.Counts) {
	for _, c := range counts {
		fmt.Fprintf(sb, "  - %s: %d\n", c.Key, c.Count)
	}
}
