package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// MarkdownWriter outputs the registry as GitHub Flavored Markdown with tables
// per task kind and a mermaid pie chart of the task distribution.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the registry in Markdown format.
func (w *MarkdownWriter) Write(reg *catalog.Registry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("AIOpsLab Problem Registry")
	md.PlainText("")

	w.writeTaskTypes(md, reg.TaskTypes())
	w.writeDistribution(md, reg.Summary())
	w.writeProblems(md, reg)
	w.writeSummary(md, reg.Summary())

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%d problems across %d applications*", reg.Len(), len(reg.Apps()))

	return len(md.String()), md.Build()
}

// writeTaskTypes writes the descriptor table.
func (w *MarkdownWriter) writeTaskTypes(md *markdown.Markdown, taskTypes model.TaskTypes) {
	md.H2("Task Types")
	md.PlainText("")

	rows := make([][]string, 0, len(taskTypes))
	for _, tt := range taskTypes {
		rows = append(rows, []string{
			tt.Kind.Title(),
			tableText(tt.Description),
			tableCode(tt.ExpectedSolutionFormat),
			tableText(tt.Metric),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Task", "Description", "Expected Solution", "Metric"},
		Rows:   rows,
	})
	md.PlainText("")

	if analysis, ok := taskTypes.Get(model.TaskAnalysis); ok {
		md.H3("Analysis Enumerations")
		md.PlainText("")
		md.PlainText("System levels:")
		md.BulletList(analysis.SystemLevels...)
		md.PlainText("")
		md.PlainText("Fault types:")
		md.BulletList(analysis.FaultTypes...)
		md.PlainText("")
	}
}

// writeDistribution writes a pie chart of problems per task kind.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Problems by Task"),
		piechart.WithShowData(true),
	)
	for _, c := range s.ByTask {
		if c.Count > 0 {
			chart.LabelAndIntValue(model.TaskKind(c.Key).Title(), uint64(c.Count))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeProblems writes one table per task kind.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, reg *catalog.Registry) {
	for _, kind := range model.TaskKinds() {
		problems := reg.ByTask(kind)
		if len(problems) == 0 {
			continue
		}

		md.H2(fmt.Sprintf("%s Problems (%d)", kind.Title(), len(problems)))
		md.PlainText("")

		rows := make([][]string, len(problems))
		for i, p := range problems {
			rows[i] = []string{
				tableCode(p.ID),
				p.Deployment.Label(),
				tableText(p.App),
				tableText(p.FaultyService),
				tableText(p.FaultType),
				tableCode(p.ExpectedSolution),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"ID", "Deployment", "Application", "Faulty Service", "Fault Type", "Expected Solution"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeSummary writes the tally tables.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")
	md.PlainTextf("Total problems: **%d**", s.Total)
	md.PlainText("")

	tables := []struct {
		title  string
		header string
		counts model.Counts
	}{
		{"By Application", "Application", s.ByApp},
		{"By System Level", "System Level", s.BySystemLevel},
		{"By Fault Category", "Fault Category", s.ByFaultCategory},
	}

	for _, t := range tables {
		md.H3(t.title)
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{t.header, "Count"},
			Rows:   countRows(t.counts),
		})
		md.PlainText("")
	}

	md.H3("By Deployment")
	md.PlainText("")
	rows := make([][]string, 0, 2)
	for _, d := range model.Deployments() {
		rows = append(rows, []string{d.Label(), strconv.Itoa(s.ByDeployment.Get(d.String()))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Deployment", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// countRows converts a tally into table rows.
func countRows(counts model.Counts) [][]string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{tableText(c.Key), strconv.Itoa(c.Count)}
	}
	return rows
}

// tableText escapes text for a table cell. Pipes would end the cell and
// line breaks the row.
func tableText(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", "<br>")
}

// tableCode renders s as a code span inside a table cell. The fence is one
// backtick longer than the longest backtick run in s.
func tableCode(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")

	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return markdown.Code(s)
	}

	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
