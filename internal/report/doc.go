// Package report renders the problem registry in its export formats.
//
// This package contains writers for the following formats:
//   - JSONWriter: task types, problems and summary for tool integration
//   - CSVWriter: one row per problem in a fixed column order for spreadsheets
//   - TextWriter: a layered human-readable report grouped by task kind
//   - MarkdownWriter: tables and a task distribution chart for documentation
//   - ConsoleWriter: the abbreviated summary printed to the terminal
//
// Writers implement the Writer interface and only read the registry.
// Exporter writes several formats to files at once, each file atomically,
// and the read-back helpers (ReadJSON, ReadCSV, CountTextBlocks, Verify)
// check that the produced files agree with each other.
package report
