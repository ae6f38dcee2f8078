package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// CSVWriter outputs a header row followed by one row per problem, using the
// column order of model.Columns. Fields containing the delimiter, quotes or
// newlines are quoted by encoding/csv.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the registry as CSV.
func (w *CSVWriter) Write(reg *catalog.Registry) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true

	if err := cw.Write(model.Columns); err != nil {
		return 0, err
	}
	for _, p := range reg.Problems() {
		if err := cw.Write(p.Row()); err != nil {
			return 0, fmt.Errorf("failed to write row %s: %w", p.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// ReadCSV parses a CSV export back into problems.
// The header must match model.Columns exactly.
func ReadCSV(r io.Reader) ([]model.Problem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrBadHeader)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if !slices.Equal(header, model.Columns) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, header)
	}

	problems := []model.Problem{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		p, err := model.ProblemFromRow(row)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}

	return problems, nil
}
