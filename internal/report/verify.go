package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/nao1215/problemreg/internal/model"
)

var (
	// sectionPattern matches "DETECTION PROBLEMS (34)".
	sectionPattern = regexp.MustCompile(`^([A-Z]+) PROBLEMS \((\d+)\)$`)

	// blockPattern matches the first line of a record block as written with
	// "%3d. ", e.g. "  1. [K8s] some-id" or "123. [Docker] other-id".
	blockPattern = regexp.MustCompile(`^(?:  [1-9]| [1-9]\d|[1-9]\d{2,})\. \[(K8s|Docker)\] \S+$`)
)

// CountTextBlocks counts the record blocks listed under each task section
// of a text report.
func CountTextBlocks(r io.Reader) (map[model.TaskKind]int, error) {
	counts := make(map[model.TaskKind]int)
	var current model.TaskKind

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			kind, err := model.ParseTaskKind(strings.ToLower(m[1]))
			if err != nil {
				return nil, fmt.Errorf("text report section: %w", err)
			}
			current = kind
			counts[current] = 0
			continue
		}
		if line == "SUMMARY" {
			current = ""
			continue
		}
		if current != "" && blockPattern.MatchString(line) {
			counts[current]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text report: %w", err)
	}

	return counts, nil
}

// Verify checks that a JSON document, the rows of a CSV export and the
// block counts of a text report agree. A nil rows or textCounts skips that
// check. Every disagreement is reported; the returned error wraps ErrInconsistent.
func Verify(doc *Document, rows []model.Problem, textCounts map[model.TaskKind]int) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...)))
	}

	s := doc.Summary
	if s.Total != len(doc.Problems) {
		fail("summary total %d != %d problems", s.Total, len(doc.Problems))
	}
	if sum := s.ByTask.Sum(); sum != s.Total {
		fail("by_task sums to %d, total is %d", sum, s.Total)
	}
	if sum := s.ByApp.Sum(); sum != s.Total {
		fail("by_app sums to %d, total is %d", sum, s.Total)
	}

	if rows != nil {
		if len(rows) != len(doc.Problems) {
			fail("CSV has %d rows, JSON has %d problems", len(rows), len(doc.Problems))
		} else {
			for i := range rows {
				if !slices.Equal(rows[i].Row(), doc.Problems[i].Row()) {
					fail("row %d (%s) differs between CSV and JSON", i+1, rows[i].ID)
				}
			}
		}
	}

	if textCounts != nil {
		for _, kind := range model.TaskKinds() {
			if got, want := textCounts[kind], s.TaskCount(kind); got != want {
				fail("text report lists %d %s problems, summary has %d", got, kind, want)
			}
		}
	}

	return errors.Join(errs...)
}

// VerifyFiles reads the JSON, CSV and text exports from disk and verifies
// them. An empty path skips that file.
func VerifyFiles(jsonPath, csvPath, textPath string) error {
	f, err := os.Open(jsonPath) //nolint:gosec // Path comes from the export configuration
	if err != nil {
		return err
	}
	doc, err := ReadJSON(f)
	_ = f.Close() //nolint:errcheck // Read-only file
	if err != nil {
		return err
	}

	var rows []model.Problem
	if csvPath != "" {
		f, err := os.Open(csvPath) //nolint:gosec // Path comes from the export configuration
		if err != nil {
			return err
		}
		rows, err = ReadCSV(f)
		_ = f.Close() //nolint:errcheck // Read-only file
		if err != nil {
			return err
		}
	}

	var textCounts map[model.TaskKind]int
	if textPath != "" {
		f, err := os.Open(textPath) //nolint:gosec // Path comes from the export configuration
		if err != nil {
			return err
		}
		textCounts, err = CountTextBlocks(f)
		_ = f.Close() //nolint:errcheck // Read-only file
		if err != nil {
			return err
		}
	}

	return Verify(doc, rows, textCounts)
}
