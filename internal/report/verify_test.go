package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/problemreg/internal/model"
)

// TestVerify tests the consistency checks between exports.
func TestVerify(t *testing.T) {
	t.Parallel()

	reg := loadRegistry(t)
	textCounts := func() map[model.TaskKind]int {
		counts := make(map[model.TaskKind]int)
		for _, kind := range model.TaskKinds() {
			counts[kind] = reg.Summary().TaskCount(kind)
		}
		return counts
	}

	tests := []struct {
		name    string
		mutate  func(doc *Document, rows []model.Problem, counts map[model.TaskKind]int) []model.Problem
		wantErr bool
	}{
		{
			name: "consistent",
			mutate: func(_ *Document, rows []model.Problem, _ map[model.TaskKind]int) []model.Problem {
				return rows
			},
		},
		{
			name: "wrong total",
			mutate: func(doc *Document, rows []model.Problem, _ map[model.TaskKind]int) []model.Problem {
				doc.Summary.Total++
				return rows
			},
			wantErr: true,
		},
		{
			name: "missing CSV row",
			mutate: func(_ *Document, rows []model.Problem, _ map[model.TaskKind]int) []model.Problem {
				return rows[1:]
			},
			wantErr: true,
		},
		{
			name: "edited CSV row",
			mutate: func(_ *Document, rows []model.Problem, _ map[model.TaskKind]int) []model.Problem {
				rows[3].Namespace = "elsewhere"
				return rows
			},
			wantErr: true,
		},
		{
			name: "text section count off",
			mutate: func(_ *Document, rows []model.Problem, counts map[model.TaskKind]int) []model.Problem {
				counts[model.TaskAnalysis]--
				return rows
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := NewDocument(reg)
			counts := textCounts()
			rows := tt.mutate(doc, reg.Problems(), counts)

			err := Verify(doc, rows, counts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInconsistent) {
				t.Errorf("expected ErrInconsistent, got %v", err)
			}
		})
	}
}

// TestVerifySkipsNil tests that nil rows and counts skip their checks.
func TestVerifySkipsNil(t *testing.T) {
	t.Parallel()

	if err := Verify(NewDocument(loadRegistry(t)), nil, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestVerifyFilesDetectsTampering tests verification of edited exports.
func TestVerifyFilesDetectsTampering(t *testing.T) {
	t.Parallel()

	reg := loadRegistry(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "problems.json")
	csvPath := filepath.Join(dir, "problems.csv")

	var jsonBuf, csvBuf bytes.Buffer
	if _, err := NewJSONWriter(&jsonBuf, WithPrettyPrint()).Write(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCSVWriter(&csvBuf).Write(reg); err != nil {
		t.Fatal(err)
	}

	// Drop the last CSV row.
	lines := strings.Split(strings.TrimSuffix(csvBuf.String(), "\n"), "\n")
	tampered := strings.Join(lines[:len(lines)-1], "\n") + "\n"

	if err := os.WriteFile(jsonPath, jsonBuf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, []byte(tampered), 0600); err != nil {
		t.Fatal(err)
	}

	err := VerifyFiles(jsonPath, csvPath, "")
	if !errors.Is(err, ErrInconsistent) {
		t.Errorf("expected ErrInconsistent, got %v", err)
	}

	if err := VerifyFiles(filepath.Join(dir, "missing.json"), "", ""); err == nil {
		t.Error("expected error for missing JSON file")
	}
}
