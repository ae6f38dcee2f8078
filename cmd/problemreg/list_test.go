package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/problemreg/internal/model"
)

func TestListCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		count int
		first string
	}{
		{name: "all problems", args: nil, count: 89, first: "k8s_target_port-misconfig-detection-1"},
		{name: "by task", args: []string{"--task", "mitigation"}, count: 14},
		{name: "task is case insensitive", args: []string{"--task", "Analysis"}, count: 13},
		{name: "by deployment", args: []string{"--deployment", "docker"}, count: 2, first: "flower_node_stop-detection"},
		{name: "by app", args: []string{"--app", "Hotel Reservation"}, count: 38},
		{name: "combined filters", args: []string{"--app", "Flower (FL)", "--task", "localization"}, count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfgPath := writeConfig(t, t.TempDir(), "")
			args := append([]string{"list", "--config", cfgPath}, tt.args...)

			stdout, _, err := execute(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			lines := strings.Fields(stdout)
			if len(lines) != tt.count {
				t.Fatalf("expected %d ids, got %d:\n%s", tt.count, len(lines), stdout)
			}
			if tt.first != "" && lines[0] != tt.first {
				t.Errorf("expected first id %q, got %q", tt.first, lines[0])
			}
		})
	}
}

func TestListCmdLong(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, t.TempDir(), "")
	stdout, _, err := execute(t, "list", "--config", cfgPath, "--deployment", "docker", "-l")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		for _, want := range []string{"detection", "Flower (FL)", "docker"} {
			if !strings.Contains(line, want) {
				t.Errorf("line %q missing %q", line, want)
			}
		}
	}
}

func TestListCmdJSON(t *testing.T) {
	t.Parallel()

	t.Run("matching problems", func(t *testing.T) {
		t.Parallel()
		cfgPath := writeConfig(t, t.TempDir(), "")
		stdout, _, err := execute(t, "list", "--config", cfgPath, "--app", "Hotel Reservation", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var problems []model.Problem
		if err := json.Unmarshal([]byte(stdout), &problems); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(problems) != 38 {
			t.Fatalf("expected 38 problems, got %d", len(problems))
		}
		for _, p := range problems {
			if p.App != "Hotel Reservation" {
				t.Errorf("%s: unexpected app %q", p.ID, p.App)
			}
		}
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		t.Parallel()
		cfgPath := writeConfig(t, t.TempDir(), "")
		stdout, _, err := execute(t, "list", "--config", cfgPath, "--app", "Nope", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "[]\n" {
			t.Errorf("expected empty array, got %q", stdout)
		}
	})
}

func TestListCmdInvalidFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown task", args: []string{"--task", "repair"}},
		{name: "unknown deployment", args: []string{"--deployment", "vm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfgPath := writeConfig(t, t.TempDir(), "")
			args := append([]string{"list", "--config", cfgPath}, tt.args...)
			if _, _, err := execute(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
