package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// TestPathHandler_ShortensHome tests home directory rewriting.
func TestPathHandler_ShortensHome(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "alice")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "path under home",
			value: filepath.Join(home, "exports", "problems.json"),
			want:  "~" + string(filepath.Separator) + filepath.Join("exports", "problems.json"),
		},
		{
			name:  "home itself",
			value: home,
			want:  "~",
		},
		{
			name:  "sibling with shared prefix",
			value: home + "2/problems.json",
			want:  home + "2/problems.json",
		},
		{
			name:  "relative path",
			value: "problems.csv",
			want:  "problems.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewPathHandler(slog.NewJSONHandler(&buf, nil), home))
			logger.Info("export written", "path", tt.value)

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("invalid log output: %v", err)
			}
			if got := entry["path"]; got != tt.want {
				t.Errorf("path = %v, want %q", got, tt.want)
			}
		})
	}
}

// TestPathHandler_GroupsAndAttrs tests rewriting inside groups and WithAttrs.
func TestPathHandler_GroupsAndAttrs(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "bob")
	target := filepath.Join(home, "problems.txt")

	var buf bytes.Buffer
	logger := slog.New(NewPathHandler(slog.NewTextHandler(&buf, nil), home)).
		With("db", filepath.Join(home, "problemreg.db")).
		WithGroup("export")
	logger.Info("done", slog.Group("file", "path", target), "bytes", 42)

	out := buf.String()
	if strings.Contains(out, home) {
		t.Errorf("home directory leaked: %s", out)
	}
	if !strings.Contains(out, "export.file.path=~") {
		t.Errorf("grouped path not rewritten: %s", out)
	}
	if !strings.Contains(out, "export.bytes=42") {
		t.Errorf("non-string attribute changed: %s", out)
	}
}

// TestPathHandler_EmptyHome tests that an unknown home disables rewriting.
func TestPathHandler_EmptyHome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPathHandler(slog.NewTextHandler(&buf, nil), ""))
	logger.Info("x", "path", "/home/carol/problems.json")

	if !strings.Contains(buf.String(), "path=/home/carol/problems.json") {
		t.Errorf("path should be unchanged: %s", buf.String())
	}
}

// TestNewLogger tests level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		json      bool
		wantDebug bool
	}{
		{"text quiet", false, false, false},
		{"text verbose", true, false, true},
		{"json quiet", false, true, false},
		{"json verbose", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)
			if tt.json {
				logger = NewJSONLogger(&buf, tt.verbose)
			}

			logger.Debug("debug message")
			logger.Warn("warn message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "warn message") {
				t.Error("warn message should always be logged")
			}
			if tt.json && !strings.HasPrefix(out, "{") {
				t.Errorf("expected JSON output, got %q", out)
			}
		})
	}
}
