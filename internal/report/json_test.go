package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/problemreg/internal/model"
)

// TestJSONWriter tests the JSON export.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	reg := loadRegistry(t)

	var buf bytes.Buffer
	n, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	t.Run("has top-level keys", func(t *testing.T) {
		t.Parallel()

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, key := range []string{"task_types", "problems", "summary"} {
			if _, ok := raw[key]; !ok {
				t.Errorf("missing key %q", key)
			}
		}
	})

	t.Run("summary sums equal total equal registry length", func(t *testing.T) {
		t.Parallel()

		doc, err := ReadJSON(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if doc.Summary.Total != reg.Len() {
			t.Errorf("total = %d, want %d", doc.Summary.Total, reg.Len())
		}
		if doc.Summary.ByTask.Sum() != doc.Summary.Total {
			t.Errorf("by_task sum = %d, total = %d", doc.Summary.ByTask.Sum(), doc.Summary.Total)
		}
		if doc.Summary.ByApp.Sum() != doc.Summary.Total {
			t.Errorf("by_app sum = %d, total = %d", doc.Summary.ByApp.Sum(), doc.Summary.Total)
		}
		if got := doc.Summary.ByApp.Get("Hotel Reservation"); got != 38 {
			t.Errorf("by_app[Hotel Reservation] = %d, want 38", got)
		}
		if len(doc.TaskTypes) != 4 {
			t.Errorf("task_types = %d entries, want 4", len(doc.TaskTypes))
		}
	})

	t.Run("by_task keeps task order", func(t *testing.T) {
		t.Parallel()

		doc, err := ReadJSON(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		keys := doc.Summary.ByTask.Keys()
		for i, kind := range model.TaskKinds() {
			if keys[i] != kind.String() {
				t.Errorf("by_task[%d] = %q, want %q", i, keys[i], kind)
			}
		}
	})

	t.Run("is indented and not HTML escaped", func(t *testing.T) {
		t.Parallel()

		out := buf.String()
		if !strings.HasPrefix(out, "{\n  \"task_types\": {\n    \"detection\": {") {
			t.Errorf("unexpected prefix: %.80s", out)
		}
		if strings.Contains(out, `<`) || strings.Contains(out, `&`) {
			t.Error("output should not be HTML escaped")
		}
		if !strings.HasSuffix(out, "}\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("problems carry deployment", func(t *testing.T) {
		t.Parallel()

		if strings.Count(buf.String(), `"deployment": "docker"`) != 2 {
			t.Error("expected two docker problems")
		}
	})
}

// TestJSONWriterCompact tests compact output without indent options.
func TestJSONWriterCompact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(createTestRegistry(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact output should be a single line: %q", buf.String())
	}
}

// TestJSONWriterDeterministic tests that two runs produce identical bytes.
func TestJSONWriterDeterministic(t *testing.T) {
	t.Parallel()

	reg := loadRegistry(t)

	var first, second bytes.Buffer
	if _, err := NewJSONWriter(&first, WithPrettyPrint()).Write(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONWriter(&second, WithPrettyPrint()).Write(reg); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("JSON output differs between runs")
	}
}
