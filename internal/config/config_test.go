package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default OutputDir is the current directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "." {
			t.Errorf("expected OutputDir to be '.', got '%s'", cfg.OutputDir)
		}
	})

	t.Run("default formats are json, csv and txt", func(t *testing.T) {
		t.Parallel()
		if diff := cmp.Diff([]string{"json", "csv", "txt"}, cfg.Formats); diff != "" {
			t.Errorf("unexpected formats (-want +got):\n%s", diff)
		}
	})

	t.Run("default file names", func(t *testing.T) {
		t.Parallel()
		want := FileNames{
			JSON:     "problems.json",
			CSV:      "problems.csv",
			Text:     "problems.txt",
			Markdown: "problems.md",
		}
		if diff := cmp.Diff(want, cfg.Files); diff != "" {
			t.Errorf("unexpected file names (-want +got):\n%s", diff)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("history is off and stored in the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("defaults validate", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("defaults are not shared", func(t *testing.T) {
		t.Parallel()
		other := NewConfig()
		other.Formats[0] = "md"
		if DefaultFormats[0] != "json" {
			t.Error("modifying a config changed DefaultFormats")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{
			name:   "markdown alias is valid",
			modify: func(c *Config) { c.Formats = []string{"markdown", "JSON"} },
		},
		{
			name:    "empty output dir",
			modify:  func(c *Config) { c.OutputDir = "" },
			wantErr: ErrNoOutputDir,
		},
		{
			name:    "no formats",
			modify:  func(c *Config) { c.Formats = nil },
			wantErr: ErrNoFormat,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Formats = []string{"xml"} },
			wantErr: ErrUnknownFormat,
		},
		{
			name:    "duplicate via alias",
			modify:  func(c *Config) { c.Formats = []string{"txt", "text"} },
			wantErr: ErrDuplicateFormat,
		},
		{
			name:    "empty file name",
			modify:  func(c *Config) { c.Files.CSV = "" },
			wantErr: ErrNoFileName,
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name: "history without db dir",
			modify: func(c *Config) {
				c.SaveHistory = true
				c.DBDir = ""
			},
			wantErr: ErrNoDBDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestOutputPath tests export path resolution.
func TestOutputPath(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if got := cfg.OutputPath("json"); got != "problems.json" {
		t.Errorf("expected problems.json, got %q", got)
	}

	cfg.OutputDir = "out"
	if got := cfg.OutputPath("txt"); got != filepath.Join("out", "problems.txt") {
		t.Errorf("unexpected path %q", got)
	}

	abs := filepath.Join(t.TempDir(), "table.csv")
	cfg.Files.CSV = abs
	if got := cfg.OutputPath("csv"); got != abs {
		t.Errorf("absolute names should be kept, got %q", got)
	}

	if got := cfg.OutputPath("xml"); got != "" {
		t.Errorf("unknown format should have no path, got %q", got)
	}
}

// TestCanonicalFormat tests format alias resolution.
func TestCanonicalFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"json", "json", true},
		{"Text", "txt", true},
		{" markdown ", "md", true},
		{"pdf", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalFormat(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalFormat(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestFileApply tests overlaying a configuration file onto defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("empty file changed config (-want +got):\n%s", diff)
		}
	})

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		save := true
		file := &File{
			OutputDir:   "exports",
			Formats:     []string{"json", "md"},
			Files:       FileNames{Markdown: "README.md"},
			Catalog:     "catalog.yaml",
			Concurrency: 2,
			SaveHistory: &save,
			DBDir:       "/tmp/history",
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.OutputDir != "exports" {
			t.Errorf("expected OutputDir exports, got %q", cfg.OutputDir)
		}
		if diff := cmp.Diff([]string{"json", "md"}, cfg.Formats); diff != "" {
			t.Errorf("unexpected formats (-want +got):\n%s", diff)
		}
		if cfg.Files.Markdown != "README.md" || cfg.Files.JSON != DefaultJSONFile {
			t.Errorf("unexpected file names: %+v", cfg.Files)
		}
		if cfg.CatalogPath != "catalog.yaml" {
			t.Errorf("expected catalog path, got %q", cfg.CatalogPath)
		}
		if cfg.Concurrency != 2 || !cfg.SaveHistory || cfg.DBDir != "/tmp/history" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("explicit false disables history", func(t *testing.T) {
		t.Parallel()

		off := false
		cfg := NewConfig()
		cfg.SaveHistory = true
		(&File{SaveHistory: &off}).Apply(cfg)
		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.problemreg")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".problemreg")
		content := `output_dir: "exports"
formats: [json, csv, txt, md]
files:
  json: registry.json
  md: registry.md
catalog: ""
save_history: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.OutputDir != "exports" {
			t.Errorf("expected output_dir exports, got %q", cfg.OutputDir)
		}
		if len(cfg.Formats) != 4 {
			t.Errorf("expected 4 formats, got %d", len(cfg.Formats))
		}
		if cfg.Files.JSON != "registry.json" || cfg.Files.Markdown != "registry.md" || cfg.Files.CSV != "" {
			t.Errorf("unexpected files: %+v", cfg.Files)
		}
		if cfg.SaveHistory == nil || !*cfg.SaveHistory {
			t.Error("expected save_history true")
		}
	})

	t.Run("empty file is valid", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".problemreg")
		if err := os.WriteFile(configPath, nil, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "" || cfg.SaveHistory != nil {
			t.Errorf("expected empty file, got %+v", cfg)
		}
	})

	t.Run("returns error for unknown keys", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".problemreg")
		if err := os.WriteFile(configPath, []byte("output: exports\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".problemreg")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("formats: [json]\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("ignores directories", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile(t.TempDir()); result != "" {
			t.Errorf("expected empty string for a directory, got %q", result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

func TestConfigCandidates(t *testing.T) {
	t.Parallel()

	candidates := configCandidates()
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}

	last := candidates[len(candidates)-1]
	if want := filepath.Join(XDGConfigDir(), XDGConfigFile); last != want {
		t.Errorf("expected XDG config file last, got %q", last)
	}
	for _, c := range candidates[:len(candidates)-1] {
		if filepath.Base(c) != DefaultConfigFile {
			t.Errorf("unexpected candidate %q", c)
		}
	}
}

// TestLoad tests building the effective configuration.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("formats: [md]\nconcurrency: 1\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"md"}, cfg.Formats); diff != "" {
			t.Errorf("unexpected formats (-want +got):\n%s", diff)
		}
		if cfg.Concurrency != 1 {
			t.Errorf("expected Concurrency 1, got %d", cfg.Concurrency)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("expected ConfigFilePath %q, got %q", configPath, cfg.ConfigFilePath)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"data":   XDGDataDir(),
		"config": XDGConfigDir(),
	} {
		if dir == "" {
			t.Errorf("expected non-empty XDG %s dir", name)
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("expected XDG %s dir to end with %s, got %s", name, AppName, dir)
		}
	}
}
