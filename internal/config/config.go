package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "problemreg"

	// DefaultOutputDir writes exports to the current directory, the
	// historical location of problems.json, problems.csv and problems.txt.
	DefaultOutputDir = "."

	// DefaultConcurrency is the number of export files written at once.
	// Four covers every supported format.
	DefaultConcurrency = 4

	// DefaultHistoryLimit is the number of snapshots listed by default.
	DefaultHistoryLimit = 20
)

// Default export file names, keyed by format name.
const (
	DefaultJSONFile     = "problems.json"
	DefaultCSVFile      = "problems.csv"
	DefaultTextFile     = "problems.txt"
	DefaultMarkdownFile = "problems.md"
)

// DefaultFormats are the formats exported when none are configured.
var DefaultFormats = []string{"json", "csv", "txt"}

// formatAliases maps every accepted format name to its canonical name.
var formatAliases = map[string]string{
	"json":     "json",
	"csv":      "csv",
	"txt":      "txt",
	"text":     "txt",
	"md":       "md",
	"markdown": "md",
}

// FileNames holds the export file name of each format.
// Relative names are resolved against the output directory.
type FileNames struct {
	JSON     string `yaml:"json,omitempty"`
	CSV      string `yaml:"csv,omitempty"`
	Text     string `yaml:"txt,omitempty"`
	Markdown string `yaml:"md,omitempty"`
}

// Get returns the file name configured for a canonical format name.
func (f FileNames) Get(format string) string {
	switch format {
	case "json":
		return f.JSON
	case "csv":
		return f.CSV
	case "txt":
		return f.Text
	case "md":
		return f.Markdown
	default:
		return ""
	}
}

// Config holds all configuration options for problemreg.
// It is populated from defaults, the optional .problemreg file and CLI
// flags, in that order, and passed down explicitly.
type Config struct {
	// OutputDir is the directory export files are written to.
	OutputDir string

	// Formats lists the export formats in the order files are reported.
	// Accepted names are json, csv, txt (text) and md (markdown).
	Formats []string

	// Files holds the file name of each format.
	Files FileNames

	// CatalogPath is an external YAML catalog. Empty means the embedded one.
	CatalogPath string

	// Concurrency is the number of export files written at once.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// NoColor disables colored console output.
	NoColor bool

	// NoSummary suppresses the console summary after an export.
	NoSummary bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .problemreg is searched in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// SaveHistory records every export as a snapshot in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/problemreg on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Formats:   append([]string(nil), DefaultFormats...),
		Files: FileNames{
			JSON:     DefaultJSONFile,
			CSV:      DefaultCSVFile,
			Text:     DefaultTextFile,
			Markdown: DefaultMarkdownFile,
		},
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
	}
}

// OutputPath returns the path of the export file for a canonical format name.
// Absolute file names are returned unchanged.
func (c *Config) OutputPath(format string) string {
	name := c.Files.Get(format)
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	if c.OutputDir == "" || c.OutputDir == "." {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

// CanonicalFormat returns the canonical name of a format name or alias and
// whether the name is known.
func CanonicalFormat(name string) (string, bool) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// XDGDataDir returns the XDG data directory for problemreg.
// On Linux: ~/.local/share/problemreg
// On macOS: ~/Library/Application Support/problemreg
// On Windows: %LOCALAPPDATA%\problemreg
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for problemreg.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if len(c.Formats) == 0 {
		return ErrNoFormat
	}

	seen := make(map[string]bool, len(c.Formats))
	for _, name := range c.Formats {
		f, ok := CanonicalFormat(name)
		if !ok {
			return ErrUnknownFormat
		}
		if seen[f] {
			return ErrDuplicateFormat
		}
		seen[f] = true

		if c.Files.Get(f) == "" {
			return ErrNoFileName
		}
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}
