package config

// File represents the structure of the .problemreg configuration file.
// Empty fields leave the corresponding Config value untouched.
type File struct {
	// OutputDir is the directory export files are written to.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Formats lists the export formats.
	Formats []string `yaml:"formats,omitempty"`

	// Files overrides individual export file names.
	Files FileNames `yaml:"files,omitempty"`

	// Catalog is an external YAML catalog path.
	Catalog string `yaml:"catalog,omitempty"`

	// Concurrency is the number of files written at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// SaveHistory records export snapshots. A pointer distinguishes an
	// explicit false from an absent key.
	SaveHistory *bool `yaml:"save_history,omitempty"`

	// DBDir is the directory holding the history database.
	DBDir string `yaml:"db_dir,omitempty"`
}

// Apply overlays the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if len(f.Formats) > 0 {
		cfg.Formats = append([]string(nil), f.Formats...)
	}
	if f.Files.JSON != "" {
		cfg.Files.JSON = f.Files.JSON
	}
	if f.Files.CSV != "" {
		cfg.Files.CSV = f.Files.CSV
	}
	if f.Files.Text != "" {
		cfg.Files.Text = f.Files.Text
	}
	if f.Files.Markdown != "" {
		cfg.Files.Markdown = f.Files.Markdown
	}
	if f.Catalog != "" {
		cfg.CatalogPath = f.Catalog
	}
	if f.Concurrency != 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.SaveHistory != nil {
		cfg.SaveHistory = *f.SaveHistory
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
}
