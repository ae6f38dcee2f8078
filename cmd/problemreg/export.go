package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/config"
	"github.com/nao1215/problemreg/internal/database"
	"github.com/nao1215/problemreg/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the problem registry to files",
		Long: `Export writes the problem registry in every configured format and
prints a summary followed by the list of files created.

Formats:
  json  machine-readable document with task type info and summary
  csv   one row per problem, spreadsheet-friendly
  txt   human-readable detailed report
  md    Markdown report with tables and a task distribution chart

Every file is written to a temporary file first and renamed into place,
so a failed export never leaves a truncated file behind.

Examples:
  # Export json, csv and txt to the current directory
  problemreg export

  # Export every format to ./out
  problemreg export --dir out --format json,csv,txt,md

  # Export an external catalog and record a history snapshot
  problemreg export --catalog my-problems.yaml --save`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("dir", "d", config.DefaultOutputDir,
		"Output directory for exported files")
	cmd.Flags().StringSliceP("format", "F", config.DefaultFormats,
		"Export formats: json, csv, txt, md")
	cmd.Flags().String("catalog", "",
		"External YAML catalog (default: embedded catalog)")
	cmd.Flags().Bool("no-summary", false,
		"Do not print the console summary")
	cmd.Flags().Bool("save", false,
		"Record the export as a snapshot in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Number of files written at once")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExportFlags(cmd, cfg); err != nil {
		return err
	}
	return runExport(cmd.Context(), cmd, cfg)
}

// applyExportFlags overrides the configuration with explicitly set flags.
// Unset flags keep the values from the configuration file.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("dir") {
		if cfg.OutputDir, err = flags.GetString("dir"); err != nil {
			return err
		}
	}
	if flags.Changed("format") {
		if cfg.Formats, err = flags.GetStringSlice("format"); err != nil {
			return err
		}
	}
	if flags.Changed("catalog") {
		if cfg.CatalogPath, err = flags.GetString("catalog"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}
	if cfg.NoSummary, err = flags.GetBool("no-summary"); err != nil {
		return err
	}
	save, err := flags.GetBool("save")
	if err != nil {
		return err
	}
	if save {
		cfg.SaveHistory = true
	}

	return nil
}

// exportTargets converts the configured formats into export targets.
func exportTargets(cfg *config.Config) ([]report.Target, error) {
	targets := make([]report.Target, 0, len(cfg.Formats))
	for _, name := range cfg.Formats {
		canonical, ok := config.CanonicalFormat(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, name)
		}
		format, err := report.ParseFormat(canonical)
		if err != nil {
			return nil, err
		}
		targets = append(targets, report.Target{Format: format, Path: cfg.OutputPath(canonical)})
	}
	return targets, nil
}

// runExport loads the registry, writes every target, prints the summary and
// the closing banner, and records a snapshot when history is enabled.
func runExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	out := cmd.OutOrStdout()

	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	targets, err := exportTargets(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generating comprehensive problem list...\n\n")

	exporter := report.NewExporter(
		report.WithExportLogger(logger),
		report.WithExportConcurrency(cfg.Concurrency),
	)
	results, err := exporter.Export(ctx, reg, targets)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	for _, r := range results {
		fmt.Fprintf(out, "Saved to %s\n", r.Path)
	}

	if !cfg.NoSummary {
		fmt.Fprintln(out)
		if _, err := report.NewConsoleWriter(out, report.WithColor(useColor(cfg))).Write(reg); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if err := report.WriteBanner(out, results); err != nil {
		return err
	}

	if cfg.SaveHistory {
		return saveSnapshot(ctx, out, cfg, reg, results, logger)
	}
	return nil
}

// saveSnapshot records the export in the history database.
func saveSnapshot(ctx context.Context, out io.Writer, cfg *config.Config, reg *catalog.Registry, results []report.Result, logger *slog.Logger) error {
	digest, err := report.CatalogDigest(reg)
	if err != nil {
		return fmt.Errorf("failed to digest catalog: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	problems := reg.Problems()
	ids := make([]string, len(problems))
	for i, p := range problems {
		ids[i] = p.ID
	}

	files := make([]database.FileRecord, len(results))
	for i, r := range results {
		files[i] = database.FileRecord{
			Format: string(r.Format),
			Path:   r.Path,
			Bytes:  r.Bytes,
			Digest: r.Digest,
		}
	}

	snapshot := database.NewSnapshot(reg.Summary(), ids, digest, files)
	if err := db.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Debug("snapshot saved", "id", snapshot.ID, "db", db.Path())
	fmt.Fprintf(out, "Snapshot saved: %s\n", snapshot.ID)
	return nil
}
