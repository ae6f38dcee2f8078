package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/config"
)

//go:embed templates/problemreg.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new problemreg configuration file",
		Long: `Initialize creates a new .problemreg configuration file in the current directory.

The generated file documents every option with its default value:
- output directory and file names
- export formats
- external catalog
- export history

Examples:
  # Create .problemreg in current directory
  problemreg init

  # Create config file at a specific path
  problemreg init -o myconfig.yaml

  # Force overwrite existing file
  problemreg init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	content, err := configTemplate.ReadFile("templates/problemreg.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := writeTemplate(outputPath, content, force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - Output directory and file names")
	fmt.Fprintln(out, "  - Export formats (json, csv, txt, md)")
	fmt.Fprintln(out, "  - An external problem catalog")
	fmt.Fprintln(out, "  - Export history")

	return nil
}

// writeTemplate writes content to path. Without force an existing file is
// an error and is left untouched.
func writeTemplate(path string, content []byte, force bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}
