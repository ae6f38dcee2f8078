package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/config"
	"github.com/nao1215/problemreg/internal/log"
)

// getBoolFlag retrieves a bool flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getStringFlag retrieves a string flag from the command or the root's persistent flags.
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// loadConfig builds the configuration from defaults, the configuration
// file and the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getStringFlag(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.NoColor = getBoolFlag(cmd, "no-color")

	return cfg, nil
}

// setupLogger creates the logger for a command run.
// Logs go to stderr so that stdout carries only the command output.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// loadRegistry loads the configured catalog, falling back to the embedded one.
func loadRegistry(cfg *config.Config, logger *slog.Logger) (*catalog.Registry, error) {
	if cfg.CatalogPath == "" {
		logger.Debug("loading embedded catalog")
		reg, err := catalog.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return reg, nil
	}

	logger.Debug("loading catalog", "path", cfg.CatalogPath)
	reg, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogPath, err)
	}
	return reg, nil
}

// useColor reports whether console output should be colored.
// color.NoColor is set when stdout is not a terminal or NO_COLOR is set.
func useColor(cfg *config.Config) bool {
	return !cfg.NoColor && !color.NoColor
}
