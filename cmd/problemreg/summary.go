package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the registry summary without writing files",
		Long: `Summary prints the number of problems per task type, application and
fault category. No files are written.

Examples:
  problemreg summary
  problemreg summary --catalog my-problems.yaml`,
		Args: cobra.NoArgs,
		RunE: runSummaryCmd,
	}

	cmd.Flags().String("catalog", "",
		"External YAML catalog (default: embedded catalog)")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("catalog") {
		if cfg.CatalogPath, err = cmd.Flags().GetString("catalog"); err != nil {
			return err
		}
	}

	reg, err := loadRegistry(cfg, setupLogger(cmd, cfg))
	if err != nil {
		return err
	}

	if _, err := report.NewConsoleWriter(cmd.OutOrStdout(), report.WithColor(useColor(cfg))).Write(reg); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}
	return nil
}
