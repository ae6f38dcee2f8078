package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for problemreg.
// Without a subcommand it exports the registry with the configured defaults.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problemreg",
		Short: "Export the AIOpsLab benchmark problem registry",
		Long: `problemreg exports the catalog of AIOpsLab benchmark problems
(detection, localization, analysis and mitigation tasks against faults
injected into sample microservice applications).

Run without a subcommand it writes problems.json, problems.csv and
problems.txt to the current directory and prints a summary.
Settings can be stored in a .problemreg file (see 'problemreg init').`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cmd, cfg)
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .problemreg in current or home directory, then XDG config)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Interrupts cancel the running export.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
