package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/report"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that exported files agree with each other",
		Long: `Verify re-reads problems.json, problems.csv and problems.txt and checks:
- the summary total equals the number of problems
- by_task and by_app add up to the total
- every CSV row equals the corresponding JSON problem
- the text report lists as many problems per task as by_task says

The JSON file is required; a missing CSV or text file is skipped.

Examples:
  problemreg verify
  problemreg verify --dir out`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}

	cmd.Flags().StringP("dir", "d", "",
		"Directory holding the exported files (default: configured output directory)")

	return cmd
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		if cfg.OutputDir, err = cmd.Flags().GetString("dir"); err != nil {
			return err
		}
	}

	logger := setupLogger(cmd, cfg)
	out := cmd.OutOrStdout()

	jsonPath := cfg.OutputPath("json")
	csvPath := existingOrEmpty(cfg.OutputPath("csv"))
	textPath := existingOrEmpty(cfg.OutputPath("txt"))

	checked := []string{jsonPath}
	for _, p := range []string{csvPath, textPath} {
		if p != "" {
			checked = append(checked, p)
		}
	}
	logger.Debug("verifying exports", "files", checked)

	if err := report.VerifyFiles(jsonPath, csvPath, textPath); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	for _, p := range checked {
		digest, err := report.DigestFile(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-*s  blake2b-256:%s\n", maxLen(checked), filepath.Clean(p), digest[:16])
	}
	fmt.Fprintf(out, "OK: %d files are consistent\n", len(checked))
	return nil
}

// existingOrEmpty returns path if it exists and an empty string otherwise.
func existingOrEmpty(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// maxLen returns the length of the longest string.
func maxLen(values []string) int {
	n := 0
	for _, v := range values {
		n = max(n, len(filepath.Clean(v)))
	}
	return n
}
