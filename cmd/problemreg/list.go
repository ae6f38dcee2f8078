package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/catalog"
	"github.com/nao1215/problemreg/internal/model"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problem ids, optionally filtered",
		Long: `List prints the id of every problem matching the filters, one per line,
in catalog order. With --long the task, application and deployment are
shown too; with --json the full problem records are printed.

Examples:
  # All mitigation problems
  problemreg list --task mitigation

  # Hotel Reservation problems as JSON
  problemreg list --app "Hotel Reservation" --json

  # Problems running on Docker
  problemreg list --deployment docker`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("task", "t", "",
		"Filter by task: detection, localization, analysis, mitigation")
	cmd.Flags().StringP("app", "a", "",
		"Filter by application name")
	cmd.Flags().String("deployment", "",
		"Filter by deployment: k8s, docker")
	cmd.Flags().String("fault-category", "",
		"Filter by fault category")
	cmd.Flags().BoolP("long", "l", false,
		"Show task, application and deployment")
	cmd.Flags().BoolP("json", "j", false,
		"Output matching problems as JSON")
	cmd.Flags().String("catalog", "",
		"External YAML catalog (default: embedded catalog)")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("catalog") {
		if cfg.CatalogPath, err = cmd.Flags().GetString("catalog"); err != nil {
			return err
		}
	}

	filter, err := buildFilter(cmd)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(cfg, setupLogger(cmd, cfg))
	if err != nil {
		return err
	}
	problems := reg.Filter(filter)

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	long, err := cmd.Flags().GetBool("long")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if problems == nil {
			problems = []model.Problem{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		return encoder.Encode(problems)
	}

	for _, p := range problems {
		if long {
			fmt.Fprintf(out, "%-60s  %-12s  %-18s  %s\n", p.ID, p.Task, p.App, p.Deployment)
			continue
		}
		fmt.Fprintln(out, p.ID)
	}
	return nil
}

// buildFilter creates a registry filter from the list flags.
func buildFilter(cmd *cobra.Command) (catalog.Filter, error) {
	var filter catalog.Filter
	flags := cmd.Flags()

	task, err := flags.GetString("task")
	if err != nil {
		return filter, err
	}
	if task != "" {
		if filter.Task, err = model.ParseTaskKind(strings.ToLower(task)); err != nil {
			return filter, err
		}
	}

	if filter.App, err = flags.GetString("app"); err != nil {
		return filter, err
	}

	deployment, err := flags.GetString("deployment")
	if err != nil {
		return filter, err
	}
	if deployment != "" {
		if filter.Deployment, err = model.ParseDeployment(strings.ToLower(deployment)); err != nil {
			return filter, err
		}
	}

	if filter.FaultCategory, err = flags.GetString("fault-category"); err != nil {
		return filter, err
	}

	return filter, nil
}
