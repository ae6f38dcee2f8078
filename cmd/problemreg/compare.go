package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/database"
	"github.com/nao1215/problemreg/internal/model"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare export snapshots",
		Long: `Compare shows how the catalog changed between two recorded exports:
- problems added and removed
- changes in the number of problems per task type and application
- whether the catalog content changed at all

By default the latest two snapshots are compared. Use --with to compare
the latest snapshot with a specific one (an id prefix is enough).

Examples:
  # Compare the latest two snapshots
  problemreg compare

  # Compare with a specific snapshot
  problemreg compare --with 3f2a9c1e

  # Output comparison in JSON format
  problemreg compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("with", "w", "",
		"Compare the latest snapshot with this snapshot id (see 'problemreg history')")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	withID, err := cmd.Flags().GetString("with")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return errors.New("--json and --markdown cannot be used together")
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	previous, current, err := selectSnapshots(cmd.Context(), db, withID)
	if err != nil {
		return err
	}

	comparison := database.Compare(previous, current)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return outputComparisonJSON(out, comparison)
	case markdownOutput:
		return outputComparisonMarkdown(out, comparison)
	default:
		return outputComparisonText(out, comparison)
	}
}

// selectSnapshots returns the previous and current snapshots to compare.
func selectSnapshots(ctx context.Context, db *database.SnapshotDB, withID string) (*database.Snapshot, *database.Snapshot, error) {
	latest, err := db.LatestSnapshots(ctx, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	if len(latest) == 0 {
		return nil, nil, errors.New("no snapshots found (use 'problemreg export --save' to record one)")
	}
	current := latest[0]

	if withID == "" {
		if len(latest) < 2 {
			return nil, nil, fmt.Errorf("at least 2 snapshots are required for comparison (found %d)", len(latest))
		}
		return latest[1], current, nil
	}

	previous, err := db.GetSnapshot(ctx, withID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get snapshot %s: %w", withID, err)
	}
	if previous == nil {
		return nil, nil, fmt.Errorf("snapshot %s not found", withID)
	}
	return previous, current, nil
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(w io.Writer, result *database.Comparison) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(w io.Writer, result *database.Comparison) error {
	fmt.Fprintf(w, "# Snapshot Comparison\n\n")
	fmt.Fprintf(w, "**Catalog:** %s\n\n", formatCatalogStatus(result))

	fmt.Fprintln(w, "| Metric | Previous | Current | Change |")
	fmt.Fprintln(w, "|--------|----------|---------|--------|")
	fmt.Fprintf(w, "| Snapshot | `%s` | `%s` | - |\n",
		shortDigest(result.Previous.ID), shortDigest(result.Current.ID))
	fmt.Fprintf(w, "| Date | %s | %s | - |\n",
		result.Previous.CreatedAt.Local().Format("2006-01-02 15:04"),
		result.Current.CreatedAt.Local().Format("2006-01-02 15:04"))
	for _, d := range result.ByTask {
		fmt.Fprintf(w, "| %s | %d | %d | %s |\n",
			model.TaskKind(d.Key).Title(), d.Previous, d.Current, formatDelta(d.Change()))
	}
	fmt.Fprintf(w, "| **Total** | **%d** | **%d** | **%s** |\n",
		result.Previous.Total, result.Current.Total,
		formatDelta(result.Current.Total-result.Previous.Total))

	if len(result.Added) > 0 {
		fmt.Fprintf(w, "\n## Added Problems (%d)\n\n", len(result.Added))
		for _, id := range result.Added {
			fmt.Fprintf(w, "- `%s`\n", id)
		}
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(w, "\n## Removed Problems (%d)\n\n", len(result.Removed))
		for _, id := range result.Removed {
			fmt.Fprintf(w, "- ~~`%s`~~\n", id)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(w, "\n---\n\n*%d problems unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(w io.Writer, result *database.Comparison) error {
	fmt.Fprintln(w, "Snapshot Comparison")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\nCatalog: %s\n", formatCatalogStatus(result))

	fmt.Fprintf(w, "\nPrevious snapshot: %s  %s\n", result.Previous.ID,
		result.Previous.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Current snapshot:  %s  %s\n", result.Current.ID,
		result.Current.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\nProblems by Task Type:")
	fmt.Fprintf(w, "  %-14s  %-10s  %-10s  %-10s\n", "Task", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 49))
	for _, d := range result.ByTask {
		fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n",
			model.TaskKind(d.Key).Title(), d.Previous, d.Current, formatDelta(d.Change()))
	}
	fmt.Fprintln(w, "  "+strings.Repeat("-", 49))
	fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n", "Total",
		result.Previous.Total, result.Current.Total,
		formatDelta(result.Current.Total-result.Previous.Total))

	var appChanges []database.Delta
	for _, d := range result.ByApp {
		if d.Change() != 0 {
			appChanges = append(appChanges, d)
		}
	}
	if len(appChanges) > 0 {
		fmt.Fprintln(w, "\nApplications changed:")
		for _, d := range appChanges {
			fmt.Fprintf(w, "  %s: %d -> %d (%s)\n", d.Key, d.Previous, d.Current, formatDelta(d.Change()))
		}
	}

	if len(result.Added) > 0 {
		fmt.Fprintf(w, "\nAdded Problems (%d):\n", len(result.Added))
		for _, id := range result.Added {
			fmt.Fprintf(w, "  [+] %s\n", id)
		}
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(w, "\nRemoved Problems (%d):\n", len(result.Removed))
		for _, id := range result.Removed {
			fmt.Fprintf(w, "  [-] %s\n", id)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(w, "\nUnchanged: %d problems\n", result.UnchangedCount)
	}

	return nil
}

// formatCatalogStatus describes whether the catalog content changed.
func formatCatalogStatus(result *database.Comparison) string {
	if !result.CatalogChanged {
		return "UNCHANGED"
	}
	return "CHANGED"
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
