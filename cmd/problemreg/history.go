package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/problemreg/internal/config"
	"github.com/nao1215/problemreg/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded export snapshots",
		Long: `History lists the snapshots recorded by 'problemreg export --save',
newest first. Each snapshot stores the catalog digest, the per-task and
per-application counts, the problem ids and the files written.

Examples:
  problemreg history
  problemreg history -n 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of snapshots to list (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output snapshots in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// openHistory opens the existing history database for reading.
func openHistory(cmd *cobra.Command) (*database.SnapshotDB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots, err := db.ListSnapshots(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if snapshots == nil {
			snapshots = []database.SnapshotMetadata{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshots)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No snapshots found in the database.")
		fmt.Fprintln(out, "\nUse 'problemreg export --save' to record one.")
		return nil
	}

	fmt.Fprintf(out, "Export history (%d snapshots):\n\n", len(snapshots))
	fmt.Fprintf(out, "  %-36s  %-20s  %-8s  %s\n", "ID", "Date", "Problems", "Catalog")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 86))
	for _, s := range snapshots {
		fmt.Fprintf(out, "  %-36s  %-20s  %-8d  %s\n",
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Total,
			shortDigest(s.CatalogDigest),
		)
	}

	fmt.Fprintln(out, "\nUse 'problemreg compare' to compare the latest two snapshots.")
	fmt.Fprintln(out, "Use 'problemreg compare --with <id>' to compare with a specific snapshot.")
	return nil
}

// shortDigest returns the first 12 characters of a digest.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
