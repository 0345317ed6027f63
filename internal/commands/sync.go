package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meetsync/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync meetings from the recording cache to work memory",
	Long: `Run the reconcile-and-sync pipeline once.

Split recordings are merged, attendees deduplicated, and each eligible
meeting is written to the memory root exactly once. Already-synced
meetings are skipped silently.

Examples:
  meetsync sync                     # today's meetings
  meetsync sync --date 2026-01-29   # a specific day
  meetsync sync --recent 10         # meetings ended in the last 10 minutes
  meetsync sync --doc-id abc123     # one specific recording
  meetsync sync --dry-run           # show what would be synced`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		date, _ := cmd.Flags().GetString("date")
		recent, _ := cmd.Flags().GetInt("recent")
		docID, _ := cmd.Flags().GetString("doc-id")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		snap, err := e.loader.Load()
		if err != nil {
			// Source unavailable is fatal for a one-shot run.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		req := syncer.Request{
			Date:          date,
			RecentMinutes: recent,
			DocID:         docID,
			DryRun:        dryRun,
		}

		if docID != "" {
			if _, ok := snap.Documents[docID]; !ok {
				fmt.Fprintf(os.Stderr, "Error: document %s not found in cache\n", docID)
				os.Exit(1)
			}
		}

		result, err := e.syncer.ReconcileAndSync(snap, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if dryRun {
			fmt.Printf("Dry run: %d meeting(s) would be synced\n", len(result.Synced))
		} else {
			fmt.Printf("Done: %s\n", result.Summary())
		}
		for _, identity := range result.Synced {
			fmt.Printf("  - %s\n", identity)
		}
	},
}

func init() {
	syncCmd.Flags().StringP("date", "d", "", "Sync meetings for a date (YYYY-MM-DD, default today)")
	syncCmd.Flags().IntP("recent", "r", 0, "Sync meetings ended within the last N minutes")
	syncCmd.Flags().String("doc-id", "", "Sync one specific recording by document id")
	syncCmd.Flags().Bool("dry-run", false, "Show what would be synced without writing")
}
