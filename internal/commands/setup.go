package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meetsync/internal/config"
	"meetsync/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure meetsync interactively",
	Long: `Walk through meetsync's configuration: where the recording cache lives,
where the memory root should be, and which email identifies you (so your
own attendance is never logged).

The result is written to ~/.config/meetsync/config.toml.`,
	Run: func(cmd *cobra.Command, args []string) {
		show, _ := cmd.Flags().GetBool("show")
		if show {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Config file: %s\n", orUnset(config.FilePath()))
			fmt.Printf("  Cache path:  %s\n", cfg.CachePath)
			fmt.Printf("  Memory root: %s\n", cfg.MemoryRoot)
			fmt.Printf("  User email:  %s\n", orUnset(cfg.UserEmail))
			fmt.Printf("  Org domain:  %s\n", orUnset(cfg.OrgDomain))
			fmt.Printf("  Sync delay:  %d min\n", cfg.SyncDelayMinutes)
			return
		}

		if err := tui.RunSetupTUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func init() {
	setupCmd.Flags().Bool("show", false, "Print the current configuration instead of editing it")
}
