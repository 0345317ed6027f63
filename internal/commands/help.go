package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for meetsync",
	Long:  `Display detailed help for all meetsync commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
meetsync - meeting transcript sync for your work memory

COMMANDS:

  sync                    Run the sync pipeline once
    -d, --date            Sync a specific day (YYYY-MM-DD, default today)
    -r, --recent          Sync meetings ended in the last N minutes
    --doc-id              Sync one specific recording
    --dry-run             Show what would be synced

    Split recordings are merged back into one meeting, attendees are
    deduplicated by email, and each meeting is written exactly once.

  daemon                  Calendar-anchored daemon
      Ticks once a minute; syncs each meeting a few minutes after its
      scheduled end, once the transcript shows up.

  watch                   Change-anchored daemon
      Watches the recording cache file and syncs transcripts as they
      appear. Falls back to polling without filesystem notifications.

  list-today              Today's calendar events and sync schedule
  splits                  Show recordings detected as continuations

  people                  List person profiles from meeting attendance
    -t, --type            Filter: internal | external

  setup                   Interactive configuration wizard
    --show                Print the current configuration

  version                 Print version information
  help                    Show this help

CONFIGURATION:

  ~/.config/meetsync/config.toml, or environment overrides:
  MEETSYNC_CACHE_PATH, MEETSYNC_MEMORY_ROOT,
  MEETSYNC_USER_EMAIL, MEETSYNC_ORG_DOMAIN

`)
}
