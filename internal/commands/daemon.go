package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meetsync/internal/daemon"
	"meetsync/internal/db"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the calendar-anchored sync daemon",
	Long: `Watch the calendar and sync each meeting's transcript shortly after the
meeting's scheduled end. The daemon ticks once a minute, waits a grace
period after each event ends so the recording app can finish the
transcript, and syncs each meeting exactly once.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		grace := time.Duration(e.cfg.SyncDelayMinutes) * time.Minute
		scheduler := daemon.NewScheduler(e.loader, e.syncer, e.log, grace, time.Minute)

		e.log.Infof("memory root: %s", e.cfg.MemoryRoot)
		runUntilSignal(func(ctx context.Context) error {
			return scheduler.Run(ctx)
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the recording cache and sync new transcripts",
	Long: `Watch the recording app's cache file for changes and sync any transcript
that newly appears. More responsive than the calendar daemon since it
reacts to transcripts actually arriving; falls back to polling when
filesystem notifications are unavailable.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		watcher := &daemon.Watcher{
			CachePath: e.cfg.CachePath,
			Source:    e.loader,
			Syncer:    e.syncer,
			Log:       e.log,
			Grace:     time.Duration(e.cfg.SyncDelayMinutes) * time.Minute,
			Cooldown:  time.Duration(e.cfg.CooldownSeconds) * time.Second,
			Settle:    time.Duration(e.cfg.SettleSeconds) * time.Second,
			SyncedIDs: db.SyncedDocIDs,
		}

		e.log.Infof("memory root: %s", e.cfg.MemoryRoot)
		runUntilSignal(func(ctx context.Context) error {
			return watcher.Run(ctx)
		})
	},
}

// runUntilSignal runs fn with a context cancelled on SIGINT/SIGTERM.
func runUntilSignal(fn func(ctx context.Context) error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
