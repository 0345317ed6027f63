package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"meetsync/internal/daemon"
	"meetsync/internal/granola"
	"meetsync/internal/meeting"
	"meetsync/internal/tui"
)

var listTodayCmd = &cobra.Command{
	Use:     "list-today",
	Aliases: []string{"today"},
	Short:   "List today's meetings and their sync schedule",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		snap, err := e.loader.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		now := time.Now()
		grace := time.Duration(e.cfg.SyncDelayMinutes) * time.Minute
		targets := daemon.SyncTargets(snap, now.Format("2006-01-02"), grace)

		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
		fmt.Println(headerStyle.Render(fmt.Sprintf("Today's Meetings and Sync Schedule (%s)", now.Format("2006-01-02"))))

		if len(targets) == 0 {
			fmt.Println("No meetings scheduled for today.")
			return
		}

		pastStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
		pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))

		for _, target := range targets {
			start, startOK := granola.ParseTimestamp(target.Event.Start.Value())
			end, endOK := granola.ParseTimestamp(target.Event.End.Value())

			startStr, endStr := "?", "?"
			if startOK {
				startStr = start.Format("15:04")
			}
			if endOK {
				endStr = end.Format("15:04")
			}

			status := pendingStyle.Render("PENDING")
			if target.At.Before(now) {
				status = pastStyle.Render("PAST")
			}

			fmt.Printf("\n  %s\n", target.Event.Summary)
			fmt.Printf("    Scheduled: %s - %s\n", startStr, endStr)
			fmt.Printf("    Sync at: %s [%s]\n", target.At.Format("15:04"), status)
		}
	},
}

var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "Show detected split meetings",
	Long:  "List recordings detected as continuations of another recording, grouped under their primary.",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		snap, err := e.loader.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		splits := meeting.DetectContinuations(snap)
		if len(splits) == 0 {
			fmt.Println("No split meetings detected.")
			return
		}

		fmt.Printf("Detected %d split meeting(s):\n", len(splits))
		for primaryID, contIDs := range splits {
			title := snap.Documents[primaryID].Title
			if title == "" {
				title = meeting.UntitledPlaceholder
			}
			fmt.Printf("\n  %s\n", title)
			fmt.Printf("    Primary: %s\n", primaryID)
			for _, id := range contIDs {
				fmt.Printf("    Continuation: %s\n", id)
			}
		}
	},
}
