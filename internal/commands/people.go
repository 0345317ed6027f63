package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"meetsync/internal/db"
	"meetsync/internal/models"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List indexed person profiles",
	Long:  "List everyone seen as a meeting attendee, with interaction counts and recency.",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := setup(false); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		kindFilter, _ := cmd.Flags().GetString("type")

		people, err := db.ListPeople()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(people) == 0 {
			fmt.Println("No profiles yet. Run 'meetsync sync' to pick up meeting attendees.")
			return
		}

		fmt.Printf("%-25s %-30s %-10s %-12s %s\n", "NAME", "EMAIL", "TYPE", "LAST SEEN", "MEETINGS")
		fmt.Println(strings.Repeat("-", 88))

		for _, p := range people {
			if kindFilter != "" && string(p.Kind) != kindFilter {
				continue
			}

			name := p.Name
			if len(name) > 23 {
				name = name[:20] + "..."
			}
			email := p.Email
			if len(email) > 28 {
				email = email[:25] + "..."
			}

			fmt.Printf("%-25s %-30s %-10s %-12s %d\n",
				name,
				email,
				p.Kind,
				p.LastInteraction,
				p.InteractionCount)
		}
	},
}

func init() {
	peopleCmd.Flags().StringP("type", "t", "", fmt.Sprintf("Filter by type: %s or %s", models.PersonInternal, models.PersonExternal))
}
