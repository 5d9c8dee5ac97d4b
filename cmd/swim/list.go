// ABOUTME: CLI command for listing swimmers.
// ABOUTME: Filters by active or archived status, with a compact one-line view.
package main

import (
	"fmt"

	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var (
	listActive   bool
	listArchived bool
	listShort    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List swimmers",
	Long: `List swimmers with their races.

OUTPUT FORMAT:

  Each swimmer prints as  ID: NAME (Level N, CATEGORY) [STATUS]
  followed by one indented line per race.

  With --short each swimmer is one line:  ID  NAME  LEVEL  CATEGORY  RACES  STATUS

EXAMPLES:

  swim list              # All swimmers
  swim list --active     # Active swimmers only
  swim list --archived   # Archived swimmers only
  swim ls -s             # Compact view`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listActive && listArchived {
			return fmt.Errorf("--active and --archived are mutually exclusive")
		}
		out := cmd.OutOrStdout()

		if listShort {
			var swimmers []*models.Swimmer
			switch {
			case listActive:
				swimmers = swimRoster.ActiveSwimmers()
			case listArchived:
				swimmers = swimRoster.ArchivedSwimmers()
			default:
				swimmers = swimRoster.Swimmers()
			}
			if len(swimmers) == 0 {
				fmt.Fprintln(out, "No swimmers found.")
				return nil
			}
			for _, s := range swimmers {
				fmt.Fprintf(out, "%s %s %d  %s %s %s\n",
					faint.Sprint(padRight(fmt.Sprintf("#%d", s.ID), 5)),
					padRight(truncate(s.Name, 24), 24),
					s.Level,
					padRight(s.Category, 13),
					padRight(fmt.Sprintf("%d races", s.NumberOfRaces()), 9),
					s.Status())
			}
			return nil
		}

		switch {
		case listActive:
			fmt.Fprintln(out, swimRoster.ListActiveSwimmers())
		case listArchived:
			fmt.Fprintln(out, swimRoster.ListArchivedSwimmers())
		default:
			fmt.Fprintln(out, swimRoster.ListAllSwimmers())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listActive, "active", false, "only active swimmers")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "only archived swimmers")
	listCmd.Flags().BoolVarP(&listShort, "short", "s", false, "one line per swimmer")
	rootCmd.AddCommand(listCmd)
}
