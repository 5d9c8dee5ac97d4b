// ABOUTME: CLI command for deleting swimmers.
// ABOUTME: --archived restricts deletion to archived swimmers.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteArchivedOnly bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a swimmer",
	Long: `Delete a swimmer and all of their races.

IDs are never reused, so deleting swimmer 3 leaves a gap.

EXAMPLES:

  swim delete 3              # Delete swimmer 3
  swim rm 3 --archived       # Delete only if swimmer 3 is archived

CAUTION:

  This permanently deletes the swimmer. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "swimmer")
		if err != nil {
			return err
		}

		s := swimRoster.FindSwimmer(id)
		if s == nil {
			return fmt.Errorf("swimmer not found: %d", id)
		}

		if deleteArchivedOnly {
			if !swimRoster.DeleteArchivedSwimmer(id) {
				return fmt.Errorf("swimmer %d is not archived", id)
			}
		} else if !swimRoster.Delete(id) {
			return fmt.Errorf("swimmer not found: %d", id)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		yellow.Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", s.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %d races removed\n", faint.Sprintf("#%d", s.ID), s.NumberOfRaces())
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteArchivedOnly, "archived", false, "only delete an archived swimmer")
	rootCmd.AddCommand(deleteCmd)
}
