// ABOUTME: CLI commands for the swimmer archive lifecycle.
// ABOUTME: archive requires every race graded; activate reverses it.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a swimmer",
	Long: `Archive an active swimmer.

Only swimmers whose races are all graded can be archived. Use
'swim ungraded' to see what is still pending.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "swimmer")
		if err != nil {
			return err
		}

		s := swimRoster.FindSwimmer(id)
		switch {
		case s == nil:
			return fmt.Errorf("swimmer not found: %d", id)
		case s.Archived:
			return fmt.Errorf("swimmer %d is already archived", id)
		case !s.IsFullyGraded():
			return fmt.Errorf("swimmer %d has %d ungraded races", id, s.NumberOfUngradedRaces())
		}

		if !swimRoster.ArchiveSwimmer(id) {
			return fmt.Errorf("failed to archive swimmer %d", id)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Archived %s", s.Name)
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:     "activate <id>",
	Aliases: []string{"reinstate"},
	Short:   "Move an archived swimmer back to active",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "swimmer")
		if err != nil {
			return err
		}

		s := swimRoster.FindSwimmer(id)
		if s == nil {
			return fmt.Errorf("swimmer not found: %d", id)
		}
		if !s.Archived {
			return fmt.Errorf("swimmer %d is not archived", id)
		}

		swimRoster.ActivateSwimmer(id)
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Activated %s", s.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(activateCmd)
}
