// ABOUTME: CLI commands listing graded and ungraded races across the roster.
// ABOUTME: Prints a count header followed by one line per race.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var ungradedCmd = &cobra.Command{
	Use:   "ungraded",
	Short: "List every ungraded race",
	RunE: func(cmd *cobra.Command, args []string) error {
		printRaceReport(cmd.OutOrStdout(), "Ungraded", swimRoster.NumberOfUngradedRaces(), swimRoster.ListUngradedRaces())
		return nil
	},
}

var gradedCmd = &cobra.Command{
	Use:   "graded",
	Short: "List every graded race",
	RunE: func(cmd *cobra.Command, args []string) error {
		printRaceReport(cmd.OutOrStdout(), "Graded", swimRoster.NumberOfGradedRaces(), swimRoster.ListGradedRaces())
		return nil
	},
}

func printRaceReport(w io.Writer, label string, count int, body string) {
	fmt.Fprintf(w, "%s races: %d\n", label, count)
	if count > 0 {
		fmt.Fprint(w, body)
	}
}

func init() {
	rootCmd.AddCommand(ungradedCmd)
	rootCmd.AddCommand(gradedCmd)
}
