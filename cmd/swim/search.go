// ABOUTME: CLI commands for searching swimmers by name and races by medal.
// ABOUTME: Matches are case-insensitive substrings.
package main

import (
	"fmt"

	"github.com/harperreed/swim/internal/roster"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search",
	Aliases: []string{"find"},
	Short:   "Search swimmers or races",
}

var searchSwimmersCmd = &cobra.Command{
	Use:   "swimmers <text>",
	Short: "Find swimmers whose name contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if swimRoster.NumberOfSwimmers() == 0 {
			fmt.Fprintln(out, roster.NoSwimmerStored)
			return nil
		}

		result := swimRoster.SearchSwimmersByName(args[0])
		if result == "" {
			fmt.Fprintf(out, "No swimmers found for: %s\n", args[0])
			return nil
		}
		fmt.Fprintln(out, result)
		return nil
	},
}

var searchRacesCmd = &cobra.Command{
	Use:   "races <text>",
	Short: "Find races whose medal contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), swimRoster.SearchRaceByContents(args[0]))
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	searchCmd.AddCommand(searchSwimmersCmd)
	searchCmd.AddCommand(searchRacesCmd)
	rootCmd.AddCommand(searchCmd)
}
