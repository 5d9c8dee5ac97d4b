// ABOUTME: CLI command for adding swimmers.
// ABOUTME: Validates level and category, then stores the roster.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <name> <level> <category>",
	Aliases: []string{"a"},
	Short:   "Add a swimmer",
	Long: `Add a swimmer to the roster. The new swimmer is active and gets the next free ID.

LEVEL:     1 (low) to 5 (high)
CATEGORY:  Freestyle, Backstroke, Breaststroke, Butterfly, Medley (any case)

Examples:
  swim add Michael 3 Freestyle
  swim add "Sarah Jones" 2 backstroke`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}
		level, err := parseLevel(args[1])
		if err != nil {
			return err
		}
		category, err := validateCategory(args[2])
		if err != nil {
			return err
		}

		s := models.NewSwimmer(name, level, category)
		if !swimRoster.Add(s) {
			return fmt.Errorf("failed to add swimmer")
		}
		if err := saveRoster(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Added %s", s.Name)
		fmt.Fprintf(out, "  %s Level %d, %s\n", faint.Sprintf("#%d", s.ID), s.Level, s.Category)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
