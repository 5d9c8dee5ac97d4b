// ABOUTME: CLI command for updating a swimmer's profile.
// ABOUTME: Leaves archive state and races untouched.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update <id> <name> <level> <category>",
	Aliases: []string{"edit"},
	Short:   "Update a swimmer's name, level and category",
	Long: `Replace a swimmer's name, level and category.

The swimmer's races and archive status are not changed.

Examples:
  swim update 0 "Michael Phelps" 5 Butterfly`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "swimmer")
		if err != nil {
			return err
		}
		name := strings.TrimSpace(args[1])
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}
		level, err := parseLevel(args[2])
		if err != nil {
			return err
		}
		category, err := validateCategory(args[3])
		if err != nil {
			return err
		}

		if !swimRoster.Update(id, models.NewSwimmer(name, level, category)) {
			return fmt.Errorf("swimmer not found: %d", id)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Updated swimmer %d", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
