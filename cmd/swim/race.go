// ABOUTME: CLI commands for recording and grading races.
// ABOUTME: Races can only be changed on active swimmers.
package main

import (
	"fmt"

	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var (
	raceAddGraded      bool
	raceUpdateGraded   bool
	raceUpdateUngraded bool
	raceMarkGraded     bool
	raceMarkUngraded   bool
)

var raceCmd = &cobra.Command{
	Use:     "race",
	Aliases: []string{"r"},
	Short:   "Record, update, grade and list races",
	Long: `Manage the races of a swimmer.

TIME is HH:mm:ss. MEDAL is free text (Gold, Silver, Bronze, 4th, DNF...).
Races belong to one swimmer and are numbered per swimmer.

Examples:
  swim race add 0 Gold 00:00:52 Freestyle
  swim race mark 0 0 --graded
  swim race list 0`,
}

var raceAddCmd = &cobra.Command{
	Use:   "add <swimmer-id> <medal> <time> <type>",
	Short: "Add a race to an active swimmer",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := activeSwimmer(args[0])
		if err != nil {
			return err
		}

		race := models.NewRace(args[1], args[2], args[3]).WithGraded(raceAddGraded)
		if !s.AddRace(race) {
			return fmt.Errorf("failed to add race to swimmer %d", s.ID)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Added race %d for %s", race.ID, s.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", race)
		return nil
	},
}

var raceUpdateCmd = &cobra.Command{
	Use:   "update <swimmer-id> <race-id> <medal> <time> <type>",
	Short: "Replace a race's medal, time and type",
	Long: `Replace a race's medal, time and type.

The graded flag is kept unless --graded or --ungraded is given.`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		if raceUpdateGraded && raceUpdateUngraded {
			return fmt.Errorf("pass at most one of --graded or --ungraded")
		}
		s, err := activeSwimmer(args[0])
		if err != nil {
			return err
		}
		raceID, err := parseID(args[1], "race")
		if err != nil {
			return err
		}
		current := s.FindRace(raceID)
		if current == nil {
			return fmt.Errorf("race %d not found for swimmer %d", raceID, s.ID)
		}

		graded := current.Graded
		switch {
		case raceUpdateGraded:
			graded = true
		case raceUpdateUngraded:
			graded = false
		}
		data := models.NewRace(args[2], args[3], args[4]).WithGraded(graded)
		if !s.UpdateRace(raceID, data) {
			return fmt.Errorf("race %d not found for swimmer %d", raceID, s.ID)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Updated race %d for %s", raceID, s.Name)
		return nil
	},
}

var raceDeleteCmd = &cobra.Command{
	Use:     "delete <swimmer-id> <race-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a race",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := activeSwimmer(args[0])
		if err != nil {
			return err
		}
		raceID, err := parseID(args[1], "race")
		if err != nil {
			return err
		}

		if !s.DeleteRace(raceID) {
			return fmt.Errorf("race %d not found for swimmer %d", raceID, s.ID)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		yellow.Fprintf(cmd.OutOrStdout(), "✗ Deleted race %d for %s\n", raceID, s.Name)
		return nil
	},
}

var raceMarkCmd = &cobra.Command{
	Use:   "mark <swimmer-id> <race-id> --graded|--ungraded",
	Short: "Mark a race graded or ungraded",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if raceMarkGraded == raceMarkUngraded {
			return fmt.Errorf("pass exactly one of --graded or --ungraded")
		}
		s, err := activeSwimmer(args[0])
		if err != nil {
			return err
		}
		raceID, err := parseID(args[1], "race")
		if err != nil {
			return err
		}

		if !s.MarkRace(raceID, raceMarkGraded) {
			return fmt.Errorf("race %d not found for swimmer %d", raceID, s.ID)
		}
		if err := saveRoster(); err != nil {
			return err
		}

		label := "ungraded"
		if raceMarkGraded {
			label = "graded"
		}
		success(cmd.OutOrStdout(), "Marked race %d for %s %s", raceID, s.Name, label)
		return nil
	},
}

var raceListCmd = &cobra.Command{
	Use:     "list [swimmer-id]",
	Aliases: []string{"ls"},
	Short:   "List races for one swimmer or everyone",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			id, err := parseID(args[0], "swimmer")
			if err != nil {
				return err
			}
			s := swimRoster.FindSwimmer(id)
			if s == nil {
				return fmt.Errorf("swimmer not found: %d", id)
			}
			fmt.Fprintf(out, "%d: %s\n%s\n", s.ID, s.Name, s.ListRaces())
			return nil
		}

		swimmers := swimRoster.Swimmers()
		if len(swimmers) == 0 {
			fmt.Fprintln(out, "No swimmer stored")
			return nil
		}
		for _, s := range swimmers {
			fmt.Fprintf(out, "%d: %s\n%s\n", s.ID, s.Name, s.ListRaces())
		}
		return nil
	},
}

// activeSwimmer resolves an id argument to a swimmer whose races may change.
func activeSwimmer(arg string) (*models.Swimmer, error) {
	id, err := parseID(arg, "swimmer")
	if err != nil {
		return nil, err
	}
	s := swimRoster.FindSwimmer(id)
	if s == nil {
		return nil, fmt.Errorf("swimmer not found: %d", id)
	}
	if s.Archived {
		return nil, fmt.Errorf("swimmer %d is archived; activate them first", id)
	}
	return s, nil
}

func init() {
	raceAddCmd.Flags().BoolVarP(&raceAddGraded, "graded", "g", false, "record the race as already graded")
	raceUpdateCmd.Flags().BoolVarP(&raceUpdateGraded, "graded", "g", false, "mark the updated race graded")
	raceUpdateCmd.Flags().BoolVar(&raceUpdateUngraded, "ungraded", false, "mark the updated race ungraded")
	raceMarkCmd.Flags().BoolVar(&raceMarkGraded, "graded", false, "mark graded")
	raceMarkCmd.Flags().BoolVar(&raceMarkUngraded, "ungraded", false, "mark ungraded")

	raceCmd.AddCommand(raceAddCmd)
	raceCmd.AddCommand(raceUpdateCmd)
	raceCmd.AddCommand(raceDeleteCmd)
	raceCmd.AddCommand(raceMarkCmd)
	raceCmd.AddCommand(raceListCmd)
	rootCmd.AddCommand(raceCmd)
}
