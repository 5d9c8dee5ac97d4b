// ABOUTME: Interactive numbered menu over the roster, read from stdin.
// ABOUTME: Changes stay in memory until the user saves (17); load (18) discards them.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/roster"
	"github.com/spf13/cobra"
)

// errExit ends the menu loop. It is returned for option 0 and at end of input.
var errExit = errors.New("exit")

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	Long: `Run the interactive numbered menu.

Changes are kept in memory until you choose 17 (Save). 18 (Load) reloads the
stored roster and discards unsaved changes. 0 exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newConsole(cmd.InOrStdin(), cmd.OutOrStdout(), swimRoster)
		return c.run()
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

type menuStyles struct {
	box     lipgloss.Style
	title   lipgloss.Style
	section lipgloss.Style
	number  lipgloss.Style
	option  lipgloss.Style
}

func defaultMenuStyles() menuStyles {
	return menuStyles{
		box: lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		section: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		number:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		option:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

type menuItem struct {
	number int
	label  string
}

type menuSection struct {
	title string
	items []menuItem
}

var mainMenu = []menuSection{
	{"SWIMMER MENU", []menuItem{
		{1, "Add a swimmer"},
		{2, "List swimmers"},
		{3, "Update a swimmer"},
		{4, "Delete a swimmer"},
		{5, "Archive a swimmer"},
	}},
	{"RACE MENU", []menuItem{
		{6, "Add race to a swimmer"},
		{7, "Update race contents on a swimmer"},
		{8, "Delete race from a swimmer"},
		{9, "Mark race graded / ungraded"},
	}},
	{"REPORTS FOR SWIMMERS", []menuItem{
		{10, "Search swimmers (by name)"},
		{11, "Activate an archived swimmer"},
		{12, "Delete an archived swimmer"},
	}},
	{"REPORTS FOR RACES", []menuItem{
		{13, "List ungraded races"},
		{14, "View all races"},
		{15, "Search races (by medal)"},
		{16, "List graded races"},
	}},
	{"STORAGE", []menuItem{
		{17, "Save"},
		{18, "Load"},
		{0, "Exit"},
	}},
}

// console runs the interactive menu against a roster.
type console struct {
	in     *bufio.Scanner
	out    io.Writer
	roster *roster.Roster
	styles menuStyles
}

func newConsole(in io.Reader, out io.Writer, r *roster.Roster) *console {
	return &console{
		in:     bufio.NewScanner(in),
		out:    out,
		roster: r,
		styles: defaultMenuStyles(),
	}
}

func (c *console) run() error {
	actions := map[int]func() error{
		1:  c.addSwimmer,
		2:  c.listSwimmers,
		3:  c.updateSwimmer,
		4:  c.deleteSwimmer,
		5:  c.archiveSwimmer,
		6:  c.addRace,
		7:  c.updateRace,
		8:  c.deleteRace,
		9:  c.markRace,
		10: c.searchSwimmers,
		11: c.activateSwimmer,
		12: c.deleteArchivedSwimmer,
		13: c.listUngradedRaces,
		14: c.listAllRaces,
		15: c.searchRaces,
		16: c.listGradedRaces,
		17: c.save,
		18: c.load,
		0:  func() error { return errExit },
	}

	for {
		fmt.Fprintln(c.out, c.renderMenu())
		option, err := c.readInt("==>> ")
		if err != nil {
			return c.exit(err)
		}

		action, ok := actions[option]
		if !ok {
			fmt.Fprintf(c.out, "Invalid option entered: %d\n", option)
			continue
		}
		if err := action(); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
				return c.exit(err)
			}
			failure(c.out, "%v", err)
		}
	}
}

func (c *console) exit(err error) error {
	if !errors.Is(err, errExit) && !errors.Is(err, io.EOF) {
		return err
	}
	fmt.Fprintln(c.out, "Exiting Application")
	return nil
}

func (c *console) renderMenu() string {
	s := c.styles
	var sb strings.Builder
	sb.WriteString(s.title.Render("SWIMMING APP"))
	for _, section := range mainMenu {
		sb.WriteString("\n\n")
		sb.WriteString(s.section.Render(section.title))
		for _, item := range section.items {
			sb.WriteString("\n  ")
			sb.WriteString(s.number.Render(fmt.Sprintf("%2d)", item.number)))
			sb.WriteString(" ")
			sb.WriteString(s.option.Render(item.label))
		}
	}
	return s.box.Render(sb.String())
}

// readLine prints prompt and returns the next input line, or io.EOF.
func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readInt prompts until the input is a number.
func (c *console) readInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(c.out, "Invalid number entered: %s\n", line)
	}
}

// readCategory prompts until the input names a known category.
func (c *console) readCategory(prompt string) (string, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		category, err := validateCategory(line)
		if err == nil {
			return category, nil
		}
		fmt.Fprintf(c.out, "Invalid category, choose from: %s\n", strings.Join(models.Categories, ", "))
	}
}

func (c *console) readYes(prompt string) (bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

func (c *console) readSwimmerFields() (*models.Swimmer, error) {
	name, err := c.readLine("Enter a name for the swimmer: ")
	if err != nil {
		return nil, err
	}
	level, err := c.readInt("Enter a level of swimmer (1-low, 2, 3, 4, 5-high): ")
	if err != nil {
		return nil, err
	}
	category, err := c.readCategory("Enter a category for the swimmer: ")
	if err != nil {
		return nil, err
	}
	return models.NewSwimmer(name, level, category), nil
}

func (c *console) readRaceFields() (*models.Race, error) {
	medal, err := c.readLine("\tRace medal (eg. Gold, Silver, 4th): ")
	if err != nil {
		return nil, err
	}
	raceTime, err := c.readLine("\tRace time (use format HH:mm:ss): ")
	if err != nil {
		return nil, err
	}
	raceType, err := c.readLine("\tRace type (eg. Backstroke, Freestyle): ")
	if err != nil {
		return nil, err
	}
	return models.NewRace(medal, raceTime, raceType), nil
}

func (c *console) addSwimmer() error {
	s, err := c.readSwimmerFields()
	if err != nil {
		return err
	}
	if c.roster.Add(s) {
		success(c.out, "Added Successfully (ID %d)", s.ID)
	} else {
		failure(c.out, "Add Failed")
	}
	return nil
}

func (c *console) listSwimmers() error {
	if c.roster.NumberOfSwimmers() == 0 {
		fmt.Fprintln(c.out, roster.NoSwimmerStored)
		return nil
	}

	box := c.styles.box.Render(strings.Join([]string{
		c.styles.title.Render("VIEW SWIMMERS MENU"),
		"  1) " + c.styles.option.Render("View all swimmers"),
		"  2) " + c.styles.option.Render("View active swimmers"),
		"  3) " + c.styles.option.Render("View archived swimmers"),
	}, "\n"))
	fmt.Fprintln(c.out, box)

	option, err := c.readInt("==>> ")
	if err != nil {
		return err
	}
	switch option {
	case 1:
		fmt.Fprintln(c.out, c.roster.ListAllSwimmers())
	case 2:
		fmt.Fprintln(c.out, c.roster.ListActiveSwimmers())
	case 3:
		fmt.Fprintln(c.out, c.roster.ListArchivedSwimmers())
	default:
		fmt.Fprintf(c.out, "Invalid option entered: %d\n", option)
	}
	return nil
}

func (c *console) updateSwimmer() error {
	fmt.Fprintln(c.out, c.roster.ListAllSwimmers())
	if c.roster.NumberOfSwimmers() == 0 {
		return nil
	}
	id, err := c.readInt("Enter the id of the swimmer to update: ")
	if err != nil {
		return err
	}
	if c.roster.FindSwimmer(id) == nil {
		fmt.Fprintln(c.out, "There are no swimmers for this id")
		return nil
	}
	data, err := c.readSwimmerFields()
	if err != nil {
		return err
	}
	if c.roster.Update(id, data) {
		success(c.out, "Update Successful")
	} else {
		failure(c.out, "Update Failed")
	}
	return nil
}

func (c *console) deleteSwimmer() error {
	fmt.Fprintln(c.out, c.roster.ListAllSwimmers())
	if c.roster.NumberOfSwimmers() == 0 {
		return nil
	}
	id, err := c.readInt("Enter the id of the swimmer to delete: ")
	if err != nil {
		return err
	}
	if c.roster.Delete(id) {
		success(c.out, "Delete Successful!")
	} else {
		failure(c.out, "Delete NOT Successful")
	}
	return nil
}

func (c *console) archiveSwimmer() error {
	fmt.Fprintln(c.out, c.roster.ListActiveSwimmers())
	if c.roster.NumberOfActiveSwimmers() == 0 {
		return nil
	}
	id, err := c.readInt("Enter the id of the swimmer to archive: ")
	if err != nil {
		return err
	}
	if c.roster.ArchiveSwimmer(id) {
		success(c.out, "Swimmer %d archived", id)
	} else {
		failure(c.out, "Failed to archive swimmer %d (missing, archived, or has ungraded races)", id)
	}
	return nil
}

func (c *console) activateSwimmer() error {
	fmt.Fprintln(c.out, c.roster.ListArchivedSwimmers())
	if c.roster.NumberOfArchivedSwimmers() == 0 {
		return nil
	}
	id, err := c.readInt("Enter the id of the swimmer to activate: ")
	if err != nil {
		return err
	}
	s := c.roster.FindSwimmer(id)
	if s == nil || !s.Archived {
		failure(c.out, "Swimmer %d is not archived", id)
		return nil
	}
	c.roster.ActivateSwimmer(id)
	success(c.out, "Swimmer %d activated", id)
	return nil
}

func (c *console) deleteArchivedSwimmer() error {
	fmt.Fprintln(c.out, c.roster.ListArchivedSwimmers())
	if c.roster.NumberOfArchivedSwimmers() == 0 {
		return nil
	}
	id, err := c.readInt("Enter the id of the archived swimmer to delete: ")
	if err != nil {
		return err
	}
	if c.roster.DeleteArchivedSwimmer(id) {
		success(c.out, "Delete Successful!")
	} else {
		failure(c.out, "Swimmer %d is not archived", id)
	}
	return nil
}

// chooseActiveSwimmer lists active swimmers and returns the one picked,
// or nil when none is usable.
func (c *console) chooseActiveSwimmer() (*models.Swimmer, error) {
	fmt.Fprintln(c.out, c.roster.ListActiveSwimmers())
	if c.roster.NumberOfActiveSwimmers() == 0 {
		return nil, nil
	}
	id, err := c.readInt("\nEnter the id of the swimmer: ")
	if err != nil {
		return nil, err
	}
	s := c.roster.FindSwimmer(id)
	switch {
	case s == nil:
		fmt.Fprintln(c.out, "Swimmer id is not valid")
		return nil, nil
	case s.Archived:
		fmt.Fprintln(c.out, "Swimmer is NOT Active, it is Archived")
		return nil, nil
	}
	return s, nil
}

func (c *console) chooseRace(s *models.Swimmer) (*models.Race, error) {
	if s.NumberOfRaces() == 0 {
		fmt.Fprintln(c.out, "No races for chosen swimmer")
		return nil, nil
	}
	fmt.Fprintln(c.out, s.ListRaces())
	id, err := c.readInt("\nEnter the id of the race: ")
	if err != nil {
		return nil, err
	}
	r := s.FindRace(id)
	if r == nil {
		fmt.Fprintln(c.out, "Invalid race ID")
	}
	return r, nil
}

func (c *console) addRace() error {
	s, err := c.chooseActiveSwimmer()
	if s == nil || err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\nEnter race details:")
	race, err := c.readRaceFields()
	if err != nil {
		return err
	}
	if s.AddRace(race) {
		success(c.out, "Race added successfully!")
	} else {
		failure(c.out, "Failed to add race. Try again!")
	}
	return nil
}

func (c *console) updateRace() error {
	s, err := c.chooseActiveSwimmer()
	if s == nil || err != nil {
		return err
	}
	r, err := c.chooseRace(s)
	if r == nil || err != nil {
		return err
	}
	data, err := c.readRaceFields()
	if err != nil {
		return err
	}
	data.Graded = r.Graded
	if s.UpdateRace(r.ID, data) {
		success(c.out, "Race contents updated")
	} else {
		failure(c.out, "Race contents NOT updated")
	}
	return nil
}

func (c *console) deleteRace() error {
	s, err := c.chooseActiveSwimmer()
	if s == nil || err != nil {
		return err
	}
	r, err := c.chooseRace(s)
	if r == nil || err != nil {
		return err
	}
	if s.DeleteRace(r.ID) {
		success(c.out, "Race deleted from %s's races", s.Name)
	} else {
		failure(c.out, "Unable to delete the race from %s's races", s.Name)
	}
	return nil
}

func (c *console) markRace() error {
	s, err := c.chooseActiveSwimmer()
	if s == nil || err != nil {
		return err
	}
	r, err := c.chooseRace(s)
	if r == nil || err != nil {
		return err
	}

	prompt := "The race is currently ungraded. Mark it as graded? [y/N] "
	if r.Graded {
		prompt = "The race is currently graded. Mark it as ungraded? [y/N] "
	}
	yes, err := c.readYes(prompt)
	if err != nil {
		return err
	}
	if yes {
		s.MarkRace(r.ID, !r.Graded)
		success(c.out, "Race %d is now %s", r.ID, strings.Trim(r.GradedLabel(), "()"))
	}
	return nil
}

func (c *console) searchSwimmers() error {
	if c.roster.NumberOfSwimmers() == 0 {
		fmt.Fprintln(c.out, roster.NoSwimmerStored)
		return nil
	}
	sub, err := c.readLine("Enter the name to search by: ")
	if err != nil {
		return err
	}
	result := c.roster.SearchSwimmersByName(sub)
	if result == "" {
		fmt.Fprintln(c.out, "No swimmers found")
	} else {
		fmt.Fprintln(c.out, result)
	}
	return nil
}

func (c *console) searchRaces() error {
	sub, err := c.readLine("Enter the medal to search by: ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.roster.SearchRaceByContents(sub))
	return nil
}

func (c *console) listAllRaces() error {
	swimmers := c.roster.Swimmers()
	if len(swimmers) == 0 {
		fmt.Fprintln(c.out, roster.NoSwimmerStored)
		return nil
	}
	for _, s := range swimmers {
		fmt.Fprintf(c.out, "%d: %s\n%s\n", s.ID, s.Name, s.ListRaces())
	}
	return nil
}

func (c *console) listUngradedRaces() error {
	printRaceReport(c.out, "Ungraded", c.roster.NumberOfUngradedRaces(), c.roster.ListUngradedRaces())
	return nil
}

func (c *console) listGradedRaces() error {
	printRaceReport(c.out, "Graded", c.roster.NumberOfGradedRaces(), c.roster.ListGradedRaces())
	return nil
}

func (c *console) save() error {
	if err := c.roster.Store(); err != nil {
		return fmt.Errorf("error writing roster: %w", err)
	}
	success(c.out, "Saved %d swimmers", c.roster.NumberOfSwimmers())
	return nil
}

func (c *console) load() error {
	if err := c.roster.Load(); err != nil {
		return fmt.Errorf("error reading roster: %w", err)
	}
	success(c.out, "Loaded %d swimmers", c.roster.NumberOfSwimmers())
	return nil
}
