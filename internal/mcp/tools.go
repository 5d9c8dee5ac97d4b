// ABOUTME: MCP tool implementations for the swim roster.
// ABOUTME: Provides swimmer and race CRUD, archiving, grading and search.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_swimmer",
		Description: "Add a swimmer to the roster and return the assigned ID",
	}, s.handleAddSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_swimmers",
		Description: "List swimmers, optionally only active or only archived ones",
	}, s.handleListSwimmers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_swimmer",
		Description: "Get a swimmer with all races by ID",
	}, s.handleFindSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_swimmer",
		Description: "Change a swimmer's name, level and category",
	}, s.handleUpdateSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_swimmer",
		Description: "Delete a swimmer and their races",
	}, s.handleDeleteSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "archive_swimmer",
		Description: "Archive an active swimmer whose races are all graded",
	}, s.handleArchiveSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "activate_swimmer",
		Description: "Move an archived swimmer back to active",
	}, s.handleActivateSwimmer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_race",
		Description: "Record a race for an active swimmer",
	}, s.handleAddRace)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_race",
		Description: "Replace the medal, time, type and graded flag of a race",
	}, s.handleUpdateRace)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "mark_race",
		Description: "Mark a race as graded or ungraded",
	}, s.handleMarkRace)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_race",
		Description: "Delete a race from an active swimmer",
	}, s.handleDeleteRace)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_swimmers",
		Description: "Find swimmers whose name contains the text (case-insensitive)",
	}, s.handleSearchSwimmers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_races",
		Description: "Find races whose medal contains the text (case-insensitive)",
	}, s.handleSearchRaces)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_ungraded_races",
		Description: "List races still waiting for a grade",
	}, s.handleListUngradedRaces)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_graded_races",
		Description: "List races that have been graded",
	}, s.handleListGradedRaces)
}

// Tool input/output types

type addSwimmerInput struct {
	Name     string `json:"name" jsonschema:"Swimmer name"`
	Level    int    `json:"level" jsonschema:"Skill level, usually 1 to 5"`
	Category string `json:"category" jsonschema:"Freestyle, Backstroke, Breaststroke, Butterfly or Medley"`
}

type updateSwimmerInput struct {
	ID       int    `json:"id" jsonschema:"Swimmer ID"`
	Name     string `json:"name" jsonschema:"New name"`
	Level    int    `json:"level" jsonschema:"New level"`
	Category string `json:"category" jsonschema:"New category"`
}

type listSwimmersInput struct {
	Status string `json:"status,omitempty" jsonschema:"all (default), active or archived"`
}

type swimmerIDInput struct {
	ID int `json:"id" jsonschema:"Swimmer ID"`
}

type deleteSwimmerInput struct {
	ID           int  `json:"id" jsonschema:"Swimmer ID"`
	ArchivedOnly bool `json:"archived_only,omitempty" jsonschema:"Only delete if the swimmer is archived"`
}

type addRaceInput struct {
	SwimmerID int    `json:"swimmer_id" jsonschema:"Swimmer ID"`
	Medal     string `json:"medal" jsonschema:"Medal or result, e.g. Gold"`
	Time      string `json:"time" jsonschema:"Race time as HH:mm:ss"`
	Type      string `json:"type" jsonschema:"Race type, e.g. Freestyle"`
	Graded    bool   `json:"graded,omitempty" jsonschema:"Whether the race is already graded"`
}

type updateRaceInput struct {
	SwimmerID int    `json:"swimmer_id" jsonschema:"Swimmer ID"`
	RaceID    int    `json:"race_id" jsonschema:"Race ID"`
	Medal     string `json:"medal" jsonschema:"Medal or result"`
	Time      string `json:"time" jsonschema:"Race time as HH:mm:ss"`
	Type      string `json:"type" jsonschema:"Race type"`
	Graded    bool   `json:"graded,omitempty" jsonschema:"Graded flag"`
}

type markRaceInput struct {
	SwimmerID int  `json:"swimmer_id" jsonschema:"Swimmer ID"`
	RaceID    int  `json:"race_id" jsonschema:"Race ID"`
	Graded    bool `json:"graded" jsonschema:"true for graded, false for ungraded"`
}

type raceRefInput struct {
	SwimmerID int `json:"swimmer_id" jsonschema:"Swimmer ID"`
	RaceID    int `json:"race_id" jsonschema:"Race ID"`
}

type searchInput struct {
	Query string `json:"query" jsonschema:"Text to look for"`
}

type emptyInput struct{}

type raceView struct {
	ID     int    `json:"id"`
	Medal  string `json:"medal"`
	Time   string `json:"time"`
	Type   string `json:"type"`
	Graded bool   `json:"graded"`
}

type swimmerView struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Level    int        `json:"level"`
	Category string     `json:"category"`
	Status   string     `json:"status"`
	Archived bool       `json:"archived"`
	Ungraded int        `json:"ungraded_races"`
	Races    []raceView `json:"races"`
}

type raceEntry struct {
	SwimmerID   int      `json:"swimmer_id"`
	SwimmerName string   `json:"swimmer_name"`
	Race        raceView `json:"race"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type swimmerOutput struct {
	Swimmer swimmerView `json:"swimmer"`
	Message string      `json:"message"`
}

type swimmerListOutput struct {
	Count    int           `json:"count"`
	Swimmers []swimmerView `json:"swimmers"`
	Message  string        `json:"message,omitempty"`
}

type raceOutput struct {
	SwimmerID int      `json:"swimmer_id"`
	Race      raceView `json:"race"`
	Message   string   `json:"message"`
}

type raceListOutput struct {
	Count   int         `json:"count"`
	Races   []raceEntry `json:"races"`
	Message string      `json:"message,omitempty"`
}

func toRaceView(r *models.Race) raceView {
	return raceView{ID: r.ID, Medal: r.Medal, Time: r.Time, Type: r.Type, Graded: r.Graded}
}

func toSwimmerView(sw *models.Swimmer) swimmerView {
	races := make([]raceView, 0, len(sw.Races))
	for _, r := range sw.Races {
		races = append(races, toRaceView(r))
	}
	return swimmerView{
		ID:       sw.ID,
		Name:     sw.Name,
		Level:    sw.Level,
		Category: sw.Category,
		Status:   sw.Status(),
		Archived: sw.Archived,
		Ungraded: sw.NumberOfUngradedRaces(),
		Races:    races,
	}
}

func toSwimmerList(swimmers []*models.Swimmer) swimmerListOutput {
	out := swimmerListOutput{Count: len(swimmers), Swimmers: make([]swimmerView, 0, len(swimmers))}
	for _, sw := range swimmers {
		out.Swimmers = append(out.Swimmers, toSwimmerView(sw))
	}
	return out
}

func validateSwimmerFields(name, category string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("name is required")
	}
	if !models.IsValidCategory(category) {
		return "", fmt.Errorf("unknown category %q (want one of %s)", category, strings.Join(models.Categories, ", "))
	}
	return models.NormalizeCategory(category), nil
}

// persist writes the roster after a successful mutation. Callers hold s.mu.
func (s *Server) persist() error {
	if err := s.roster.Store(); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// activeSwimmer returns the swimmer if it exists and is not archived. Callers hold s.mu.
func (s *Server) activeSwimmer(id int) (*models.Swimmer, error) {
	sw := s.roster.FindSwimmer(id)
	if sw == nil {
		return nil, fmt.Errorf("swimmer not found: %d", id)
	}
	if sw.Archived {
		return nil, fmt.Errorf("swimmer %d is archived; activate them first", id)
	}
	return sw, nil
}

// Tool handlers

func (s *Server) handleAddSwimmer(ctx context.Context, req *mcp.CallToolRequest, input addSwimmerInput) (*mcp.CallToolResult, swimmerOutput, error) {
	category, err := validateSwimmerFields(input.Name, input.Category)
	if err != nil {
		return nil, swimmerOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sw := models.NewSwimmer(strings.TrimSpace(input.Name), input.Level, category)
	s.roster.Add(sw)
	if err := s.persist(); err != nil {
		return nil, swimmerOutput{}, err
	}

	return nil, swimmerOutput{
		Swimmer: toSwimmerView(sw),
		Message: fmt.Sprintf("Added swimmer %s (ID: %d)", sw.Name, sw.ID),
	}, nil
}

func (s *Server) handleListSwimmers(ctx context.Context, req *mcp.CallToolRequest, input listSwimmersInput) (*mcp.CallToolResult, swimmerListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var swimmers []*models.Swimmer
	switch strings.ToLower(input.Status) {
	case "", "all":
		swimmers = s.roster.Swimmers()
	case "active":
		swimmers = s.roster.ActiveSwimmers()
	case "archived":
		swimmers = s.roster.ArchivedSwimmers()
	default:
		return nil, swimmerListOutput{}, fmt.Errorf("unknown status filter: %s", input.Status)
	}

	out := toSwimmerList(swimmers)
	if out.Count == 0 {
		out.Message = "No swimmers found."
	}
	return nil, out, nil
}

func (s *Server) handleFindSwimmer(ctx context.Context, req *mcp.CallToolRequest, input swimmerIDInput) (*mcp.CallToolResult, swimmerOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.roster.FindSwimmer(input.ID)
	if sw == nil {
		return nil, swimmerOutput{}, fmt.Errorf("swimmer not found: %d", input.ID)
	}
	return nil, swimmerOutput{Swimmer: toSwimmerView(sw), Message: sw.String()}, nil
}

func (s *Server) handleUpdateSwimmer(ctx context.Context, req *mcp.CallToolRequest, input updateSwimmerInput) (*mcp.CallToolResult, swimmerOutput, error) {
	category, err := validateSwimmerFields(input.Name, input.Category)
	if err != nil {
		return nil, swimmerOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := models.NewSwimmer(strings.TrimSpace(input.Name), input.Level, category)
	if !s.roster.Update(input.ID, data) {
		return nil, swimmerOutput{}, fmt.Errorf("swimmer not found: %d", input.ID)
	}
	if err := s.persist(); err != nil {
		return nil, swimmerOutput{}, err
	}

	sw := s.roster.FindSwimmer(input.ID)
	return nil, swimmerOutput{
		Swimmer: toSwimmerView(sw),
		Message: fmt.Sprintf("Updated swimmer %d", input.ID),
	}, nil
}

func (s *Server) handleDeleteSwimmer(ctx context.Context, req *mcp.CallToolRequest, input deleteSwimmerInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ok bool
	if input.ArchivedOnly {
		ok = s.roster.DeleteArchivedSwimmer(input.ID)
	} else {
		ok = s.roster.Delete(input.ID)
	}
	if !ok {
		if input.ArchivedOnly {
			return nil, simpleOutput{}, fmt.Errorf("no archived swimmer with ID %d", input.ID)
		}
		return nil, simpleOutput{}, fmt.Errorf("swimmer not found: %d", input.ID)
	}
	if err := s.persist(); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted swimmer: %d", input.ID)}, nil
}

func (s *Server) handleArchiveSwimmer(ctx context.Context, req *mcp.CallToolRequest, input swimmerIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roster.ArchiveSwimmer(input.ID) {
		return nil, simpleOutput{}, fmt.Errorf("swimmer %d cannot be archived: not found, already archived, or has ungraded races", input.ID)
	}
	if err := s.persist(); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Archived swimmer: %d", input.ID)}, nil
}

func (s *Server) handleActivateSwimmer(ctx context.Context, req *mcp.CallToolRequest, input swimmerIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.roster.FindSwimmer(input.ID)
	if sw == nil {
		return nil, simpleOutput{}, fmt.Errorf("swimmer not found: %d", input.ID)
	}
	if !sw.Archived {
		return nil, simpleOutput{}, fmt.Errorf("swimmer %d is not archived", input.ID)
	}
	s.roster.ActivateSwimmer(input.ID)
	if err := s.persist(); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Activated swimmer: %d", input.ID)}, nil
}

func (s *Server) handleAddRace(ctx context.Context, req *mcp.CallToolRequest, input addRaceInput) (*mcp.CallToolResult, raceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, err := s.activeSwimmer(input.SwimmerID)
	if err != nil {
		return nil, raceOutput{}, err
	}

	race := models.NewRace(input.Medal, input.Time, input.Type).WithGraded(input.Graded)
	if !sw.AddRace(race) {
		return nil, raceOutput{}, fmt.Errorf("could not add race to swimmer %d", input.SwimmerID)
	}
	if err := s.persist(); err != nil {
		return nil, raceOutput{}, err
	}

	return nil, raceOutput{
		SwimmerID: sw.ID,
		Race:      toRaceView(race),
		Message:   fmt.Sprintf("Added race %d for %s", race.ID, sw.Name),
	}, nil
}

func (s *Server) handleUpdateRace(ctx context.Context, req *mcp.CallToolRequest, input updateRaceInput) (*mcp.CallToolResult, raceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, err := s.activeSwimmer(input.SwimmerID)
	if err != nil {
		return nil, raceOutput{}, err
	}

	data := models.NewRace(input.Medal, input.Time, input.Type).WithGraded(input.Graded)
	if !sw.UpdateRace(input.RaceID, data) {
		return nil, raceOutput{}, fmt.Errorf("race not found: %d", input.RaceID)
	}
	if err := s.persist(); err != nil {
		return nil, raceOutput{}, err
	}

	return nil, raceOutput{
		SwimmerID: sw.ID,
		Race:      toRaceView(sw.FindRace(input.RaceID)),
		Message:   fmt.Sprintf("Updated race %d for %s", input.RaceID, sw.Name),
	}, nil
}

func (s *Server) handleMarkRace(ctx context.Context, req *mcp.CallToolRequest, input markRaceInput) (*mcp.CallToolResult, raceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, err := s.activeSwimmer(input.SwimmerID)
	if err != nil {
		return nil, raceOutput{}, err
	}
	if !sw.MarkRace(input.RaceID, input.Graded) {
		return nil, raceOutput{}, fmt.Errorf("race not found: %d", input.RaceID)
	}
	if err := s.persist(); err != nil {
		return nil, raceOutput{}, err
	}

	race := sw.FindRace(input.RaceID)
	return nil, raceOutput{
		SwimmerID: sw.ID,
		Race:      toRaceView(race),
		Message:   fmt.Sprintf("Race %d for %s is now %s", race.ID, sw.Name, race.GradedLabel()),
	}, nil
}

func (s *Server) handleDeleteRace(ctx context.Context, req *mcp.CallToolRequest, input raceRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, err := s.activeSwimmer(input.SwimmerID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if !sw.DeleteRace(input.RaceID) {
		return nil, simpleOutput{}, fmt.Errorf("race not found: %d", input.RaceID)
	}
	if err := s.persist(); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted race %d from %s", input.RaceID, sw.Name)}, nil
}

func (s *Server) handleSearchSwimmers(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, swimmerListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := toSwimmerList(s.roster.SearchByName(input.Query))
	if out.Count == 0 {
		out.Message = fmt.Sprintf("No swimmers found for: %s", input.Query)
	}
	return nil, out, nil
}

func (s *Server) handleSearchRaces(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, raceListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(input.Query)
	out := s.collectRaces(func(r *models.Race) bool {
		return strings.Contains(strings.ToLower(r.Medal), needle)
	})
	if out.Count == 0 {
		out.Message = fmt.Sprintf("No races found for: %s", input.Query)
	}
	return nil, out, nil
}

func (s *Server) handleListUngradedRaces(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, raceListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.collectRaces(func(r *models.Race) bool { return !r.Graded })
	if out.Count == 0 {
		out.Message = "No ungraded races."
	}
	return nil, out, nil
}

func (s *Server) handleListGradedRaces(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, raceListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.collectRaces(func(r *models.Race) bool { return r.Graded })
	if out.Count == 0 {
		out.Message = "No graded races."
	}
	return nil, out, nil
}

// collectRaces walks every swimmer's races in roster order. Callers hold s.mu.
func (s *Server) collectRaces(match func(*models.Race) bool) raceListOutput {
	out := raceListOutput{Races: []raceEntry{}}
	for _, sw := range s.roster.Swimmers() {
		for _, r := range sw.Races {
			if match(r) {
				out.Races = append(out.Races, raceEntry{
					SwimmerID:   sw.ID,
					SwimmerName: sw.Name,
					Race:        toRaceView(r),
				})
			}
		}
	}
	out.Count = len(out.Races)
	return out
}
