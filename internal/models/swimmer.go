// ABOUTME: Swimmer aggregate holding profile fields and an owned set of races.
// ABOUTME: The swimmer assigns race IDs from its own counter, which never reuses an ID.
package models

import (
	"fmt"
	"strings"
	"time"
)

// NoRacesAdded is rendered by ListRaces for a swimmer without races.
const NoRacesAdded = "NO RACES ADDED"

// Swimmer represents a roster entry and its race history.
type Swimmer struct {
	ID        int
	Name      string
	Level     int // 1 (low) to 5 (high), not enforced
	Category  string
	Archived  bool
	Races     []*Race
	CreatedAt time.Time
	UpdatedAt time.Time

	nextRaceID int
}

// NewSwimmer creates an active Swimmer with no races.
// UpdatedAt is set once here and is not refreshed by later mutations.
func NewSwimmer(name string, level int, category string) *Swimmer {
	now := time.Now()
	return &Swimmer{
		Name:      name,
		Level:     level,
		Category:  category,
		Races:     []*Race{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithArchived sets the archived flag.
func (s *Swimmer) WithArchived(archived bool) *Swimmer {
	s.Archived = archived
	return s
}

// AddRace assigns the next race ID to r and stores it.
// It returns false for a nil race or if the ID is already taken.
func (s *Swimmer) AddRace(r *Race) bool {
	if r == nil {
		return false
	}
	id := s.nextRaceID
	if s.FindRace(id) != nil {
		return false
	}
	s.nextRaceID++
	r.ID = id
	s.Races = append(s.Races, r)
	return true
}

// NumberOfRaces returns how many races the swimmer owns.
func (s *Swimmer) NumberOfRaces() int {
	return len(s.Races)
}

// FindRace returns the race with the given ID, or nil.
func (s *Swimmer) FindRace(id int) *Race {
	for _, r := range s.Races {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// DeleteRace removes the race with the given ID. IDs are never compacted.
func (s *Swimmer) DeleteRace(id int) bool {
	for i, r := range s.Races {
		if r.ID == id {
			s.Races = append(s.Races[:i], s.Races[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateRace copies medal, time, type and graded flag from data into the
// race with the given ID, keeping its ID.
func (s *Swimmer) UpdateRace(id int, data *Race) bool {
	r := s.FindRace(id)
	if r == nil || data == nil {
		return false
	}
	r.Medal = data.Medal
	r.Time = data.Time
	r.Type = data.Type
	r.Graded = data.Graded
	return true
}

// MarkRace sets the graded flag of a single race.
func (s *Swimmer) MarkRace(id int, graded bool) bool {
	r := s.FindRace(id)
	if r == nil {
		return false
	}
	r.Graded = graded
	return true
}

// IsFullyGraded reports whether every race is graded. A swimmer without
// races is fully graded.
func (s *Swimmer) IsFullyGraded() bool {
	for _, r := range s.Races {
		if !r.Graded {
			return false
		}
	}
	return true
}

// NumberOfGradedRaces counts graded races.
func (s *Swimmer) NumberOfGradedRaces() int {
	n := 0
	for _, r := range s.Races {
		if r.Graded {
			n++
		}
	}
	return n
}

// NumberOfUngradedRaces counts races still pending a grade.
func (s *Swimmer) NumberOfUngradedRaces() int {
	return len(s.Races) - s.NumberOfGradedRaces()
}

// NextRaceID returns the ID the next added race will receive.
func (s *Swimmer) NextRaceID() int {
	return s.nextRaceID
}

// RestoreRaceCounter sets the race counter to one past the highest race ID.
// Stores do not persist the counter, so it is derived after loading.
func (s *Swimmer) RestoreRaceCounter() {
	next := 0
	for _, r := range s.Races {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	if next > s.nextRaceID {
		s.nextRaceID = next
	}
}

// ListRaces renders one race per tab-indented line.
func (s *Swimmer) ListRaces() string {
	if len(s.Races) == 0 {
		return "\t" + NoRacesAdded
	}
	lines := make([]string, 0, len(s.Races))
	for _, r := range s.Races {
		lines = append(lines, "\t"+r.String())
	}
	return strings.Join(lines, "\n")
}

// Status returns "Archived" or "Active".
func (s *Swimmer) Status() string {
	if s.Archived {
		return "Archived"
	}
	return "Active"
}

func (s *Swimmer) String() string {
	return fmt.Sprintf("%d: %s (Level %d, %s) [%s]\n%s",
		s.ID, s.Name, s.Level, s.Category, s.Status(), s.ListRaces())
}
