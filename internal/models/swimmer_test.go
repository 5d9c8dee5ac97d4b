// ABOUTME: Tests for Swimmer and Race models.
// ABOUTME: Covers race ID assignment, race mutation, grading state and rendering.
package models

import (
	"strings"
	"testing"
)

func TestNewSwimmer(t *testing.T) {
	s := NewSwimmer("Sarah", 3, "Freestyle")

	if s.Name != "Sarah" {
		t.Errorf("Name = %s, want Sarah", s.Name)
	}
	if s.Archived {
		t.Error("expected new swimmer to be active")
	}
	if s.NumberOfRaces() != 0 {
		t.Errorf("NumberOfRaces = %d, want 0", s.NumberOfRaces())
	}
	if s.CreatedAt.IsZero() || !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Error("expected CreatedAt and UpdatedAt to be set to the same instant")
	}
}

func TestAddRaceAssignsSequentialIDs(t *testing.T) {
	s := NewSwimmer("Tom", 1, "Butterfly")

	for want := 0; want < 3; want++ {
		r := NewRace("Pass", "00:01:00", "Butterfly")
		r.ID = 99
		if !s.AddRace(r) {
			t.Fatalf("AddRace %d returned false", want)
		}
		if r.ID != want {
			t.Errorf("race ID = %d, want %d", r.ID, want)
		}
	}
	if s.NumberOfRaces() != 3 {
		t.Errorf("NumberOfRaces = %d, want 3", s.NumberOfRaces())
	}
}

func TestAddRaceNeverReusesDeletedID(t *testing.T) {
	s := NewSwimmer("Tom", 1, "Butterfly")
	s.AddRace(NewRace("a", "", ""))
	s.AddRace(NewRace("b", "", ""))

	if !s.DeleteRace(1) {
		t.Fatal("DeleteRace(1) returned false")
	}
	r := NewRace("c", "", "")
	s.AddRace(r)
	if r.ID != 2 {
		t.Errorf("race ID after delete = %d, want 2", r.ID)
	}
}

func TestAddRaceRejectsNilAndCollision(t *testing.T) {
	s := NewSwimmer("Tom", 1, "Butterfly")
	if s.AddRace(nil) {
		t.Error("expected AddRace(nil) to fail")
	}

	// A race inserted directly with the next ID makes the counter collide.
	s.Races = append(s.Races, &Race{ID: 0, Medal: "manual"})
	if s.AddRace(NewRace("x", "", "")) {
		t.Error("expected AddRace to fail on duplicate ID")
	}
	if s.NumberOfRaces() != 1 {
		t.Errorf("NumberOfRaces = %d, want 1", s.NumberOfRaces())
	}
}

func TestFindAndDeleteRace(t *testing.T) {
	s := NewSwimmer("Tom", 1, "Butterfly")
	s.AddRace(NewRace("Gold", "00:00:59", "Butterfly"))

	if s.FindRace(0) == nil {
		t.Fatal("expected to find race 0")
	}
	if s.FindRace(7) != nil {
		t.Error("expected nil for unknown race")
	}
	if s.DeleteRace(7) {
		t.Error("expected DeleteRace on unknown ID to return false")
	}
	if !s.DeleteRace(0) {
		t.Error("expected DeleteRace(0) to return true")
	}
	if s.NumberOfRaces() != 0 {
		t.Errorf("NumberOfRaces = %d, want 0", s.NumberOfRaces())
	}
}

func TestUpdateRace(t *testing.T) {
	s := NewSwimmer("Tom", 1, "Butterfly")
	s.AddRace(NewRace("Fail", "00:02:00", "Butterfly"))

	data := &Race{ID: 42, Medal: "Pass", Time: "00:01:30", Type: "Medley", Graded: true}
	if !s.UpdateRace(0, data) {
		t.Fatal("UpdateRace returned false")
	}
	r := s.FindRace(0)
	if r == nil {
		t.Fatal("race 0 disappeared after update")
	}
	if r.ID != 0 || r.Medal != "Pass" || r.Time != "00:01:30" || r.Type != "Medley" || !r.Graded {
		t.Errorf("unexpected race after update: %+v", r)
	}

	if s.UpdateRace(5, data) {
		t.Error("expected UpdateRace on unknown ID to return false")
	}
	if s.UpdateRace(0, nil) {
		t.Error("expected UpdateRace with nil data to return false")
	}
}

func TestIsFullyGraded(t *testing.T) {
	tests := []struct {
		name  string
		races []*Race
		want  bool
	}{
		{name: "no races", races: nil, want: true},
		{name: "all graded", races: []*Race{NewRace("a", "", "").WithGraded(true), NewRace("b", "", "").WithGraded(true)}, want: true},
		{name: "one ungraded", races: []*Race{NewRace("a", "", "").WithGraded(true), NewRace("b", "", "")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwimmer("x", 1, "Medley")
			for _, r := range tt.races {
				s.AddRace(r)
			}
			if got := s.IsFullyGraded(); got != tt.want {
				t.Errorf("IsFullyGraded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkRaceAndCounts(t *testing.T) {
	s := NewSwimmer("x", 1, "Medley")
	s.AddRace(NewRace("a", "", ""))
	s.AddRace(NewRace("b", "", ""))

	if !s.MarkRace(1, true) {
		t.Fatal("MarkRace returned false")
	}
	if s.MarkRace(9, true) {
		t.Error("expected MarkRace on unknown ID to return false")
	}
	if s.NumberOfGradedRaces() != 1 || s.NumberOfUngradedRaces() != 1 {
		t.Errorf("graded=%d ungraded=%d, want 1/1", s.NumberOfGradedRaces(), s.NumberOfUngradedRaces())
	}
}

func TestRestoreRaceCounter(t *testing.T) {
	s := &Swimmer{Races: []*Race{{ID: 3}, {ID: 7}}}
	s.RestoreRaceCounter()
	if s.NextRaceID() != 8 {
		t.Errorf("NextRaceID = %d, want 8", s.NextRaceID())
	}

	r := NewRace("new", "", "")
	s.AddRace(r)
	if r.ID != 8 {
		t.Errorf("race ID = %d, want 8", r.ID)
	}
}

func TestListRaces(t *testing.T) {
	s := NewSwimmer("x", 1, "Medley")
	if got := s.ListRaces(); !strings.Contains(got, NoRacesAdded) {
		t.Errorf("ListRaces() = %q, want placeholder", got)
	}

	s.AddRace(NewRace("Gold", "00:00:58", "Freestyle").WithGraded(true))
	s.AddRace(NewRace("Fail", "00:01:10", "Backstroke"))
	got := s.ListRaces()
	want := "\t0: Gold (Graded) - Freestyle, Time: 00:00:58\n\t1: Fail (Ungraded) - Backstroke, Time: 00:01:10"
	if got != want {
		t.Errorf("ListRaces() = %q, want %q", got, want)
	}
}

func TestSwimmerString(t *testing.T) {
	s := NewSwimmer("Michael", 5, "Backstroke").WithArchived(true)
	s.ID = 4

	got := s.String()
	for _, want := range []string{"4: Michael", "Level 5", "Backstroke", "[Archived]", NoRacesAdded} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Freestyle", true},
		{"backstroke", true},
		{"MEDLEY", true},
		{"Doggy paddle", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidCategory(tt.input); got != tt.want {
				t.Errorf("IsValidCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if got := NormalizeCategory(" butterfly "); got != "Butterfly" {
		t.Errorf("NormalizeCategory = %q, want Butterfly", got)
	}
}
