// ABOUTME: Race model for a single timed swimming event result.
// ABOUTME: Races are owned by a Swimmer, which assigns their IDs.
package models

import "fmt"

// Race represents one timed event result for a swimmer.
type Race struct {
	ID     int
	Medal  string
	Time   string // HH:mm:ss, not validated
	Type   string
	Graded bool
}

// NewRace creates an ungraded Race. The ID is assigned when the race is
// added to a Swimmer.
func NewRace(medal, raceTime, raceType string) *Race {
	return &Race{
		Medal: medal,
		Time:  raceTime,
		Type:  raceType,
	}
}

// WithGraded sets the graded flag.
func (r *Race) WithGraded(graded bool) *Race {
	r.Graded = graded
	return r
}

// GradedLabel returns "(Graded)" or "(Ungraded)".
func (r *Race) GradedLabel() string {
	if r.Graded {
		return "(Graded)"
	}
	return "(Ungraded)"
}

func (r *Race) String() string {
	return fmt.Sprintf("%d: %s %s - %s, Time: %s", r.ID, r.Medal, r.GradedLabel(), r.Type, r.Time)
}
