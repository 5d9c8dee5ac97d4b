// ABOUTME: In-memory swimmer roster with ID assignment, archive lifecycle and search.
// ABOUTME: Loads and stores the whole collection through a storage.Serializer port.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
)

// Sentinel strings returned by listing operations when there is nothing to show.
const (
	NoSwimmerStored          = "No swimmer stored"
	NoActiveSwimmersStored   = "No active swimmers stored"
	NoArchivedSwimmersStored = "No archived swimmers stored"
)

var (
	// ErrNoStore is returned by Load and Store on a roster built without a serializer.
	ErrNoStore = errors.New("roster has no store")
	// ErrInvalidData is returned by Load when the store yields an unusable collection.
	ErrInvalidData = errors.New("invalid roster data")
)

// Roster owns the swimmer collection and assigns swimmer IDs.
// It is not safe for concurrent use.
type Roster struct {
	swimmers []*models.Swimmer
	nextID   int
	store    storage.Serializer
	logger   *slog.Logger
}

// Option configures a Roster.
type Option func(*Roster)

// WithLogger sets the logger used for load and store events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Roster) { r.logger = l }
}

// New creates an empty roster persisted through store.
func New(store storage.Serializer, opts ...Option) *Roster {
	r := &Roster{
		swimmers: []*models.Swimmer{},
		store:    store,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add assigns the next swimmer ID to s, overwriting any ID it had, and appends it.
func (r *Roster) Add(s *models.Swimmer) bool {
	if s == nil {
		return false
	}
	s.ID = r.nextID
	r.nextID++
	r.swimmers = append(r.swimmers, s)
	return true
}

// FindSwimmer returns the swimmer with the given ID, or nil.
func (r *Roster) FindSwimmer(id int) *models.Swimmer {
	for _, s := range r.swimmers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Delete removes the swimmer with the given ID.
func (r *Roster) Delete(id int) bool {
	for i, s := range r.swimmers {
		if s.ID == id {
			r.swimmers = append(r.swimmers[:i], r.swimmers[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteArchivedSwimmer removes a swimmer only if it is archived.
func (r *Roster) DeleteArchivedSwimmer(id int) bool {
	s := r.FindSwimmer(id)
	if s == nil || !s.Archived {
		return false
	}
	return r.Delete(id)
}

// Update copies name, level and category from data. The archived flag and
// races are left alone.
func (r *Roster) Update(id int, data *models.Swimmer) bool {
	s := r.FindSwimmer(id)
	if s == nil || data == nil {
		return false
	}
	s.Name = data.Name
	s.Level = data.Level
	s.Category = data.Category
	return true
}

// ArchiveSwimmer archives an active swimmer whose races are all graded.
// Missing, already archived and not fully graded swimmers all return false.
func (r *Roster) ArchiveSwimmer(id int) bool {
	s := r.FindSwimmer(id)
	if s == nil || s.Archived || !s.IsFullyGraded() {
		return false
	}
	s.Archived = true
	return true
}

// ActivateSwimmer clears the archived flag. Callers are expected to have
// checked that the swimmer is archived; only a missing ID returns false.
func (r *Roster) ActivateSwimmer(id int) bool {
	s := r.FindSwimmer(id)
	if s == nil {
		return false
	}
	s.Archived = false
	return true
}

// Swimmers returns the swimmers in roster order. The slice is a copy; the
// swimmers are not.
func (r *Roster) Swimmers() []*models.Swimmer {
	out := make([]*models.Swimmer, len(r.swimmers))
	copy(out, r.swimmers)
	return out
}

// ActiveSwimmers returns the swimmers that are not archived.
func (r *Roster) ActiveSwimmers() []*models.Swimmer {
	return r.filter(func(s *models.Swimmer) bool { return !s.Archived })
}

// ArchivedSwimmers returns the archived swimmers.
func (r *Roster) ArchivedSwimmers() []*models.Swimmer {
	return r.filter(func(s *models.Swimmer) bool { return s.Archived })
}

// NextID returns the ID the next added swimmer will receive.
func (r *Roster) NextID() int {
	return r.nextID
}

func (r *Roster) NumberOfSwimmers() int {
	return len(r.swimmers)
}

func (r *Roster) NumberOfActiveSwimmers() int {
	return r.count(func(s *models.Swimmer) bool { return !s.Archived })
}

func (r *Roster) NumberOfArchivedSwimmers() int {
	return r.count(func(s *models.Swimmer) bool { return s.Archived })
}

func (r *Roster) NumberOfSwimmersByLevel(level int) int {
	return r.count(func(s *models.Swimmer) bool { return s.Level == level })
}

// ListAllSwimmers renders every swimmer, or NoSwimmerStored.
func (r *Roster) ListAllSwimmers() string {
	if len(r.swimmers) == 0 {
		return NoSwimmerStored
	}
	return formatSwimmers(r.swimmers)
}

// ListActiveSwimmers renders active swimmers, or NoActiveSwimmersStored.
func (r *Roster) ListActiveSwimmers() string {
	active := r.ActiveSwimmers()
	if len(active) == 0 {
		return NoActiveSwimmersStored
	}
	return formatSwimmers(active)
}

// ListArchivedSwimmers renders archived swimmers, or NoArchivedSwimmersStored.
func (r *Roster) ListArchivedSwimmers() string {
	archived := r.ArchivedSwimmers()
	if len(archived) == 0 {
		return NoArchivedSwimmersStored
	}
	return formatSwimmers(archived)
}

// SearchSwimmersByName renders swimmers whose name contains sub, ignoring
// case. No matches renders as an empty string.
func (r *Roster) SearchSwimmersByName(sub string) string {
	return formatSwimmers(r.SearchByName(sub))
}

// SearchByName returns swimmers whose name contains sub, ignoring case.
func (r *Roster) SearchByName(sub string) []*models.Swimmer {
	needle := strings.ToLower(sub)
	return r.filter(func(s *models.Swimmer) bool {
		return strings.Contains(strings.ToLower(s.Name), needle)
	})
}

// SearchRaceByContents lists races whose medal contains sub, ignoring case,
// each preceded by its swimmer.
func (r *Roster) SearchRaceByContents(sub string) string {
	if len(r.swimmers) == 0 {
		return NoSwimmerStored
	}

	needle := strings.ToLower(sub)
	var sb strings.Builder
	for _, s := range r.swimmers {
		for _, race := range s.Races {
			if strings.Contains(strings.ToLower(race.Medal), needle) {
				fmt.Fprintf(&sb, "%d: %s\n\t%s\n", s.ID, s.Name, race)
			}
		}
	}
	if sb.Len() == 0 {
		return "No races found for: " + sub
	}
	return sb.String()
}

// NumberOfUngradedRaces counts ungraded races across all swimmers.
func (r *Roster) NumberOfUngradedRaces() int {
	return r.countRaces(false)
}

// NumberOfGradedRaces counts graded races across all swimmers.
func (r *Roster) NumberOfGradedRaces() int {
	return r.countRaces(true)
}

// ListUngradedRaces renders "name: medal" for every ungraded race.
func (r *Roster) ListUngradedRaces() string {
	return r.listRaces(false)
}

// ListGradedRaces renders "name: medal" for every graded race.
func (r *Roster) ListGradedRaces() string {
	return r.listRaces(true)
}

// Load replaces the in-memory swimmers with the store's contents. On error
// the current swimmers are kept.
func (r *Roster) Load() error {
	if r.store == nil {
		return ErrNoStore
	}

	swimmers, err := r.store.Read()
	if err != nil {
		return fmt.Errorf("load swimmers: %w", err)
	}

	nextID := 0
	seen := make(map[int]bool, len(swimmers))
	for i, s := range swimmers {
		if s == nil {
			return fmt.Errorf("load swimmers: %w: nil swimmer at position %d", ErrInvalidData, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("load swimmers: %w: duplicate swimmer id %d", ErrInvalidData, s.ID)
		}
		seen[s.ID] = true
		if s.ID >= nextID {
			nextID = s.ID + 1
		}
		if s.Races == nil {
			s.Races = []*models.Race{}
		}
		s.RestoreRaceCounter()
	}

	r.swimmers = swimmers
	if nextID > r.nextID {
		r.nextID = nextID
	}
	r.logger.Debug("roster loaded", "swimmers", len(swimmers), "next_id", r.nextID)
	return nil
}

// Store writes every swimmer through the store.
func (r *Roster) Store() error {
	if r.store == nil {
		return ErrNoStore
	}
	if err := r.store.Write(r.swimmers); err != nil {
		return fmt.Errorf("store swimmers: %w", err)
	}
	r.logger.Debug("roster stored", "swimmers", len(r.swimmers))
	return nil
}

func (r *Roster) filter(keep func(*models.Swimmer) bool) []*models.Swimmer {
	out := []*models.Swimmer{}
	for _, s := range r.swimmers {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *Roster) count(match func(*models.Swimmer) bool) int {
	n := 0
	for _, s := range r.swimmers {
		if match(s) {
			n++
		}
	}
	return n
}

func (r *Roster) countRaces(graded bool) int {
	n := 0
	for _, s := range r.swimmers {
		for _, race := range s.Races {
			if race.Graded == graded {
				n++
			}
		}
	}
	return n
}

func (r *Roster) listRaces(graded bool) string {
	if len(r.swimmers) == 0 {
		return NoSwimmerStored
	}
	var sb strings.Builder
	for _, s := range r.swimmers {
		for _, race := range s.Races {
			if race.Graded == graded {
				fmt.Fprintf(&sb, "%s: %s\n", s.Name, race.Medal)
			}
		}
	}
	return sb.String()
}

func formatSwimmers(swimmers []*models.Swimmer) string {
	blocks := make([]string, 0, len(swimmers))
	for _, s := range swimmers {
		blocks = append(blocks, s.String())
	}
	return strings.Join(blocks, "\n")
}
