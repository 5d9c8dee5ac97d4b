// ABOUTME: Persistence port for the swimmer roster and the records shared by its adapters.
// ABOUTME: Adapters read and write the whole collection; records are the explicit on-disk schema.
package storage

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/harperreed/swim/internal/models"
)

// ErrCorrupt is returned when stored data cannot be decoded into swimmers.
var ErrCorrupt = errors.New("corrupt swimmer data")

// ErrUnencodable is returned when swimmer text cannot be stored without change.
var ErrUnencodable = errors.New("unencodable swimmer text")

// SchemaVersion is written into every document-style store.
const SchemaVersion = "1.0"

// SwimmerKeyPrefix prefixes swimmer keys in key-value stores.
const SwimmerKeyPrefix = "swimmer:"

// Serializer is the persistence port used by the roster.
// Read returns the full collection; Write replaces it.
// File-backed stores wrap fs.ErrNotExist when nothing has been written yet.
type Serializer interface {
	Read() ([]*models.Swimmer, error)
	Write(swimmers []*models.Swimmer) error
	Close() error
}

// rosterDocument is the root element of XML, JSON and YAML stores.
type rosterDocument struct {
	XMLName  xml.Name        `xml:"swimmers" json:"-" yaml:"-"`
	Version  string          `xml:"version,attr" json:"version" yaml:"version"`
	Swimmers []swimmerRecord `xml:"swimmer" json:"swimmers" yaml:"swimmers"`
}

// swimmerRecord is the stored form of a models.Swimmer.
type swimmerRecord struct {
	ID        int          `xml:"id,attr" json:"id" yaml:"id"`
	Name      string       `xml:"name" json:"name" yaml:"name"`
	Level     int          `xml:"level" json:"level" yaml:"level"`
	Category  string       `xml:"category" json:"category" yaml:"category"`
	Archived  bool         `xml:"archived" json:"archived" yaml:"archived"`
	CreatedAt string       `xml:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt string       `xml:"updated_at" json:"updated_at" yaml:"updated_at"`
	Races     []raceRecord `xml:"races>race" json:"races" yaml:"races"`
}

// raceRecord is the stored form of a models.Race.
type raceRecord struct {
	ID     int    `xml:"id,attr" json:"id" yaml:"id"`
	Medal  string `xml:"medal" json:"medal" yaml:"medal"`
	Time   string `xml:"time" json:"time" yaml:"time"`
	Type   string `xml:"type" json:"type" yaml:"type"`
	Graded bool   `xml:"graded" json:"graded" yaml:"graded"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func swimmerToRecord(s *models.Swimmer) swimmerRecord {
	rec := swimmerRecord{
		ID:        s.ID,
		Name:      s.Name,
		Level:     s.Level,
		Category:  s.Category,
		Archived:  s.Archived,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
		Races:     make([]raceRecord, 0, len(s.Races)),
	}
	for _, r := range s.Races {
		rec.Races = append(rec.Races, raceRecord{
			ID:     r.ID,
			Medal:  r.Medal,
			Time:   r.Time,
			Type:   r.Type,
			Graded: r.Graded,
		})
	}
	return rec
}

// isXMLChar reports whether r is allowed in an XML 1.0 document.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// checkText rejects invalid UTF-8 and, for XML, characters outside the XML 1.0 range.
func checkText(field, value string, xmlText bool) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s %q is not valid UTF-8", ErrUnencodable, field, value)
	}
	if !xmlText {
		return nil
	}
	for _, r := range value {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %s %q contains %U, not allowed in XML", ErrUnencodable, field, value, r)
		}
	}
	return nil
}

// checkRecords verifies every free-text field survives a write and read.
func checkRecords(recs []swimmerRecord, xmlText bool) error {
	for i := range recs {
		rec := &recs[i]
		if err := checkText("name", rec.Name, xmlText); err != nil {
			return fmt.Errorf("swimmer %d: %w", rec.ID, err)
		}
		if err := checkText("category", rec.Category, xmlText); err != nil {
			return fmt.Errorf("swimmer %d: %w", rec.ID, err)
		}
		for _, rr := range rec.Races {
			for _, f := range []struct{ name, value string }{
				{"medal", rr.Medal}, {"time", rr.Time}, {"type", rr.Type},
			} {
				if err := checkText(f.name, f.value, xmlText); err != nil {
					return fmt.Errorf("swimmer %d race %d: %w", rec.ID, rr.ID, err)
				}
			}
		}
	}
	return nil
}

func swimmerFromRecord(rec *swimmerRecord) (*models.Swimmer, error) {
	createdAt, err := parseTime(rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: swimmer %d created_at %q: %v", ErrCorrupt, rec.ID, rec.CreatedAt, err)
	}
	updatedAt, err := parseTime(rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: swimmer %d updated_at %q: %v", ErrCorrupt, rec.ID, rec.UpdatedAt, err)
	}

	s := &models.Swimmer{
		ID:        rec.ID,
		Name:      rec.Name,
		Level:     rec.Level,
		Category:  rec.Category,
		Archived:  rec.Archived,
		Races:     make([]*models.Race, 0, len(rec.Races)),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	seen := make(map[int]bool, len(rec.Races))
	for _, rr := range rec.Races {
		if seen[rr.ID] {
			return nil, fmt.Errorf("%w: swimmer %d has duplicate race id %d", ErrCorrupt, rec.ID, rr.ID)
		}
		seen[rr.ID] = true
		s.Races = append(s.Races, &models.Race{
			ID:     rr.ID,
			Medal:  rr.Medal,
			Time:   rr.Time,
			Type:   rr.Type,
			Graded: rr.Graded,
		})
	}
	s.RestoreRaceCounter()
	return s, nil
}

func newDocument(swimmers []*models.Swimmer) *rosterDocument {
	doc := &rosterDocument{
		Version:  SchemaVersion,
		Swimmers: make([]swimmerRecord, 0, len(swimmers)),
	}
	for _, s := range swimmers {
		doc.Swimmers = append(doc.Swimmers, swimmerToRecord(s))
	}
	return doc
}

func (d *rosterDocument) swimmers() ([]*models.Swimmer, error) {
	out := make([]*models.Swimmer, 0, len(d.Swimmers))
	for i := range d.Swimmers {
		s, err := swimmerFromRecord(&d.Swimmers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SwimmerKey returns the key-value store key for a swimmer ID.
// IDs are zero padded so lexical key order matches roster order.
func SwimmerKey(id int) string {
	return fmt.Sprintf("%s%010d", SwimmerKeyPrefix, id)
}

// MarshalSwimmer encodes a single swimmer for key-value stores.
func MarshalSwimmer(s *models.Swimmer) ([]byte, error) {
	rec := swimmerToRecord(s)
	if err := checkRecords([]swimmerRecord{rec}, false); err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// UnmarshalSwimmer decodes a value written by MarshalSwimmer.
func UnmarshalSwimmer(data []byte) (*models.Swimmer, error) {
	var rec swimmerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return swimmerFromRecord(&rec)
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "swim")
}
