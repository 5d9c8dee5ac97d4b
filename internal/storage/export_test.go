// ABOUTME: Tests for roster export and import.
// ABOUTME: Covers JSON, YAML and XML exports and the Markdown report.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/swim/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range allFormats {
		t.Run(string(format), func(t *testing.T) {
			want := sampleSwimmers()

			data, err := Export(want, format)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}

			got, err := Import(data, format)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			assertSwimmersEqual(t, got, want)
		})
	}
}

func TestExportJSONEnvelope(t *testing.T) {
	data, err := Export(sampleSwimmers(), FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var envelope struct {
		ExportID string `json:"export_id"`
		Version  string `json:"version"`
		Tool     string `json:"tool"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if _, err := uuid.Parse(envelope.ExportID); err != nil {
		t.Errorf("export_id %q is not a UUID: %v", envelope.ExportID, err)
	}
	if envelope.Version != SchemaVersion || envelope.Tool != "swim" {
		t.Errorf("unexpected envelope: %+v", envelope)
	}
}

func TestImportStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swimmers.xml")
	store := NewXMLStore(path)
	want := sampleSwimmers()
	if err := store.Write(want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Import(data, FormatXML)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	assertSwimmersEqual(t, got, want)
}

func TestImportInvalid(t *testing.T) {
	if _, err := Import([]byte("{"), FormatJSON); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := Import([]byte("{}"), Format("csv")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportMarkdown(t *testing.T) {
	md := ExportMarkdown(sampleSwimmers())

	for _, want := range []string{
		"# Swim Roster Export",
		"## Active Swimmers",
		"## Archived Swimmers",
		"| 1 | Sarah | 3 | Freestyle | 1 | 1 |",
		"| 0 | Michael | 5 | Backstroke | 1 | 1 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## Ungraded Races") {
		t.Errorf("expected no ungraded section when every race is graded:\n%s", md)
	}

	swimmers := sampleSwimmers()
	swimmers[2].AddRace(models.NewRace("Silver", "00:01:00", "Butterfly"))
	md = ExportMarkdown(swimmers)
	if !strings.Contains(md, "| Tom | 0 | Silver | Butterfly | 00:01:00 |") {
		t.Errorf("markdown missing ungraded race:\n%s", md)
	}
}

func TestExportMarkdownEscapesCells(t *testing.T) {
	s := models.NewSwimmer("Ann | Lee", 2, "Free\nstyle")
	s.AddRace(models.NewRace("Gold|Silver", "00:01:00", "Relay\r\nleg"))

	md := ExportMarkdown([]*models.Swimmer{s})

	for _, want := range []string{
		`| 0 | Ann \| Lee | 2 | Free style | 1 | 0 |`,
		`| Ann \| Lee | 0 | Gold\|Silver | Relay leg | 00:01:00 |`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportRejectsUnencodableText(t *testing.T) {
	bad := []*models.Swimmer{models.NewSwimmer("bad\xffutf8", 1, "Freestyle")}
	for _, format := range []Format{FormatXML, FormatJSON, FormatYAML} {
		if _, err := Export(bad, format); !errors.Is(err, ErrUnencodable) {
			t.Errorf("Export(%s) error = %v, want ErrUnencodable", format, err)
		}
	}

	ctrl := []*models.Swimmer{models.NewSwimmer("a\x01b", 1, "Freestyle")}
	if _, err := Export(ctrl, FormatXML); !errors.Is(err, ErrUnencodable) {
		t.Errorf("Export(xml) error = %v, want ErrUnencodable", err)
	}
	if _, err := Export(ctrl, FormatJSON); err != nil {
		t.Errorf("Export(json) failed: %v", err)
	}
}
