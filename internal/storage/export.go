// ABOUTME: Export and import functionality for roster data.
// ABOUTME: Supports JSON, YAML, XML and Markdown export formats.
package storage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swim/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for roster data.
// It shares the swimmer schema of the file stores, so a store file can be imported too.
type ExportData struct {
	XMLName    xml.Name        `xml:"swimmers" json:"-" yaml:"-"`
	ID         string          `xml:"export_id,attr,omitempty" json:"export_id,omitempty" yaml:"export_id,omitempty"`
	Version    string          `xml:"version,attr" json:"version" yaml:"version"`
	ExportedAt time.Time       `xml:"exported_at,attr,omitempty" json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
	Tool       string          `xml:"tool,attr,omitempty" json:"tool,omitempty" yaml:"tool,omitempty"`
	Swimmers   []swimmerRecord `xml:"swimmer" json:"swimmers" yaml:"swimmers"`
}

// NewExport builds an export document for the given swimmers.
func NewExport(swimmers []*models.Swimmer) *ExportData {
	data := &ExportData{
		ID:         uuid.New().String(),
		Version:    SchemaVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "swim",
		Swimmers:   make([]swimmerRecord, 0, len(swimmers)),
	}
	for _, s := range swimmers {
		data.Swimmers = append(data.Swimmers, swimmerToRecord(s))
	}
	return data
}

// Export encodes swimmers in the given document format.
func Export(swimmers []*models.Swimmer, format Format) ([]byte, error) {
	data := NewExport(swimmers)
	if err := checkRecords(data.Swimmers, format == FormatXML); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		return yaml.Marshal(data)
	case FormatXML:
		out, err := xml.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), out...), nil
	}
	return nil, fmt.Errorf("unknown format: %q", format)
}

// Import decodes an export (or a file store document) into swimmers.
func Import(data []byte, format Format) ([]*models.Swimmer, error) {
	var exportData ExportData
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &exportData)
	case FormatYAML:
		err = yaml.Unmarshal(data, &exportData)
	case FormatXML:
		err = xml.Unmarshal(data, &exportData)
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", format, err)
	}

	swimmers := make([]*models.Swimmer, 0, len(exportData.Swimmers))
	for i := range exportData.Swimmers {
		s, err := swimmerFromRecord(&exportData.Swimmers[i])
		if err != nil {
			return nil, err
		}
		swimmers = append(swimmers, s)
	}
	return swimmers, nil
}

// ExportMarkdown renders the roster as Markdown tables.
func ExportMarkdown(swimmers []*models.Swimmer) string {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Swim Roster Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	var active, archived []*models.Swimmer
	for _, s := range swimmers {
		if s.Archived {
			archived = append(archived, s)
		} else {
			active = append(active, s)
		}
	}

	writeSwimmerTable(&sb, "Active Swimmers", active)
	writeSwimmerTable(&sb, "Archived Swimmers", archived)

	var pending []string
	for _, s := range swimmers {
		for _, r := range s.Races {
			if !r.Graded {
				pending = append(pending, fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
					mdCell(s.Name), r.ID, mdCell(r.Medal), mdCell(r.Type), mdCell(r.Time)))
			}
		}
	}
	if len(pending) > 0 {
		sb.WriteString("## Ungraded Races\n\n")
		sb.WriteString("| Swimmer | Race | Medal | Type | Time |\n")
		sb.WriteString("|---------|------|-------|------|------|\n")
		for _, line := range pending {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

func writeSwimmerTable(sb *strings.Builder, title string, swimmers []*models.Swimmer) {
	if len(swimmers) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	sb.WriteString("| ID | Name | Level | Category | Races | Graded |\n")
	sb.WriteString("|----|------|-------|----------|-------|--------|\n")
	for _, s := range swimmers {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %d | %d |\n",
			s.ID, mdCell(s.Name), s.Level, mdCell(s.Category), s.NumberOfRaces(), s.NumberOfGradedRaces()))
	}
	sb.WriteString("\n")
}

var mdCellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// mdCell keeps free text inside a single Markdown table cell.
func mdCell(s string) string {
	return mdCellReplacer.Replace(s)
}
