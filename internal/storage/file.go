// ABOUTME: Single-file roster stores encoded as XML, JSON or YAML.
// ABOUTME: Writes go through a temp file and rename so a failed write keeps the old file.
package storage

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/swim/internal/models"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileName returns the default file name for the format.
func (f Format) FileName() string {
	return "swimmers." + string(f)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatJSON, FormatYAML:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format: %q", s)
}

// FileStore keeps the whole roster in one file.
type FileStore struct {
	path   string
	format Format
}

// Compile-time check that FileStore implements Serializer.
var _ Serializer = (*FileStore)(nil)

// NewFileStore creates a store for path. Nothing is touched on disk until Write.
func NewFileStore(path string, format Format) *FileStore {
	return &FileStore{path: path, format: format}
}

// NewXMLStore creates the reference XML store.
func NewXMLStore(path string) *FileStore {
	return NewFileStore(path, FormatXML)
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read decodes the backing file.
func (s *FileStore) Read() ([]*models.Swimmer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	doc, err := decodeDocument(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc.swimmers()
}

// Write replaces the backing file with the given swimmers.
func (s *FileStore) Write(swimmers []*models.Swimmer) error {
	data, err := encodeDocument(s.format, newDocument(swimmers))
	if err != nil {
		return fmt.Errorf("encode swimmers: %w", err)
	}
	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error {
	return nil
}

func encodeDocument(format Format, doc *rosterDocument) ([]byte, error) {
	if err := checkRecords(doc.Swimmers, format == FormatXML); err != nil {
		return nil, err
	}
	switch format {
	case FormatXML:
		out, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), append(out, '\n')...), nil
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unknown format: %q", format)
}

func decodeDocument(format Format, data []byte) (*rosterDocument, error) {
	var doc rosterDocument
	var err error
	switch format {
	case FormatXML:
		err = xml.Unmarshal(data, &doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrCorrupt)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("%w: missing schema version", ErrCorrupt)
	}
	return &doc, nil
}

// atomicWrite writes data to a temp file next to path and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
