// ABOUTME: Data migration between roster storage backends.
// ABOUTME: Copies every swimmer and race from a source store to a destination store.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Swimmers int
	Races    int
}

// MigrateData copies all data from src to dst storage.
// The destination is overwritten, since every store writes whole collections.
func MigrateData(src, dst Serializer) (*MigrateSummary, error) {
	swimmers, err := src.Read()
	if err != nil {
		return nil, fmt.Errorf("read source swimmers: %w", err)
	}

	if err := dst.Write(swimmers); err != nil {
		return nil, fmt.Errorf("write destination swimmers: %w", err)
	}

	summary := &MigrateSummary{Swimmers: len(swimmers)}
	for _, s := range swimmers {
		summary.Races += s.NumberOfRaces()
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
