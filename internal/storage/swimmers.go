// ABOUTME: Whole-roster read and write for SQLite storage.
// ABOUTME: Write replaces every row inside one transaction.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/swim/internal/models"
)

// Read loads every swimmer with its races, ordered by ID.
func (d *DB) Read() ([]*models.Swimmer, error) {
	rows, err := d.db.Query(`
		SELECT id, name, level, category, archived, created_at, updated_at
		FROM swimmers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list swimmers: %w", err)
	}
	defer rows.Close()

	var records []*swimmerRecord
	byID := make(map[int]*swimmerRecord)
	for rows.Next() {
		var rec swimmerRecord
		var archived int
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Level, &rec.Category, &archived, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan swimmer: %w", err)
		}
		rec.Archived = archived != 0
		records = append(records, &rec)
		byID[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list swimmers: %w", err)
	}

	if err := d.readRaces(byID); err != nil {
		return nil, err
	}

	swimmers := make([]*models.Swimmer, 0, len(records))
	for _, rec := range records {
		s, err := swimmerFromRecord(rec)
		if err != nil {
			return nil, err
		}
		swimmers = append(swimmers, s)
	}
	return swimmers, nil
}

func (d *DB) readRaces(byID map[int]*swimmerRecord) error {
	rows, err := d.db.Query(`
		SELECT swimmer_id, race_id, medal, race_time, race_type, graded
		FROM races
		ORDER BY swimmer_id ASC, race_id ASC
	`)
	if err != nil {
		return fmt.Errorf("list races: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var swimmerID, graded int
		var rr raceRecord
		if err := rows.Scan(&swimmerID, &rr.ID, &rr.Medal, &rr.Time, &rr.Type, &graded); err != nil {
			return fmt.Errorf("scan race: %w", err)
		}
		rr.Graded = graded != 0
		rec, ok := byID[swimmerID]
		if !ok {
			return fmt.Errorf("%w: race %d references missing swimmer %d", ErrCorrupt, rr.ID, swimmerID)
		}
		rec.Races = append(rec.Races, rr)
	}
	return rows.Err()
}

// Write replaces all stored swimmers and races.
func (d *DB) Write(swimmers []*models.Swimmer) error {
	recs := make([]swimmerRecord, 0, len(swimmers))
	for _, s := range swimmers {
		recs = append(recs, swimmerToRecord(s))
	}
	if err := checkRecords(recs, false); err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM races"); err != nil {
		return fmt.Errorf("clear races: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM swimmers"); err != nil {
		return fmt.Errorf("clear swimmers: %w", err)
	}

	for _, rec := range recs {
		if err := insertSwimmer(tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit swimmers: %w", err)
	}
	return nil
}

func insertSwimmer(tx *sql.Tx, rec swimmerRecord) error {
	_, err := tx.Exec(`
		INSERT INTO swimmers (id, name, level, category, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, rec.Level, rec.Category, boolToInt(rec.Archived), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert swimmer %d: %w", rec.ID, err)
	}

	for _, rr := range rec.Races {
		_, err := tx.Exec(`
			INSERT INTO races (swimmer_id, race_id, medal, race_time, race_type, graded)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID, rr.ID, rr.Medal, rr.Time, rr.Type, boolToInt(rr.Graded))
		if err != nil {
			return fmt.Errorf("insert race %d for swimmer %d: %w", rr.ID, rec.ID, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
