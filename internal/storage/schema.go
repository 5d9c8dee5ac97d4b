// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for swimmers and their races.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS swimmers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		level INTEGER NOT NULL,
		category TEXT NOT NULL,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS races (
		swimmer_id INTEGER NOT NULL,
		race_id INTEGER NOT NULL,
		medal TEXT NOT NULL,
		race_time TEXT NOT NULL,
		race_type TEXT NOT NULL,
		graded INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (swimmer_id, race_id),
		FOREIGN KEY (swimmer_id) REFERENCES swimmers(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_races_graded ON races(graded);
	`

	_, err := d.db.Exec(schema)
	return err
}
