package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Tables are created as-is and never altered. Foreign keys are declared but
// SQLite leaves enforcement off unless a connection asks for it.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS radios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		radio_id TEXT,
		serial TEXT NOT NULL,
		model TEXT,
		assigned_to TEXT,
		notes TEXT,
		department_id TEXT,
		date_received TEXT,
		date_issued TEXT,
		date_returned TEXT,
		last_updated TEXT,
		status TEXT DEFAULT 'Active',
		missing TEXT DEFAULT 'No',
		FOREIGN KEY (department_id) REFERENCES departments(id)
	)`,
	`CREATE TABLE IF NOT EXISTS radio_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		radio_id INTEGER,
		change_type TEXT,
		field_changed TEXT,
		old_value TEXT,
		new_value TEXT,
		timestamp TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		radio_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		date_service TEXT,
		lrc_service_num TEXT,
		date_sent TEXT,
		date_repaired TEXT,
		amount REAL,
		problem TEXT,
		notes TEXT,
		FOREIGN KEY (radio_id) REFERENCES radios(id) ON DELETE CASCADE
	)`,
}

// Init is safe to run on every start.
func Init(db *gorm.DB) error {
	for _, stmt := range tables {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("schema could not be initialized: %w", err)
		}
	}
	return nil
}
