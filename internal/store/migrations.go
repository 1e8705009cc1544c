package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Imported runs, one row per run. Optional fields are nullable;
		// weather readings live inline since they are 1:1 with the run.
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			start_date_local TEXT NOT NULL,
			distance REAL NOT NULL,
			moving_time INTEGER NOT NULL,
			elapsed_time INTEGER NOT NULL,
			total_elevation_gain REAL,
			average_heartrate REAL,
			max_heartrate REAL,
			temperature_c REAL,
			humidity_pct REAL,
			wind_speed_kmh REAL,
			condition_label TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_start_date ON runs(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_start_date_local ON runs(start_date_local)`,

		// Import State (key-value store for import bookkeeping)
		`CREATE TABLE IF NOT EXISTS import_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
