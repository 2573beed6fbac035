package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  gender TEXT NOT NULL CHECK(gender IN ('male', 'female')),
  age_years INTEGER NOT NULL CHECK(age_years BETWEEN 1 AND 120),
  weight_kg REAL NOT NULL CHECK(weight_kg >= 30),
  daily_goal_calories INTEGER NOT NULL CHECK(daily_goal_calories BETWEEN 500 AND 10000),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS day_state (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  date_stamp TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS day_scans (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  product_name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  activities_json TEXT NOT NULL,
  recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS day_activities (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  activity_type TEXT NOT NULL,
  duration_min INTEGER NOT NULL CHECK(duration_min > 0),
  calories_burned INTEGER NOT NULL CHECK(calories_burned >= 0),
  recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_archive (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  product_name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  activities_json TEXT NOT NULL,
  recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_archive (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  activity_type TEXT NOT NULL,
  duration_min INTEGER NOT NULL CHECK(duration_min > 0),
  calories_burned INTEGER NOT NULL CHECK(calories_burned >= 0),
  recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quota_state (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  date_stamp TEXT NOT NULL,
  scan_count INTEGER NOT NULL DEFAULT 0 CHECK(scan_count >= 0),
  activity_count INTEGER NOT NULL DEFAULT 0 CHECK(activity_count >= 0)
);

CREATE INDEX IF NOT EXISTS idx_scan_archive_recorded_at ON scan_archive(recorded_at);
CREATE INDEX IF NOT EXISTS idx_activity_archive_recorded_at ON activity_archive(recorded_at);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 3,
		name:    "water_tracking",
		sql: `
ALTER TABLE day_state ADD COLUMN water_cups INTEGER NOT NULL DEFAULT 0 CHECK(water_cups >= 0);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
