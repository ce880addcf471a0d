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

CREATE TABLE IF NOT EXISTS user_profile (
  slot INTEGER PRIMARY KEY CHECK(slot = 1),
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  age INTEGER NOT NULL CHECK(age > 0),
  gender TEXT NOT NULL CHECK(gender IN ('male', 'female')),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  activity_level TEXT NOT NULL,
  goal TEXT NOT NULL CHECK(goal IN ('lose', 'maintain', 'gain')),
  daily_calorie_goal INTEGER NOT NULL DEFAULT 0,
  preferred_language TEXT NOT NULL DEFAULT 'en',
  created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS meal_entries (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  logged_at DATETIME NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack')),
  foods_json TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  fiber_g REAL NOT NULL CHECK(fiber_g >= 0),
  sugar_g REAL NOT NULL CHECK(sugar_g >= 0),
  sodium_mg INTEGER NOT NULL CHECK(sodium_mg >= 0),
  image_ref TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_meal_entries_logged_at ON meal_entries(logged_at);

CREATE TABLE IF NOT EXISTS daily_progress (
  date TEXT PRIMARY KEY,
  calories_consumed INTEGER NOT NULL CHECK(calories_consumed >= 0),
  calories_goal INTEGER NOT NULL CHECK(calories_goal >= 0),
  nutrition_json TEXT NOT NULL,
  meals_json TEXT NOT NULL
);
`,
	},
	{
		version: 2,
		name:    "app_settings",
		sql: `
CREATE TABLE IF NOT EXISTS app_settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
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
