package db

import (
	"database/sql"
	"fmt"
)

// Base schema - run ids are Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY,
  run_uuid TEXT NOT NULL UNIQUE,
  experiment TEXT NOT NULL,
  status TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT
);

CREATE TABLE IF NOT EXISTS run_params (
  run_id INTEGER NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL,
  PRIMARY KEY (run_id, key),
  FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_metrics (
  run_id INTEGER NOT NULL,
  key TEXT NOT NULL,
  value REAL NOT NULL,
  recorded_at TEXT NOT NULL,
  PRIMARY KEY (run_id, key),
  FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_artifacts (
  run_id INTEGER NOT NULL,
  path TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT NOT NULL,
  PRIMARY KEY (run_id, path),
  FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: index for listing recent runs per experiment
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_experiment_started ON runs(experiment, started_at)`); err != nil {
		return fmt.Errorf("create idx_runs_experiment_started: %w", err)
	}

	// Migration 2: index for listing recent runs across experiments
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`); err != nil {
		return fmt.Errorf("create idx_runs_started_at: %w", err)
	}

	return nil
}
