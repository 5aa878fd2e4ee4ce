package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"notesapi/internal/config"
)

type migrationStep struct {
	Name string
	SQL  string
}

// dialect bundles the per-driver sentinel query and DDL.
type dialect struct {
	sentinel string
	steps    []migrationStep
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		sentinel: "SELECT to_regclass('public.notes') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_notes",
				SQL: `CREATE TABLE IF NOT EXISTS notes (
  id          SERIAL  PRIMARY KEY,
  name        TEXT    NOT NULL,
  description TEXT    NOT NULL,
  done        BOOLEAN NOT NULL DEFAULT FALSE
);`,
			},
			{
				Name: "create_index_notes_name",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_name ON notes (name);`,
			},
		},
	},
	config.DriverSQLite: {
		sentinel: "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'notes'",
		steps: []migrationStep{
			{
				Name: "create_table_notes",
				SQL: `CREATE TABLE IF NOT EXISTS notes (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  name        TEXT    NOT NULL,
  description TEXT    NOT NULL,
  done        BOOLEAN NOT NULL DEFAULT 0
);`,
			},
			{
				Name: "create_index_notes_name",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_name ON notes (name);`,
			},
		},
	},
}

// EnsureMigrated checks if the 'notes' table exists and runs migrations if it doesn't.
// driver is one of config.DriverPostgres or config.DriverSQLite.
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger, dbHost string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, d.sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range d.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
