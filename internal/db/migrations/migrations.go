package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed 001_sessions.sql
var sessionsSQL string

//go:embed 002_export_meta.sql
var exportMetaSQL string

// All contains all migrations in order. Each migration's index+1 is its version number.
var All = []string{
	sessionsSQL,   // version 1
	exportMetaSQL, // version 2
}

// Version returns the schema version stored in the database.
func Version(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate runs every migration newer than the stored PRAGMA user_version,
// each in its own transaction. It stops at the first failure.
func Migrate(db *sql.DB) error {
	version, err := Version(db)
	if err != nil {
		return err
	}

	for i := version; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to set schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
