package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jole/ivsb/internal/db/migrations"
	"github.com/jole/ivsb/pkg/models"
)

// DB wraps a SQLite snapshot of exported sessions
type DB struct {
	conn *sql.DB
	path string
}

// New opens (creating if needed) the snapshot at dbPath and brings its
// schema up to date. dbPath is normalized with NormalizeDatabasePath.
func New(dbPath string) (*DB, error) {
	path, err := NormalizeDatabasePath(dbPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout first, before any other operations that might need write locks
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// SchemaVersion returns the stored schema version.
func (db *DB) SchemaVersion() (int, error) {
	return migrations.Version(db.conn)
}

// ReplaceSessions removes any previous snapshot and stores sessions in
// order, in a single transaction. exportedAt and source are kept in
// export_meta.
func (db *DB) ReplaceSessions(sessions []models.Session, source string, exportedAt time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM session_stations", "DELETE FROM sessions", "DELETE FROM export_meta"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
	}

	insertSession, err := tx.Prepare(`
		INSERT INTO sessions (kind, type, code, start, doy, duration, stations, db_code, ops_center, correlator, status, analysis, detail_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare session insert: %w", err)
	}
	defer insertSession.Close()

	insertStation, err := tx.Prepare(`
		INSERT INTO session_stations (session_id, position, station, removed)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer insertStation.Close()

	for _, s := range sessions {
		f := s.Fields
		var detail *string
		if s.DetailURL != "" {
			detail = &s.DetailURL
		}
		result, err := insertSession.Exec(
			s.Kind.String(),
			f[models.FieldType],
			f[models.FieldCode],
			f[models.FieldStart],
			f[models.FieldDOY],
			f[models.FieldDuration],
			f[models.FieldStations],
			f[models.FieldDBCode],
			f[models.FieldOpsCenter],
			f[models.FieldCorrelator],
			f[models.FieldStatus],
			f[models.FieldAnalysis],
			detail,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session %s: %w", s.Code(), err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}

		for removed, set := range [][]string{s.Active, s.Removed} {
			for pos, station := range set {
				if _, err := insertStation.Exec(id, pos, station, removed); err != nil {
					return fmt.Errorf("failed to insert station %s of %s: %w", station, s.Code(), err)
				}
			}
		}
	}

	meta := map[string]string{
		"source":      source,
		"exported_at": exportedAt.UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO export_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("failed to write export metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// CountSessions returns the number of stored sessions
func (db *DB) CountSessions() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Meta returns one export_meta value, or "" when it is missing.
func (db *DB) Meta(key string) (string, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM export_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read export metadata: %w", err)
	}
	return value, nil
}

// Sessions reads the snapshot back in export order.
func (db *DB) Sessions() ([]models.Session, error) {
	rows, err := db.conn.Query(`
		SELECT id, kind, type, code, start, doy, duration, db_code, ops_center, correlator, status, analysis, detail_url
		FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	type row struct {
		id     int64
		kind   models.Kind
		fields [models.FieldCount]string
		detail string
	}
	var stored []row
	for rows.Next() {
		var r row
		var kind string
		var detail sql.NullString
		f := &r.fields
		if err := rows.Scan(&r.id, &kind,
			&f[models.FieldType], &f[models.FieldCode], &f[models.FieldStart], &f[models.FieldDOY],
			&f[models.FieldDuration], &f[models.FieldDBCode], &f[models.FieldOpsCenter],
			&f[models.FieldCorrelator], &f[models.FieldStatus], &f[models.FieldAnalysis], &detail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if kind == models.Intensive.String() {
			r.kind = models.Intensive
		}
		r.detail = detail.String
		stored = append(stored, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	sessions := make([]models.Session, 0, len(stored))
	for _, r := range stored {
		active, removed, err := db.stations(r.id)
		if err != nil {
			return nil, err
		}
		s := models.NewSession(models.Ordinary, r.fields, active, removed, r.detail)
		// The stored type already carries the intensive marker.
		s.Kind = r.kind
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (db *DB) stations(sessionID int64) (active, removed []string, err error) {
	rows, err := db.conn.Query(`
		SELECT station, removed FROM session_stations
		WHERE session_id = ? ORDER BY removed, position`, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var station string
		var isRemoved bool
		if err := rows.Scan(&station, &isRemoved); err != nil {
			return nil, nil, fmt.Errorf("failed to scan station: %w", err)
		}
		if isRemoved {
			removed = append(removed, station)
		} else {
			active = append(active, station)
		}
	}
	return active, removed, rows.Err()
}

// SessionCodesForStation returns the codes of sessions a station takes part
// in (or was removed from, when removed is true), in export order.
func (db *DB) SessionCodesForStation(station string, removed bool) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT s.code FROM sessions s
		JOIN session_stations st ON st.session_id = s.id
		WHERE st.station = ? AND st.removed = ?
		ORDER BY s.id`, station, removed)
	if err != nil {
		return nil, fmt.Errorf("failed to query station sessions: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan session code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// TableExists checks if the named table exists
func (db *DB) TableExists(name string) (bool, error) {
	var found string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name=?`, name).Scan(&found)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return true, nil
}
