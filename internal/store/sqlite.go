package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bf.store")

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS programs (
			name TEXT PRIMARY KEY,
			source TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			output_bytes INTEGER NOT NULL,
			ts TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_by_name ON runs (name, id);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	s := &SQLite{db: db}

	version, err := s.getMetadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}

	switch version {
	case "":
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
		log.Debugf("created %s with schema version %s", path, SchemaVersion)
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Get retrieves a program by name.
func (s *SQLite) Get(name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var source string
	err := s.db.QueryRow("SELECT source FROM programs WHERE name = ?", name).Scan(&source)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return source, true, nil
}

// Put stores a program by name.
func (s *SQLite) Put(name, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO programs (name, source) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET source = excluded.source
	`, name, source)
	return err
}

// Delete removes a program and its runs.
func (s *SQLite) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM programs WHERE name = ?", name); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM runs WHERE name = ?", name)
	return err
}

// List returns all program names in sorted order.
func (s *SQLite) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name FROM programs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordRun appends a benchmark run.
func (s *SQLite) RecordRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.Ts.IsZero() {
		run.Ts = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (name, iterations, elapsed_ns, output_bytes, ts) VALUES (?, ?, ?, ?, ?)
	`, run.Name, run.Iterations, int64(run.Elapsed), run.Output, run.Ts.Format(time.RFC3339Nano))
	return err
}

// Runs returns recorded runs, newest first.
func (s *SQLite) Runs(name string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT iterations, elapsed_ns, output_bytes, ts FROM runs WHERE name = ? ORDER BY id DESC"
	args := []any{name}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			elapsed int64
			ts      string
		)
		if err := rows.Scan(&r.Iterations, &elapsed, &r.Output, &ts); err != nil {
			return nil, err
		}
		r.Name = name
		r.Elapsed = time.Duration(elapsed)
		if r.Ts, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("run timestamp %q: %w", ts, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// getMetadata retrieves a metadata value by key. Only NewSQLite calls it,
// before the store is shared.
func (s *SQLite) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadata stores a metadata value by key.
func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
