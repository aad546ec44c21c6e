// Package migration applies the numbered SQL files of an fs.FS to a database,
// tracking the applied version in a single-row schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Migration is one NNN_name.sql file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db   *sql.DB
	fsys fs.FS
}

func NewRunner(db *sql.DB, fsys fs.FS) *Runner {
	return &Runner{db: db, fsys: fsys}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied version, 0 for a fresh database
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded version
func (r *Runner) SetVersion(version int) error {
	if err := r.ensureVersionTable(); err != nil {
		return err
	}
	return setVersion(r.db, version)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func setVersion(db execer, version int) error {
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// Migrations parses every .sql file at the root of the fs, ordered by version
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		m, err := parseName(e.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		m.SQL = string(body)
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func parseName(filename string) (Migration, error) {
	prefix, rest, ok := strings.Cut(filename, "_")
	if !ok {
		return Migration{}, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return Migration{}, fmt.Errorf("invalid version in %s: %w", filename, err)
	}
	if version < 1 {
		return Migration{}, fmt.Errorf("invalid version in %s: must be at least 1", filename)
	}
	return Migration{Version: version, Name: strings.TrimSuffix(rest, ".sql")}, nil
}

// LatestVersion is the highest version available, 0 with no files
func (r *Runner) LatestVersion() (int, error) {
	ms, err := r.Migrations()
	if err != nil || len(ms) == 0 {
		return 0, err
	}
	return ms[len(ms)-1].Version, nil
}

// Apply runs every pending migration, each in its own transaction together
// with the version bump. It returns how many were applied.
func (r *Runner) Apply(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}
	ms, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(ms) == 0 {
		logFn("no migration files found")
		return 0, nil
	}
	if latest := ms[len(ms)-1].Version; current > latest {
		return 0, newerSchemaError(current, latest)
	}

	start := time.Now()
	applied := 0
	for _, m := range ms {
		if m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("applying migration %03d %s", m.Version, m.Name))
		if err := r.applyOne(m); err != nil {
			return applied, err
		}
		applied++
	}

	if applied == 0 {
		logFn(fmt.Sprintf("schema up to date at version %d", current))
	} else {
		logFn(fmt.Sprintf("applied %d migration(s) in %v", applied, time.Since(start)))
	}
	return applied, nil
}

func (r *Runner) applyOne(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: begin: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := setVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit: %w", m.Version, err)
	}
	return nil
}

// Validate fails when the database is ahead of the embedded migrations
func (r *Runner) Validate() error {
	current, err := r.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.LatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return newerSchemaError(current, latest)
	}
	return nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
}
