package index

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS repos (
	path      TEXT PRIMARY KEY,
	name      TEXT NOT NULL DEFAULT '',
	last_seen INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore keeps the index in a SQLite database with one row per record.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a store backed by the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	return sql.Open("sqlite", s.path)
}

// Load reads every row of the repos table. A file that is not a database,
// or lacks the table, is reported as corrupt.
func (s *SQLiteStore) Load() (*Index, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, gcderrors.NewStoreError("load", s.path, err)
	}

	db, err := s.open()
	if err != nil {
		return nil, gcderrors.NewStoreError("load", s.path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT path, name, last_seen FROM repos`)
	if err != nil {
		return New(), gcderrors.NewCorruptError(s.path, err)
	}
	defer rows.Close()

	x := New()
	for rows.Next() {
		var (
			path, name string
			seen       int64
		)
		if err := rows.Scan(&path, &name, &seen); err != nil {
			return New(), gcderrors.NewCorruptError(s.path, err)
		}
		if path == "" {
			continue
		}
		r := Record{Path: path, Name: name}
		if seen != 0 {
			r.LastSeen = time.Unix(0, seen).UTC()
		}
		x.Put(r)
	}
	if err := rows.Err(); err != nil {
		return New(), gcderrors.NewCorruptError(s.path, err)
	}
	return x, nil
}

// Save writes x to a fresh database next to the index and renames it into
// place, so a file that was never a database is simply replaced.
func (s *SQLiteStore) Save(x *Index) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return gcderrors.NewStoreError("save", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*.db")
	if err != nil {
		return gcderrors.NewStoreError("save", s.path, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := writeSQLite(tmpPath, x); err != nil {
		os.Remove(tmpPath)
		return gcderrors.NewStoreError("save", s.path, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on failure
		return gcderrors.NewStoreError("save", s.path, err)
	}
	return nil
}

// writeSQLite creates the schema in the empty database at path and inserts
// every record in one transaction.
func writeSQLite(path string, x *Index) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO repos (path, name, last_seen) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range x.Records() {
		var seen int64
		if !r.LastSeen.IsZero() {
			seen = r.LastSeen.UnixNano()
		}
		if _, err := stmt.Exec(r.Path, r.Name, seen); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return db.Close()
}
