package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies the connection
// pragmas, creates missing event tables and seeds the sequence counter.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	drv := entsql.OpenDB(dialect.SQLite, db)

	seq, err := prepare(db, drv)
	if err != nil {
		drv.Close()
		return nil, err
	}
	return &Store{db: db, drv: drv, seq: seq}, nil
}

func prepare(db *sql.DB, drv *entsql.Driver) (*sequenceCounter, error) {
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("apply %s: %w", p, err)
		}
	}
	if err := migrate(context.Background(), drv); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return newSequenceCounter(db)
}

// pragmas tune SQLite for a single local user: WAL so readers never block
// the writer, and a busy timeout instead of immediate SQLITE_BUSY.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error { return s.drv.Close() }

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// DefaultDBPath returns QUIZKIT_DB when set, otherwise quizkit.db under
// the XDG data directory ($XDG_DATA_HOME or ~/.local/share). The parent
// directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("QUIZKIT_DB")
	if p == "" {
		base, err := dataHome()
		if err != nil {
			return "", err
		}
		p = filepath.Join(base, "quizkit", "quizkit.db")
	}
	return p, EnsureDir(p)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
