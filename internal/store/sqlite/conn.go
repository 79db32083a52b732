package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode. In-memory paths ("file::memory:" or ":memory:") are passed
// through for tests.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(path, ":memory:") {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the ledger tables if they do not exist. The composite
// primary key on Activations is what enforces the once-per-day invariant.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Activations (
            RecordId TEXT NOT NULL,
            UserId TEXT NOT NULL,
            ChakraIndex INTEGER NOT NULL,
            Category TEXT NOT NULL,
            Day TEXT NOT NULL,
            ReflectionText TEXT,
            CompletedAt TIMESTAMP NOT NULL,
            PRIMARY KEY(UserId, ChakraIndex, Day, Category)
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS Activations_RecordId_Idx ON Activations(RecordId);`,
		`CREATE TABLE IF NOT EXISTS UserProfiles (
            UserId TEXT PRIMARY KEY,
            EnergyPoints INTEGER NOT NULL DEFAULT 0,
            LastUpdateTime TIMESTAMP
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}
