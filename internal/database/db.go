// Package database owns the connection to a team database file
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/clubhouse/internal/models"
	_ "modernc.org/sqlite"
)

// requiredColumns is the schema contract with the game data files.
var requiredColumns = map[string][]string{
	"League": {"ID", "LeagueName"},
	"Teams":  models.TeamFieldNames,
	"Staff":  {"ID", "Name", "AbilityJSON", "Fame", "EmployedTeamID"},
}

// Store owns the single live connection to one database file.
// mu guards the handle so it is never open twice, including across the
// close/copy/reopen window of ExportCopy.
type Store struct {
	mu   sync.Mutex
	path string
	db   *sqlx.DB
}

// Open connects to an existing database file and checks that the League,
// Teams and Staff tables carry the expected columns.
func Open(ctx context.Context, path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &models.StorageError{Op: "open database", Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &models.StorageError{Op: "open database", Err: err}
	}
	if info.IsDir() {
		return nil, &models.StorageError{Op: "open database", Err: fmt.Errorf("%s is a directory", abs)}
	}

	db, err := connect(ctx, abs)
	if err != nil {
		return nil, &models.StorageError{Op: "open database", Err: err}
	}

	if err := verifySchema(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, &models.StorageError{Op: "verify schema", Err: err}
	}

	slog.Info("database opened", "path", abs)
	return &Store{path: abs, db: db}, nil
}

// connect opens the handle and applies connection settings.
func connect(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Reads, writes and the export checkpoint all share one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing db", "error", closeErr)
			}
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// verifySchema reports the first missing table or column
func verifySchema(ctx context.Context, db *sqlx.DB) error {
	for _, table := range []string{"League", "Teams", "Staff"} {
		var cols []string
		if err := db.SelectContext(ctx, &cols, `SELECT name FROM pragma_table_info(?)`, table); err != nil {
			return fmt.Errorf("read columns of %s: %w", table, err)
		}
		if len(cols) == 0 {
			return fmt.Errorf("table %s is missing", table)
		}

		have := make(map[string]bool, len(cols))
		for _, c := range cols {
			have[strings.ToLower(c)] = true
		}
		for _, want := range requiredColumns[table] {
			if !have[strings.ToLower(want)] {
				return fmt.Errorf("table %s has no column %s", table, want)
			}
		}
	}
	return nil
}

// Path is the absolute path of the open file
func (s *Store) Path() string {
	return s.path
}

// Dir is the directory holding the database file, where logos live too
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Close releases the connection. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return &models.StorageError{Op: "close database", Err: err}
	}
	return nil
}

// handle returns the live connection. Callers must hold mu.
func (s *Store) handle() (*sqlx.DB, error) {
	if s.db == nil {
		return nil, models.ErrNoDatabase
	}
	return s.db, nil
}

// storageErr wraps err for op unless it is already classified
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrNoDatabase) {
		return err
	}
	return &models.StorageError{Op: op, Err: err}
}
