// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a targeted row does not exist, so callers
	// can distinguish "already deleted" from "the write itself failed".
	ErrNotFound = errors.New("record not found")

	// ErrInvalidEntity is returned when an entity fails basic validation.
	ErrInvalidEntity = errors.New("invalid entity")
)

// =============================================================================
// STORE
// =============================================================================

// Store is the handle to the local prodtrack database. All export and
// snapshot functions take a *Store explicitly; there is no package-level
// database singleton.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite database at path and
// initializes the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	st := &Store{db: db, path: path}
	if err := st.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Debug("opened database", "path", path)
	return st, nil
}

// initSchema creates the database schema and metadata rows.
func (s *Store) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// TIMESTAMP HELPERS
// =============================================================================

// toMillis converts a time to Unix millis for storage.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts stored Unix millis back to a time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// nullMillis converts an optional time to a nullable column value.
func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return toMillis(*t)
}

// millisPtr converts a nullable column value back to an optional time.
func millisPtr(ms sql.NullInt64) *time.Time {
	if !ms.Valid {
		return nil
	}
	t := fromMillis(ms.Int64)
	return &t
}

// nullString converts an empty string to a NULL column value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
