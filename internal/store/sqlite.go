package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a share value does not resolve to a stored
// document. Callers treat it as "nothing to load", not a hard failure.
var ErrNotFound = errors.New("share not found")

// SQLiteStore persists share documents in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite share store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveDocument stores a share payload and returns its generated id.
func (s *SQLiteStore) SaveDocument(ctx context.Context, payload string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shares (id, payload, created_at) VALUES (?, ?, ?)`,
		id, payload, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save share document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a share payload by id.
// Returns ErrNotFound if no document exists for the id.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM shares WHERE id = ?`, id,
	).Scan(&payload)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get share document: %w", err)
	}
	return payload, nil
}

// DeleteOldDocuments removes documents older than the retention window.
// Returns the number of documents deleted.
func (s *SQLiteStore) DeleteOldDocuments(ctx context.Context, olderThan time.Duration) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, `DELETE FROM shares WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old share documents: %w", err)
	}
	return res.RowsAffected()
}
