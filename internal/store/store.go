// Package store persists diagrams in a local SQLite database.
package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nhath/ezchart/internal/diagram"
)

// ErrNotFound is returned when no diagram matches
var ErrNotFound = errors.New("diagram not found")

// Summary is the listing row shown by the open-diagram dialog
type Summary struct {
	ID           string
	Name         string
	DatabaseType diagram.DatabaseType
	TableCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store manages diagram persistence
type Store struct {
	db *sql.DB
}

// NewStore opens the store under the XDG data directory
func NewStore() (*Store, error) {
	dbPath, err := xdg.DataFile("ezchart/diagrams.db")
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens (or creates) the store at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under concurrent tea.Cmds
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS diagrams (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			database_type TEXT NOT NULL,
			table_count INTEGER NOT NULL DEFAULT 0,
			body TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_diagrams_updated_at ON diagrams(updated_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces a diagram
func (s *Store) Save(d *diagram.Diagram) error {
	body, err := diagram.Marshal(d)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO diagrams (id, name, database_type, table_count, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			database_type = excluded.database_type,
			table_count = excluded.table_count,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, d.ID, d.Name, string(d.DatabaseType), len(d.Tables), string(body), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save diagram %s: %w", d.ID, err)
	}
	return nil
}

// Create stores a new empty diagram
func (s *Store) Create(name string, dbType diagram.DatabaseType) (*diagram.Diagram, error) {
	d := diagram.New(name, dbType)
	if err := s.Save(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a diagram by ID
func (s *Store) Get(id string) (*diagram.Diagram, error) {
	return s.scanBody(s.db.QueryRow("SELECT body FROM diagrams WHERE id = ?", id))
}

// Latest returns the most recently updated diagram
func (s *Store) Latest() (*diagram.Diagram, error) {
	return s.scanBody(s.db.QueryRow("SELECT body FROM diagrams ORDER BY updated_at DESC LIMIT 1"))
}

// Find resolves a diagram by ID, ID prefix, or exact name
func (s *Store) Find(ref string) (*diagram.Diagram, error) {
	d, err := s.Get(ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return d, err
	}
	row := s.db.QueryRow(`
		SELECT body FROM diagrams
		WHERE name = ? OR id LIKE ?
		ORDER BY updated_at DESC LIMIT 1
	`, ref, strings.ReplaceAll(ref, "%", "")+"%")
	return s.scanBody(row)
}

func (s *Store) scanBody(row *sql.Row) (*diagram.Diagram, error) {
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return diagram.Decode(bytes.NewBufferString(body))
}

// List returns all diagrams, most recently updated first
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT id, name, database_type, table_count, created_at, updated_at
		FROM diagrams
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var dbType string
		if err := rows.Scan(&sm.ID, &sm.Name, &dbType, &sm.TableCount, &sm.CreatedAt, &sm.UpdatedAt); err != nil {
			return nil, err
		}
		sm.DatabaseType = diagram.DatabaseType(dbType)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// UpdateName renames a diagram and returns its new UpdatedAt
func (s *Store) UpdateName(id, name string) (time.Time, error) {
	d, err := s.Get(id)
	if err != nil {
		return time.Time{}, err
	}
	d.Name = name
	d.Touch()
	if err := s.Save(d); err != nil {
		return time.Time{}, err
	}
	return d.UpdatedAt, nil
}

// Delete removes a diagram by ID
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM diagrams WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored diagrams
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM diagrams").Scan(&count)
	return count, err
}
