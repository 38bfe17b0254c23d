package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/plando/internal/schedule"
)

// SQLiteStore keeps the document in a one-row slot table inside a SQLite
// database. The database can be shared with other tools; plando only touches
// its own slot.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			name       TEXT PRIMARY KEY,
			document   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	return err
}

// Load reads the saved document from the slot.
func (s *SQLiteStore) Load() (*schedule.Document, error) {
	var data string
	err := s.db.QueryRow(`SELECT document FROM slots WHERE name = ?`, SlotName).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}
	return decode([]byte(data))
}

// Save replaces the slot's document.
func (s *SQLiteStore) Save(doc *schedule.Document) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO slots (name, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, SlotName, string(data), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	return nil
}

// Reset clears the slot. Not an error if already empty.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE name = ?`, SlotName); err != nil {
		return fmt.Errorf("clearing slot: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
