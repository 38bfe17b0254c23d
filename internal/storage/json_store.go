package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/plando/internal/schedule"
)

// JSONStore keeps the document in a single file on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a file-backed provider. The file is created on the
// first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the saved document from disk.
func (s *JSONStore) Load() (*schedule.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return decode(data)
}

// Save writes the document atomically: to a temp file in the same directory,
// then renamed over the slot, so a crash mid-write cannot corrupt the slot.
func (s *JSONStore) Save(doc *schedule.Document) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".plando-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}

// Reset removes the file. Not an error if it never existed.
func (s *JSONStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", s.path, err)
	}
	return nil
}

// Path returns the file location.
func (s *JSONStore) Path() string {
	return s.path
}

// Close is a no-op for the file backend.
func (s *JSONStore) Close() error {
	return nil
}
