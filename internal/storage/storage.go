// Package storage persists the application state as a single JSON document
// under one named slot.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/javiermolinar/plando/internal/schedule"
)

// Storage errors.
var (
	// ErrNotFound means the slot is empty: nothing has been saved yet,
	// or the slot was reset.
	ErrNotFound = errors.New("no saved document")
)

// SlotName is the single slot the application document lives under.
const SlotName = "plando"

// Provider is the durable storage boundary. Implementations hold exactly one
// document per slot; Save replaces the previous document wholesale.
type Provider interface {
	// Load reads the saved document. Returns ErrNotFound if the slot is empty.
	Load() (*schedule.Document, error)

	// Save replaces the slot's document.
	Save(doc *schedule.Document) error

	// Reset clears the slot entirely. Not an error if already empty.
	Reset() error

	// Path returns the location of the underlying storage, for display.
	Path() string

	// Close releases any resources held by the provider.
	Close() error
}

// encode serializes a document for storage.
func encode(doc *schedule.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return data, nil
}

// decode parses a stored document, normalizing nil collections so callers
// never see a half-initialized state.
func decode(data []byte) (*schedule.Document, error) {
	var doc schedule.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if doc.Schedules == nil {
		doc.Schedules = []schedule.Schedule{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []schedule.Task{}
	}
	for i := range doc.Schedules {
		if doc.Schedules[i].Plan == nil {
			doc.Schedules[i].Plan = []schedule.Work{}
		}
		if doc.Schedules[i].Do == nil {
			doc.Schedules[i].Do = []schedule.Work{}
		}
	}
	return &doc, nil
}
