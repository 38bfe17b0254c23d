package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/plando/internal/schedule"
)

func testDocument() *schedule.Document {
	return &schedule.Document{
		Schedules: []schedule.Schedule{
			{
				WeekStartDate: "2024-06-03",
				Plan: []schedule.Work{
					{ID: "w1", Name: "Math", Start: 9, End: 10.5, DayOfWeek: 0, Color: "#B2C8E7"},
				},
				Do: []schedule.Work{},
			},
		},
		Tasks:         []schedule.Task{{Name: "Math", Color: "#B2C8E7"}},
		WeekStartDate: "2024-06-03",
	}
}

// providerTest exercises the Provider contract against any backend.
func providerTest(t *testing.T, p Provider) {
	t.Helper()

	// Empty slot.
	if _, err := p.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty slot = %v, want ErrNotFound", err)
	}

	// Reset on an empty slot is fine.
	if err := p.Reset(); err != nil {
		t.Fatalf("Reset on empty slot: %v", err)
	}

	// Save then load round-trips.
	doc := testDocument()
	if err := p.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.WeekStartDate != doc.WeekStartDate {
		t.Errorf("weekStartDate = %q, want %q", got.WeekStartDate, doc.WeekStartDate)
	}
	if len(got.Schedules) != 1 || len(got.Schedules[0].Plan) != 1 {
		t.Fatalf("schedules did not round-trip: %+v", got.Schedules)
	}
	w := got.Schedules[0].Plan[0]
	if w.Start != 9 || w.End != 10.5 {
		t.Errorf("work hours did not survive serialization: %+v", w)
	}
	if got.Schedules[0].Do == nil {
		t.Error("empty do lane decoded as nil")
	}

	// Save replaces wholesale.
	doc.WeekStartDate = "2024-06-10"
	doc.Schedules = append(doc.Schedules, schedule.NewSchedule("2024-06-10"))
	if err := p.Save(doc); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = p.Load()
	if err != nil {
		t.Fatalf("Load after replace: %v", err)
	}
	if got.WeekStartDate != "2024-06-10" || len(got.Schedules) != 2 {
		t.Errorf("replace did not take: key=%q schedules=%d", got.WeekStartDate, len(got.Schedules))
	}

	// Reset empties the slot.
	if err := p.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := p.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after reset = %v, want ErrNotFound", err)
	}
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "plando.json")
	s := NewJSONStore(path)
	defer func() { _ = s.Close() }()

	providerTest(t, s)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plando.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewJSONStore(path)
	if _, err := s.Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plando.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer func() { _ = s.Close() }()

	providerTest(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plando.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Save(testDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Data survives across connections.
	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if got.WeekStartDate != "2024-06-03" {
		t.Errorf("weekStartDate = %q", got.WeekStartDate)
	}
}
