// Package schedule defines the core domain types for plando.
package schedule

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEndBeforeStart   = errors.New("end hour must be after start hour")
	ErrOffLattice       = errors.New("hours must fall on the half-hour")
	ErrOutOfDayBounds   = fmt.Errorf("hours must be within [%v, %v]", DayStartHour, DayEndHour)
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidColor     = errors.New("color must be a #RRGGBB hex string")
)

// Grid domain bounds, in hours since midnight.
const (
	// DayStartHour is the earliest schedulable hour.
	DayStartHour = 6.0
	// DayEndHour is the latest schedulable hour.
	DayEndHour = 24.0
	// HalfHour is the scheduling granularity.
	HalfHour = 0.5
	// MinDuration is the shortest allowed block.
	MinDuration = HalfHour
)

// Work represents a schedulable time block on the weekly grid.
// Start and End are hours since midnight on the half-hour lattice,
// e.g. 9.5 means 09:30. Works are replaced whole, never mutated in place.
type Work struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	DayOfWeek int     `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	Color     string  `json:"color,omitempty"`
}

// NewWork creates a Work with a fresh id and validates it.
// color may be empty, in which case rendering falls back to the task
// registry's color for the same name.
func NewWork(name string, start, end float64, dayOfWeek int, color string) (Work, error) {
	w := Work{
		ID:        uuid.NewString(),
		Name:      name,
		Start:     start,
		End:       end,
		DayOfWeek: dayOfWeek,
		Color:     color,
	}
	if err := w.Validate(); err != nil {
		return Work{}, err
	}
	return w, nil
}

// Validate checks the Work's domain invariants.
func (w Work) Validate() error {
	if w.Name == "" {
		return ErrEmptyName
	}
	if !OnLattice(w.Start) || !OnLattice(w.End) {
		return ErrOffLattice
	}
	if w.Start < DayStartHour || w.End > DayEndHour {
		return ErrOutOfDayBounds
	}
	if w.End <= w.Start {
		return ErrEndBeforeStart
	}
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if w.Color != "" && !IsHexColor(w.Color) {
		return ErrInvalidColor
	}
	return nil
}

// WithTimes returns a copy of the Work with new start and end hours.
func (w Work) WithTimes(start, end float64) Work {
	w.Start = start
	w.End = end
	return w
}

// Duration returns the block length in hours.
func (w Work) Duration() float64 {
	return w.End - w.Start
}

// Minutes returns the block length in whole minutes.
func (w Work) Minutes() int {
	return int(math.Round(w.Duration() * 60))
}

// Overlaps returns true if the other block is on the same day and the time
// ranges intersect.
func (w Work) Overlaps(other Work) bool {
	if w.DayOfWeek != other.DayOfWeek {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

// Snap rounds an hour value to the nearest half-hour.
func Snap(hour float64) float64 {
	return math.Round(hour*2) / 2
}

// OnLattice returns true if the hour value falls exactly on the half-hour.
func OnLattice(hour float64) bool {
	return hour*2 == math.Trunc(hour*2)
}

// OverlapHours returns the overlapping hours between two time ranges,
// or 0 if they do not intersect.
func OverlapHours(start1, end1, start2, end2 float64) float64 {
	start := math.Max(start1, start2)
	end := math.Min(end1, end2)
	if end <= start {
		return 0
	}
	return end - start
}

// FormatHour renders an hour value as "H:MM", e.g. 9.5 -> "9:30".
func FormatHour(hour float64) string {
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	return fmt.Sprintf("%d:%02d", h, m)
}

// IsHexColor reports whether s is a #RRGGBB hex string.
func IsHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
