// Package grid maps between hours of the day and vertical grid offsets.
//
// The grid spans a configurable window of the day (6:00-24:00 by default)
// at a fixed scale of pixels per hour. Conversions from offsets back to
// hours always land on the half-hour lattice.
package grid

import (
	"math"

	"github.com/javiermolinar/plando/internal/schedule"
)

// Defaults matching the standard 18-hour grid.
const (
	DefaultOriginHour    = 6.0
	DefaultEndHour       = 24.0
	DefaultPixelsPerHour = 32.0
)

// Config holds the grid geometry. It is configuration, not constants, so
// alternate grid spans can be expressed without touching conversion logic.
type Config struct {
	OriginHour    float64 // hour rendered at offset 0
	EndHour       float64 // exclusive bottom of the grid
	PixelsPerHour float64
}

// DefaultConfig returns the standard 6:00-24:00 grid at 32 pixels per hour.
func DefaultConfig() Config {
	return Config{
		OriginHour:    DefaultOriginHour,
		EndHour:       DefaultEndHour,
		PixelsPerHour: DefaultPixelsPerHour,
	}
}

// HourToOffset converts an hour of the day to a vertical offset.
// Pure and total: no bounds checking, callers clamp.
func (c Config) HourToOffset(hour float64) float64 {
	return (hour - c.OriginHour) * c.PixelsPerHour
}

// OffsetToHour converts a vertical offset back to an hour, rounded to the
// nearest half-hour. This is deliberately not a perfect inverse of
// HourToOffset for arbitrary offsets: the result is always on the lattice.
func (c Config) OffsetToHour(offset float64) float64 {
	return schedule.Snap(offset/c.PixelsPerHour + c.OriginHour)
}

// ClampHour restricts an hour value to the grid's span.
func (c Config) ClampHour(hour float64) float64 {
	return math.Min(math.Max(hour, c.OriginHour), c.EndHour)
}

// Hours returns the number of hours the grid spans.
func (c Config) Hours() float64 {
	return c.EndHour - c.OriginHour
}

// Height returns the total pixel height of the grid.
func (c Config) Height() float64 {
	return c.Hours() * c.PixelsPerHour
}

// Rows returns the number of half-hour rows in the grid.
func (c Config) Rows() int {
	return int(math.Round(c.Hours() * 2))
}

// RowToHour converts a half-hour row index to the hour at its top edge.
func (c Config) RowToHour(row int) float64 {
	return c.OriginHour + float64(row)*schedule.HalfHour
}

// HourToRow converts an hour to the half-hour row index containing it.
func (c Config) HourToRow(hour float64) int {
	return int(math.Floor((hour - c.OriginHour) * 2))
}
