// Package dateutil provides week normalization and date parsing utilities.
package dateutil

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock      = errors.New("time must be H, H:00 or H:30")
	ErrInvalidWeekday    = errors.New("unknown weekday name")
)

// KeyLayout is the canonical week key layout. Keys are zero-padded so that
// string comparison orders the same way as date comparison.
const KeyLayout = "2006-01-02"

// StartOfWeek returns the Monday of the week containing t, at midnight in loc.
// The location is explicit so that week boundaries do not drift with the
// environment's local time zone.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	t = TruncateToDay(t.In(loc))
	weekday := int(t.Weekday())
	// Convert Sunday (0) to 7 for easier calculation
	if weekday == 0 {
		weekday = 7
	}
	// Go back to Monday (weekday 1)
	return t.AddDate(0, 0, -(weekday - 1))
}

// WeekKey returns the canonical key for the week containing t: the Monday of
// that week formatted as YYYY-MM-DD in loc.
func WeekKey(t time.Time, loc *time.Location) string {
	return StartOfWeek(t, loc).Format(KeyLayout)
}

// ParseDate parses a date string in YYYY-MM-DD format in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseWeekKey parses a stored week key. The key is re-normalized to the
// Monday of its week so corrupted or hand-edited keys cannot desynchronize
// the store's addressing.
func ParseWeekKey(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfWeek(t, loc), nil
}

// WeekDates returns the seven dates of the week starting at monday.
func WeekDates(monday time.Time) [7]time.Time {
	var days [7]time.Time
	for i := 0; i < 7; i++ {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseClock parses "9", "9:00" or "21:30" into a fractional hour on the
// half-hour lattice.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	hPart, mPart, hasMin := strings.Cut(s, ":")
	h, err := strconv.Atoi(hPart)
	if err != nil || h < 0 || h > 24 {
		return 0, ErrInvalidClock
	}
	if !hasMin {
		return float64(h), nil
	}
	switch mPart {
	case "00":
		return float64(h), nil
	case "30":
		return float64(h) + 0.5, nil
	default:
		return 0, ErrInvalidClock
	}
}

// ParseWeekday parses a weekday name ("monday" or "mon", any case) into
// a Monday-first index.
func ParseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < 7; i++ {
		if s == strings.ToLower(WeekdayName(i)) || s == strings.ToLower(WeekdayShortName(i)) {
			return i, nil
		}
	}
	return 0, ErrInvalidWeekday
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
