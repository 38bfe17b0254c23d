package schedule

import "errors"

// ErrInvalidMode reports an unknown plan/do mode string.
var ErrInvalidMode = errors.New("mode must be 'plan' or 'do'")

// Mode selects which lane of a Schedule an operation targets.
type Mode string

const (
	ModePlan Mode = "plan"
	ModeDo   Mode = "do"
)

// Valid returns true if the mode is a known value.
func (m Mode) Valid() bool {
	return m == ModePlan || m == ModeDo
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePlan:
		return ModePlan, nil
	case ModeDo:
		return ModeDo, nil
	default:
		return "", ErrInvalidMode
	}
}

// Schedule holds one week's blocks, split into the plan lane (what was laid
// out ahead of time) and the do lane (what actually happened). Lists keep
// insertion order, not time order.
type Schedule struct {
	WeekStartDate string `json:"weekStartDate"` // Monday, YYYY-MM-DD
	Plan          []Work `json:"plan"`
	Do            []Work `json:"do"`
}

// NewSchedule creates an empty Schedule for the given week key.
func NewSchedule(weekStartDate string) Schedule {
	return Schedule{
		WeekStartDate: weekStartDate,
		Plan:          []Work{},
		Do:            []Work{},
	}
}

// Lane returns the list for the given mode.
func (s Schedule) Lane(mode Mode) []Work {
	if mode == ModeDo {
		return s.Do
	}
	return s.Plan
}

// WithLane returns a copy of the Schedule with the given lane replaced.
// The other lane's backing array is shared.
func (s Schedule) WithLane(mode Mode, works []Work) Schedule {
	if mode == ModeDo {
		s.Do = works
	} else {
		s.Plan = works
	}
	return s
}

// OnDay returns the lane's blocks for a single day, in insertion order.
func (s Schedule) OnDay(mode Mode, dayOfWeek int) []Work {
	var result []Work
	for _, w := range s.Lane(mode) {
		if w.DayOfWeek == dayOfWeek {
			result = append(result, w)
		}
	}
	return result
}

// FindWork returns the index of the work with the given id in the lane,
// or -1 if absent.
func (s Schedule) FindWork(mode Mode, id string) int {
	for i, w := range s.Lane(mode) {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Document is the unit of persistence: the whole store state as one
// JSON-serializable value. Dates travel as canonical strings so the document
// round-trips through marshal/unmarshal without loss.
type Document struct {
	Schedules     []Schedule `json:"schedules"`
	Tasks         []Task     `json:"tasks"`
	WeekStartDate string     `json:"weekStartDate"`
}
