// Package store owns the application state: the per-week schedules, the task
// registry, the active week key, and the plan/do mode.
//
// The store is the single writer. Every mutation commits a fresh immutable
// snapshot (untouched collections are shared between snapshots), persists it,
// and then notifies subscribers synchronously. Readers only ever see committed
// snapshots, so a subscriber can detect change by comparing pointers.
package store

import (
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/storage"
)

// Not-found conditions. These are explicit results rather than silent no-ops
// so callers can distinguish stale references from success.
var (
	ErrWeekNotFound = errors.New("no schedule for the active week")
	ErrWorkNotFound = errors.New("work not found")
	ErrTaskNotFound = errors.New("task not found")
)

// DuplicatePolicy selects what AddTask does when the name is already
// registered.
type DuplicatePolicy string

const (
	// DuplicateIgnore keeps the first registration and silently drops the new one.
	DuplicateIgnore DuplicatePolicy = "ignore"
	// DuplicateUpdate lets a re-registration replace the color.
	DuplicateUpdate DuplicatePolicy = "update"
)

// Valid returns true if the policy is a known value.
func (p DuplicatePolicy) Valid() bool {
	return p == DuplicateIgnore || p == DuplicateUpdate
}

// State is one immutable snapshot of the application state. Fields must not
// be mutated after commit; mutations go through Store operations, which
// replace the snapshot wholesale.
type State struct {
	Mode          schedule.Mode
	Schedules     []schedule.Schedule
	Tasks         []schedule.Task
	WeekStartDate string
}

// Options configures a Store.
type Options struct {
	// Location is the reference time zone for week normalization.
	// Defaults to UTC.
	Location *time.Location

	// DuplicateTaskPolicy selects AddTask's behavior for duplicate names.
	// Defaults to DuplicateIgnore.
	DuplicateTaskPolicy DuplicatePolicy

	// Provider persists snapshots. Nil means in-memory only.
	Provider storage.Provider

	// Logger receives persistence warnings. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Listener is notified after each commit with the new snapshot.
type Listener func(*State)

// Store holds the current snapshot and applies mutations.
// It is not safe for concurrent use: there is exactly one writer, the UI
// event loop. Listeners must not mutate the store from their callback.
type Store struct {
	loc       *time.Location
	dupPolicy DuplicatePolicy
	provider  storage.Provider
	log       zerolog.Logger

	state     *State
	listeners map[int]Listener
	nextID    int
	degraded  bool
}

// New creates a Store, loading the persisted document if one exists.
// Persistence failures never prevent startup: the store degrades to
// in-memory-only operation and logs a warning.
func New(opts Options) *Store {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	policy := opts.DuplicateTaskPolicy
	if !policy.Valid() {
		policy = DuplicateIgnore
	}

	s := &Store{
		loc:       loc,
		dupPolicy: policy,
		provider:  opts.Provider,
		log:       opts.Logger,
		listeners: make(map[int]Listener),
	}
	s.state = s.initialState()
	return s
}

// initialState loads the persisted document, falling back to defaults.
func (s *Store) initialState() *State {
	st := &State{
		Mode:      schedule.ModePlan,
		Schedules: []schedule.Schedule{},
		Tasks:     schedule.DefaultTasks(),
	}

	if s.provider == nil {
		return st
	}

	doc, err := s.provider.Load()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return st
	case err != nil:
		s.degraded = true
		s.log.Warn().Err(err).Msg("loading persisted state failed, starting fresh in memory")
		return st
	}

	st.Schedules = doc.Schedules
	st.Tasks = doc.Tasks
	st.WeekStartDate = doc.WeekStartDate
	// Seeding is idempotent: only an empty registry gets the defaults.
	if len(st.Tasks) == 0 {
		st.Tasks = schedule.DefaultTasks()
	}
	return st
}

// Snapshot returns the current committed state.
func (s *Store) Snapshot() *State {
	return s.state
}

// Location returns the reference time zone used for week normalization.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Degraded returns true if persistence has failed and the store is running
// in memory only.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Subscribe registers a listener called synchronously after each commit.
// The returned function removes the listener.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// commit installs next as the current snapshot, persists it, and notifies
// listeners.
func (s *Store) commit(next State) {
	s.state = &next
	s.persist()
	s.notify()
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn(s.state)
	}
}

func (s *Store) persist() {
	if s.provider == nil {
		return
	}
	doc := schedule.Document{
		Schedules:     s.state.Schedules,
		Tasks:         s.state.Tasks,
		WeekStartDate: s.state.WeekStartDate,
	}
	if err := s.provider.Save(&doc); err != nil {
		if !s.degraded {
			s.degraded = true
			s.log.Warn().Err(err).Msg("persisting state failed, continuing in memory only")
		}
		return
	}
	if s.degraded {
		s.degraded = false
		s.log.Info().Msg("persistence recovered")
	}
}

// findSchedule returns the index of the Schedule with the given week key,
// or -1.
func (s *Store) findSchedule(key string) int {
	for i, sch := range s.state.Schedules {
		if sch.WeekStartDate == key {
			return i
		}
	}
	return -1
}

// ActiveSchedule returns the Schedule for the active week key.
func (s *Store) ActiveSchedule() (schedule.Schedule, bool) {
	idx := s.findSchedule(s.state.WeekStartDate)
	if idx < 0 {
		return schedule.Schedule{}, false
	}
	return s.state.Schedules[idx], true
}

// SetWeekStartDate normalizes date to the Monday of its week in the store's
// location and makes it the active key. The first visit to a week creates its
// empty Schedule in the same commit, so readers never observe an active key
// without a matching Schedule. Returns the canonical key.
func (s *Store) SetWeekStartDate(date time.Time) string {
	key := dateutil.WeekKey(date, s.loc)
	if key == s.state.WeekStartDate && s.findSchedule(key) >= 0 {
		return key
	}

	next := *s.state
	if s.findSchedule(key) < 0 {
		next.Schedules = append(slices.Clip(s.state.Schedules), schedule.NewSchedule(key))
	}
	next.WeekStartDate = key
	s.commit(next)
	return key
}

// SetMode switches the plan/do mode used for UI affordances.
func (s *Store) SetMode(mode schedule.Mode) error {
	if !mode.Valid() {
		return schedule.ErrInvalidMode
	}
	if mode == s.state.Mode {
		return nil
	}
	next := *s.state
	next.Mode = mode
	s.commit(next)
	return nil
}

// AddWork appends w to the given lane of the active week's Schedule.
// The work is validated so an invalid block can never reach persisted state.
func (s *Store) AddWork(w schedule.Work, mode schedule.Mode) error {
	if !mode.Valid() {
		return schedule.ErrInvalidMode
	}
	if err := w.Validate(); err != nil {
		return err
	}
	idx := s.findSchedule(s.state.WeekStartDate)
	if idx < 0 {
		return ErrWeekNotFound
	}

	sch := s.state.Schedules[idx]
	lane := append(slices.Clip(sch.Lane(mode)), w)

	s.commit(s.withSchedule(idx, sch.WithLane(mode, lane)))
	return nil
}

// UpdateWork replaces the work with the given id in the lane, preserving its
// position. Returns ErrWorkNotFound for stale references.
func (s *Store) UpdateWork(workID string, newWork schedule.Work, mode schedule.Mode) error {
	if !mode.Valid() {
		return schedule.ErrInvalidMode
	}
	if err := newWork.Validate(); err != nil {
		return err
	}
	idx := s.findSchedule(s.state.WeekStartDate)
	if idx < 0 {
		return ErrWeekNotFound
	}

	sch := s.state.Schedules[idx]
	pos := sch.FindWork(mode, workID)
	if pos < 0 {
		return ErrWorkNotFound
	}

	lane := slices.Clone(sch.Lane(mode))
	lane[pos] = newWork

	s.commit(s.withSchedule(idx, sch.WithLane(mode, lane)))
	return nil
}

// DeleteWork removes the work with the given id from the lane.
func (s *Store) DeleteWork(workID string, mode schedule.Mode) error {
	if !mode.Valid() {
		return schedule.ErrInvalidMode
	}
	idx := s.findSchedule(s.state.WeekStartDate)
	if idx < 0 {
		return ErrWeekNotFound
	}

	sch := s.state.Schedules[idx]
	pos := sch.FindWork(mode, workID)
	if pos < 0 {
		return ErrWorkNotFound
	}

	lane := sch.Lane(mode)
	newLane := make([]schedule.Work, 0, len(lane)-1)
	newLane = append(newLane, lane[:pos]...)
	newLane = append(newLane, lane[pos+1:]...)

	s.commit(s.withSchedule(idx, sch.WithLane(mode, newLane)))
	return nil
}

// withSchedule builds the next State with one Schedule replaced. The
// schedules slice is copied; every other Schedule is shared.
func (s *Store) withSchedule(idx int, sch schedule.Schedule) State {
	next := *s.state
	next.Schedules = slices.Clone(s.state.Schedules)
	next.Schedules[idx] = sch
	return next
}

// AddTask registers a named color tag. What happens on a duplicate name is
// governed by the configured DuplicatePolicy; with the default policy the
// first registration wins and the call is a successful no-op.
func (s *Store) AddTask(t schedule.Task) error {
	if t.Name == "" {
		return schedule.ErrEmptyName
	}
	if !schedule.IsHexColor(t.Color) {
		return schedule.ErrInvalidColor
	}

	for i, existing := range s.state.Tasks {
		if existing.Name != t.Name {
			continue
		}
		if s.dupPolicy == DuplicateUpdate && existing.Color != t.Color {
			next := *s.state
			next.Tasks = slices.Clone(s.state.Tasks)
			next.Tasks[i].Color = t.Color
			s.commit(next)
		}
		return nil
	}

	next := *s.state
	next.Tasks = append(slices.Clip(s.state.Tasks), t)
	s.commit(next)
	return nil
}

// UpdateTaskColor changes the color of the task with the given name.
func (s *Store) UpdateTaskColor(name, color string) error {
	if !schedule.IsHexColor(color) {
		return schedule.ErrInvalidColor
	}
	for i, t := range s.state.Tasks {
		if t.Name != name {
			continue
		}
		if t.Color == color {
			return nil
		}
		next := *s.state
		next.Tasks = slices.Clone(s.state.Tasks)
		next.Tasks[i].Color = color
		s.commit(next)
		return nil
	}
	return ErrTaskNotFound
}

// Reset clears the persisted slot and reinitializes in-memory state from
// defaults. Irreversible; callers are expected to confirm with the user
// first. The fresh state is deliberately not persisted, so the slot stays
// empty until the next mutation.
func (s *Store) Reset() error {
	if s.provider != nil {
		if err := s.provider.Reset(); err != nil {
			return err
		}
	}
	s.state = &State{
		Mode:      schedule.ModePlan,
		Schedules: []schedule.Schedule{},
		Tasks:     schedule.DefaultTasks(),
	}
	s.notify()
	return nil
}
