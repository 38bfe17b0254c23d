package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(Options{})
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func mustWork(t *testing.T, name string, start, end float64, day int) schedule.Work {
	t.Helper()
	w, err := schedule.NewWork(name, start, end, day, "")
	if err != nil {
		t.Fatalf("NewWork(%q): %v", name, err)
	}
	return w
}

func TestNewSeedsDefaultTasks(t *testing.T) {
	s := newTestStore(t)
	st := s.Snapshot()
	if len(st.Tasks) != len(schedule.DefaultTasks()) {
		t.Fatalf("got %d tasks, want %d", len(st.Tasks), len(schedule.DefaultTasks()))
	}
	if st.Mode != schedule.ModePlan {
		t.Errorf("initial mode = %q, want plan", st.Mode)
	}
	if st.WeekStartDate != "" {
		t.Errorf("initial week key = %q, want empty", st.WeekStartDate)
	}
}

func TestSetWeekStartDateNormalizesToMonday(t *testing.T) {
	s := newTestStore(t)

	// 2024-06-05 is a Wednesday; its week starts 2024-06-03.
	key := s.SetWeekStartDate(mustDate(t, "2024-06-05"))
	if key != "2024-06-03" {
		t.Fatalf("key = %q, want 2024-06-03", key)
	}
	st := s.Snapshot()
	if st.WeekStartDate != key {
		t.Errorf("active key = %q, want %q", st.WeekStartDate, key)
	}
	if len(st.Schedules) != 1 {
		t.Fatalf("got %d schedules, want 1", len(st.Schedules))
	}
	if st.Schedules[0].WeekStartDate != key {
		t.Errorf("schedule key = %q, want %q", st.Schedules[0].WeekStartDate, key)
	}
}

func TestSetWeekStartDateIdempotent(t *testing.T) {
	s := newTestStore(t)

	// Three days of the same week must produce exactly one Schedule and, once
	// the key is active, no further commits.
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	var commits int
	defer s.Subscribe(func(*State) { commits++ })()

	s.SetWeekStartDate(mustDate(t, "2024-06-05"))
	s.SetWeekStartDate(mustDate(t, "2024-06-09"))

	if commits != 0 {
		t.Errorf("revisiting the active week committed %d times, want 0", commits)
	}
	if got := len(s.Snapshot().Schedules); got != 1 {
		t.Errorf("got %d schedules, want 1", got)
	}
}

func TestSetWeekStartDateKeepsVisitedWeeks(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	s.SetWeekStartDate(mustDate(t, "2024-06-10"))
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	st := s.Snapshot()
	if len(st.Schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(st.Schedules))
	}
	if st.WeekStartDate != "2024-06-03" {
		t.Errorf("active key = %q, want 2024-06-03", st.WeekStartDate)
	}
}

func TestAddWorkToActiveWeek(t *testing.T) {
	s := newTestStore(t)
	key := s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	w := mustWork(t, "Math", 9, 10.5, 0)
	if err := s.AddWork(w, schedule.ModePlan); err != nil {
		t.Fatalf("AddWork: %v", err)
	}

	sch, ok := s.ActiveSchedule()
	if !ok {
		t.Fatalf("no schedule for %s", key)
	}
	plan := sch.Lane(schedule.ModePlan)
	if len(plan) != 1 {
		t.Fatalf("plan has %d works, want 1", len(plan))
	}
	got := plan[0]
	if got.Name != "Math" || got.Start != 9 || got.End != 10.5 || got.DayOfWeek != 0 {
		t.Errorf("stored work = %+v", got)
	}
	if len(sch.Lane(schedule.ModeDo)) != 0 {
		t.Errorf("do lane not empty")
	}
}

func TestAddWorkWithoutActiveWeek(t *testing.T) {
	s := newTestStore(t)
	err := s.AddWork(mustWork(t, "Math", 9, 10, 0), schedule.ModePlan)
	if !errors.Is(err, ErrWeekNotFound) {
		t.Errorf("err = %v, want ErrWeekNotFound", err)
	}
}

func TestAddWorkRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	bad := schedule.Work{ID: "x", Name: "Math", Start: 10, End: 9, DayOfWeek: 0}
	if err := s.AddWork(bad, schedule.ModePlan); err == nil {
		t.Fatal("invalid work accepted")
	}
	sch, _ := s.ActiveSchedule()
	if len(sch.Lane(schedule.ModePlan)) != 0 {
		t.Error("invalid work reached state")
	}
}

func TestDeleteWorkCancelsAdd(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	w := mustWork(t, "Science", 14, 15, 2)
	if err := s.AddWork(w, schedule.ModeDo); err != nil {
		t.Fatalf("AddWork: %v", err)
	}
	if err := s.DeleteWork(w.ID, schedule.ModeDo); err != nil {
		t.Fatalf("DeleteWork: %v", err)
	}
	sch, _ := s.ActiveSchedule()
	if len(sch.Lane(schedule.ModeDo)) != 0 {
		t.Error("work survived delete")
	}
}

func TestDeleteWorkNotFound(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	if err := s.DeleteWork("missing", schedule.ModePlan); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("err = %v, want ErrWorkNotFound", err)
	}
}

func TestDeleteWorkWrongLane(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	w := mustWork(t, "Math", 9, 10, 0)
	s.AddWork(w, schedule.ModePlan)

	if err := s.DeleteWork(w.ID, schedule.ModeDo); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("err = %v, want ErrWorkNotFound", err)
	}
	sch, _ := s.ActiveSchedule()
	if len(sch.Lane(schedule.ModePlan)) != 1 {
		t.Error("delete in wrong lane removed the work")
	}
}

func TestUpdateWorkPreservesPosition(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))

	a := mustWork(t, "Math", 9, 10, 0)
	b := mustWork(t, "Science", 10, 11, 0)
	c := mustWork(t, "English", 11, 12, 0)
	for _, w := range []schedule.Work{a, b, c} {
		if err := s.AddWork(w, schedule.ModePlan); err != nil {
			t.Fatalf("AddWork: %v", err)
		}
	}

	moved := b
	moved.Start, moved.End = 15, 16.5
	if err := s.UpdateWork(b.ID, moved, schedule.ModePlan); err != nil {
		t.Fatalf("UpdateWork: %v", err)
	}

	sch, _ := s.ActiveSchedule()
	plan := sch.Lane(schedule.ModePlan)
	if len(plan) != 3 {
		t.Fatalf("plan has %d works, want 3", len(plan))
	}
	if plan[1].ID != b.ID || plan[1].Start != 15 || plan[1].End != 16.5 {
		t.Errorf("plan[1] = %+v, want moved %s", plan[1], b.ID)
	}
	if plan[0].ID != a.ID || plan[2].ID != c.ID {
		t.Error("neighbor order changed")
	}
}

func TestUpdateWorkNotFound(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	w := mustWork(t, "Math", 9, 10, 0)
	if err := s.UpdateWork("missing", w, schedule.ModePlan); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("err = %v, want ErrWorkNotFound", err)
	}
}

func TestMutationDoesNotTouchOtherSnapshots(t *testing.T) {
	s := newTestStore(t)
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	w := mustWork(t, "Math", 9, 10, 0)
	s.AddWork(w, schedule.ModePlan)

	before := s.Snapshot()
	planBefore := before.Schedules[0].Lane(schedule.ModePlan)

	s.DeleteWork(w.ID, schedule.ModePlan)

	if len(planBefore) != 1 || planBefore[0].ID != w.ID {
		t.Error("old snapshot mutated by later delete")
	}
	if s.Snapshot() == before {
		t.Error("commit did not replace snapshot pointer")
	}
}

func TestAddTaskDuplicateIgnored(t *testing.T) {
	s := New(Options{DuplicateTaskPolicy: DuplicateIgnore})
	if err := s.AddTask(schedule.Task{Name: "Math", Color: "#FFFFFF"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if got := schedule.TaskColor(s.Snapshot().Tasks, "Math"); got != "#B2C8E7" {
		t.Errorf("Math color = %q, want seeded #B2C8E7", got)
	}
}

func TestAddTaskDuplicateUpdate(t *testing.T) {
	s := New(Options{DuplicateTaskPolicy: DuplicateUpdate})
	if err := s.AddTask(schedule.Task{Name: "Math", Color: "#FFFFFF"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if got := schedule.TaskColor(s.Snapshot().Tasks, "Math"); got != "#FFFFFF" {
		t.Errorf("Math color = %q, want #FFFFFF", got)
	}
	if got, want := len(s.Snapshot().Tasks), len(schedule.DefaultTasks()); got != want {
		t.Errorf("got %d tasks, want %d", got, want)
	}
}

func TestAddTaskNew(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddTask(schedule.Task{Name: "Piano", Color: "#123456"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if got := schedule.TaskColor(s.Snapshot().Tasks, "Piano"); got != "#123456" {
		t.Errorf("Piano color = %q", got)
	}
}

func TestAddTaskValidation(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddTask(schedule.Task{Name: "", Color: "#123456"}); !errors.Is(err, schedule.ErrEmptyName) {
		t.Errorf("empty name: err = %v", err)
	}
	if err := s.AddTask(schedule.Task{Name: "Piano", Color: "blue"}); !errors.Is(err, schedule.ErrInvalidColor) {
		t.Errorf("bad color: err = %v", err)
	}
}

func TestUpdateTaskColor(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateTaskColor("Math", "#000000"); err != nil {
		t.Fatalf("UpdateTaskColor: %v", err)
	}
	if got := schedule.TaskColor(s.Snapshot().Tasks, "Math"); got != "#000000" {
		t.Errorf("Math color = %q", got)
	}
	if err := s.UpdateTaskColor("Nope", "#000000"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("unknown task: err = %v", err)
	}
}

func TestSetMode(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetMode(schedule.ModeDo); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if s.Snapshot().Mode != schedule.ModeDo {
		t.Errorf("mode = %q, want do", s.Snapshot().Mode)
	}
	if err := s.SetMode("wat"); !errors.Is(err, schedule.ErrInvalidMode) {
		t.Errorf("bad mode: err = %v", err)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := newTestStore(t)

	var seen []*State
	unsub := s.Subscribe(func(st *State) { seen = append(seen, st) })

	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	if len(seen) != 1 {
		t.Fatalf("got %d notifications, want 1", len(seen))
	}
	if seen[0] != s.Snapshot() {
		t.Error("listener saw a different snapshot than Snapshot()")
	}

	unsub()
	s.SetMode(schedule.ModeDo)
	if len(seen) != 1 {
		t.Error("listener notified after unsubscribe")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plando.json")
	p := storage.NewJSONStore(path)

	s := New(Options{Provider: p})
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	w := mustWork(t, "Math", 9, 10.5, 0)
	if err := s.AddWork(w, schedule.ModePlan); err != nil {
		t.Fatalf("AddWork: %v", err)
	}

	s2 := New(Options{Provider: storage.NewJSONStore(path)})

	st := s2.Snapshot()
	if st.WeekStartDate != "2024-06-03" {
		t.Errorf("reloaded key = %q", st.WeekStartDate)
	}
	sch, ok := s2.ActiveSchedule()
	if !ok {
		t.Fatal("reloaded store has no active schedule")
	}
	plan := sch.Lane(schedule.ModePlan)
	if len(plan) != 1 || plan[0].ID != w.ID || plan[0].Start != 9 || plan[0].End != 10.5 {
		t.Errorf("reloaded plan = %+v", plan)
	}
	if s2.Degraded() {
		t.Error("store degraded with a working provider")
	}
}

type failingProvider struct{ loadErr, saveErr error }

func (f *failingProvider) Load() (*schedule.Document, error) { return nil, f.loadErr }
func (f *failingProvider) Save(*schedule.Document) error     { return f.saveErr }
func (f *failingProvider) Reset() error                      { return nil }
func (f *failingProvider) Path() string                      { return "" }
func (f *failingProvider) Close() error                      { return nil }

func TestDegradesOnPersistFailure(t *testing.T) {
	p := &failingProvider{loadErr: storage.ErrNotFound, saveErr: errors.New("disk full")}
	s := New(Options{Provider: p})

	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	if !s.Degraded() {
		t.Fatal("store not degraded after save failure")
	}
	// State still mutates normally in memory.
	if err := s.AddWork(mustWork(t, "Math", 9, 10, 0), schedule.ModePlan); err != nil {
		t.Fatalf("AddWork while degraded: %v", err)
	}
	sch, _ := s.ActiveSchedule()
	if len(sch.Lane(schedule.ModePlan)) != 1 {
		t.Error("mutation lost while degraded")
	}

	// Recovery clears the flag on the next successful save.
	p.saveErr = nil
	s.SetMode(schedule.ModeDo)
	if s.Degraded() {
		t.Error("store still degraded after successful save")
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plando.json")
	p := storage.NewJSONStore(path)
	s := New(Options{Provider: p})
	s.SetWeekStartDate(mustDate(t, "2024-06-03"))
	s.AddWork(mustWork(t, "Math", 9, 10, 0), schedule.ModePlan)
	s.AddTask(schedule.Task{Name: "Piano", Color: "#123456"})

	var notified bool
	defer s.Subscribe(func(*State) { notified = true })()

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	st := s.Snapshot()
	if len(st.Schedules) != 0 || st.WeekStartDate != "" {
		t.Errorf("state not cleared: %+v", st)
	}
	if got, want := len(st.Tasks), len(schedule.DefaultTasks()); got != want {
		t.Errorf("got %d tasks after reset, want %d", got, want)
	}
	if !notified {
		t.Error("listeners not notified of reset")
	}

	// The slot stays empty until the next mutation.
	if _, err := p.Load(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load after reset: err = %v, want ErrNotFound", err)
	}
}
