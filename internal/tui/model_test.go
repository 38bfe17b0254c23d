package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/plando/internal/grid"
	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(Options{
		Store: store.New(store.Options{Location: time.UTC}),
		Grid:  grid.DefaultConfig(),
	})
}

// press feeds one key to the model and returns the updated model.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next
}

func addBlock(t *testing.T, m Model, name string, start, end float64, day int) schedule.Work {
	t.Helper()
	w, err := schedule.NewWork(name, start, end, day, "")
	if err != nil {
		t.Fatalf("NewWork: %v", err)
	}
	if err := m.store.AddWork(w, m.activeLane()); err != nil {
		t.Fatalf("AddWork: %v", err)
	}
	return w
}

func TestNewStartsOnCurrentWeek(t *testing.T) {
	m := newTestModel(t)

	if m.monday.Weekday() != time.Monday {
		t.Errorf("week start is %s, want Monday", m.monday.Weekday())
	}
	if m.weekLabel != m.store.Snapshot().WeekStartDate {
		t.Errorf("label %q != active key %q", m.weekLabel, m.store.Snapshot().WeekStartDate)
	}
	if got := m.geom.RowToHour(m.cursor.Row); got != 9 {
		t.Errorf("initial cursor hour = %v, want 9", got)
	}
}

func TestNavigationWrapsToPreviousWeek(t *testing.T) {
	m := newTestModel(t)
	before := m.monday

	m.cursor.Day = 0
	m = press(t, m, "h")

	if m.cursor.Day != 6 {
		t.Errorf("cursor day = %d, want 6", m.cursor.Day)
	}
	want := before.AddDate(0, 0, -7)
	if !m.monday.Equal(want) {
		t.Errorf("monday = %v, want %v", m.monday, want)
	}
	if got := len(m.store.Snapshot().Schedules); got != 2 {
		t.Errorf("got %d schedules after wrap, want 2", got)
	}
}

func TestNavigationWrapsToNextWeek(t *testing.T) {
	m := newTestModel(t)
	before := m.monday

	m.cursor.Day = 6
	m = press(t, m, "l")

	if m.cursor.Day != 0 {
		t.Errorf("cursor day = %d, want 0", m.cursor.Day)
	}
	if want := before.AddDate(0, 0, 7); !m.monday.Equal(want) {
		t.Errorf("monday = %v, want %v", m.monday, want)
	}
}

func TestTabTogglesLane(t *testing.T) {
	m := newTestModel(t)
	if m.activeLane() != schedule.ModePlan {
		t.Fatalf("initial lane = %q", m.activeLane())
	}
	m = press(t, m, "tab")
	if m.activeLane() != schedule.ModeDo {
		t.Errorf("lane after tab = %q, want do", m.activeLane())
	}
	m = press(t, m, "tab")
	if m.activeLane() != schedule.ModePlan {
		t.Errorf("lane after second tab = %q, want plan", m.activeLane())
	}
}

func TestBlockAtCursor(t *testing.T) {
	m := newTestModel(t)
	w := addBlock(t, m, "Math", 9, 10.5, 2)

	m.cursor.Day = 2
	m.cursor.Row = m.geom.HourToRow(9.5)
	got, ok := m.blockAtCursor()
	if !ok || got.ID != w.ID {
		t.Errorf("blockAtCursor = %+v, %v", got, ok)
	}

	// End hour is exclusive.
	m.cursor.Row = m.geom.HourToRow(10.5)
	if _, ok := m.blockAtCursor(); ok {
		t.Error("cursor past block end still selects it")
	}
}

func TestGrabMoveCommitsNewTimes(t *testing.T) {
	m := newTestModel(t)
	w := addBlock(t, m, "Math", 9, 10, 0)

	m.cursor.Day = 0
	m.cursor.Row = m.geom.HourToRow(9)
	m = press(t, m, "m")
	if m.mode != ModeGrab {
		t.Fatalf("mode = %v, want grab", m.mode)
	}

	// Two half-hour nudges down, then drop.
	m = press(t, m, "j")
	m = press(t, m, "j")
	m = press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Fatalf("mode after drop = %v", m.mode)
	}
	sch, _ := m.store.ActiveSchedule()
	got := sch.Lane(schedule.ModePlan)[0]
	if got.ID != w.ID || got.Start != 10 || got.End != 11 {
		t.Errorf("block after move = %+v, want 10-11", got)
	}
	if got := m.geom.RowToHour(m.cursor.Row); got != 10 {
		t.Errorf("cursor followed to hour %v, want 10", got)
	}
}

func TestGrabResizeBottom(t *testing.T) {
	m := newTestModel(t)
	w := addBlock(t, m, "Math", 9, 10, 0)

	m.cursor.Day = 0
	m.cursor.Row = m.geom.HourToRow(9)
	m = press(t, m, "r")
	m = press(t, m, "j")
	m = press(t, m, "enter")

	sch, _ := m.store.ActiveSchedule()
	got := sch.Lane(schedule.ModePlan)[0]
	if got.ID != w.ID || got.Start != 9 || got.End != 10.5 {
		t.Errorf("block after resize = %+v, want 9-10.5", got)
	}
}

func TestGrabCancelKeepsOriginal(t *testing.T) {
	m := newTestModel(t)
	w := addBlock(t, m, "Math", 9, 10, 0)

	m.cursor.Day = 0
	m.cursor.Row = m.geom.HourToRow(9)
	m = press(t, m, "m")
	m = press(t, m, "j")
	m = press(t, m, "esc")

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v", m.mode)
	}
	if m.drag.Active() {
		t.Error("drag still active after cancel")
	}
	sch, _ := m.store.ActiveSchedule()
	got := sch.Lane(schedule.ModePlan)[0]
	if got.Start != w.Start || got.End != w.End {
		t.Errorf("block changed by cancelled grab: %+v", got)
	}
}

func TestGrabOnEmptyCellIsNoop(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "m")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
	if m.drag.Active() {
		t.Error("drag started with nothing under cursor")
	}
}

func TestDeleteWithConfirm(t *testing.T) {
	m := newTestModel(t)
	addBlock(t, m, "Math", 9, 10, 0)

	m.cursor.Day = 0
	m.cursor.Row = m.geom.HourToRow(9)
	m = press(t, m, "d")
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want confirm delete", m.mode)
	}
	m = press(t, m, "y")

	sch, _ := m.store.ActiveSchedule()
	if len(sch.Lane(schedule.ModePlan)) != 0 {
		t.Error("block survived confirmed delete")
	}
	if m.mode != ModeNormal {
		t.Errorf("mode after confirm = %v", m.mode)
	}
}

func TestDeleteDeclined(t *testing.T) {
	m := newTestModel(t)
	addBlock(t, m, "Math", 9, 10, 0)

	m.cursor.Day = 0
	m.cursor.Row = m.geom.HourToRow(9)
	m = press(t, m, "d")
	m = press(t, m, "n")

	sch, _ := m.store.ActiveSchedule()
	if len(sch.Lane(schedule.ModePlan)) != 1 {
		t.Error("block deleted despite declining")
	}
}

func TestAddFormFlow(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Day = 3
	m.cursor.Row = m.geom.HourToRow(14)

	m = press(t, m, "a")
	if m.mode != ModeForm {
		t.Fatalf("mode = %v, want form", m.mode)
	}
	if got := m.form.inputs[fieldStart].Value(); got != "14:00" {
		t.Errorf("prefilled start = %q, want 14:00", got)
	}
	if got := m.form.inputs[fieldEnd].Value(); got != "15:00" {
		t.Errorf("prefilled end = %q, want 15:00", got)
	}

	// Type a name, then enter through the remaining fields to submit.
	for _, r := range "Reading" {
		m = press(t, m, string(r))
	}
	for i := 0; i < fieldCount; i++ {
		m = press(t, m, "enter")
	}

	if m.mode != ModeNormal {
		t.Fatalf("mode after submit = %v (err %q)", m.mode, m.form.errMsg)
	}
	sch, _ := m.store.ActiveSchedule()
	plan := sch.Lane(schedule.ModePlan)
	if len(plan) != 1 {
		t.Fatalf("got %d blocks, want 1", len(plan))
	}
	got := plan[0]
	if got.Name != "Reading" || got.Start != 14 || got.End != 15 || got.DayOfWeek != 3 {
		t.Errorf("added block = %+v", got)
	}
}

func TestFormRejectsEmptyName(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")
	for i := 0; i < fieldCount; i++ {
		m = press(t, m, "enter")
	}
	if m.mode != ModeForm {
		t.Fatal("form submitted with empty name")
	}
	if m.form.errMsg == "" {
		t.Error("no error message shown")
	}
}

func TestSummaryOverlay(t *testing.T) {
	m := newTestModel(t)
	addBlock(t, m, "Math", 9, 10, 0)

	m = press(t, m, "s")
	if m.mode != ModeSummary {
		t.Fatalf("mode = %v, want summary", m.mode)
	}
	if m.summaryErr != nil {
		t.Fatalf("summary error: %v", m.summaryErr)
	}
	if m.summary.PlannedMinutes != 60 {
		t.Errorf("planned = %d, want 60", m.summary.PlannedMinutes)
	}
	m = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Errorf("mode after close = %v", m.mode)
	}
}

func TestResetWithConfirm(t *testing.T) {
	m := newTestModel(t)
	addBlock(t, m, "Math", 9, 10, 0)

	m = press(t, m, "X")
	if m.mode != ModeConfirmReset {
		t.Fatalf("mode = %v, want confirm reset", m.mode)
	}
	m = press(t, m, "y")

	// A fresh current week is reselected after the wipe.
	st := m.store.Snapshot()
	if len(st.Schedules) != 1 {
		t.Fatalf("got %d schedules after reset, want 1", len(st.Schedules))
	}
	if len(st.Schedules[0].Plan) != 0 {
		t.Error("old blocks survived reset")
	}
}

func TestViewRendersBlocks(t *testing.T) {
	m := newTestModel(t)
	addBlock(t, m, "Math", 9, 10, 0)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"plando", "Mon", "Sun", "Math", "[PLAN]", "9:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
