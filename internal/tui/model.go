// Package tui provides the terminal user interface for plando.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/grid"
	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/store"
	"github.com/javiermolinar/plando/internal/summary"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeGrab        // A block is grabbed; j/k move or resize it until released
	ModeForm        // Add/edit block form
	ModeConfirmDelete
	ModeConfirmReset
	ModeSummary // Week summary overlay
)

// Position is the cursor position in the grid.
type Position struct {
	Day int // 0=Monday, 6=Sunday
	Row int // Half-hour row index from the grid origin
}

// Model is the main TUI model.
type Model struct {
	store *store.Store
	geom  grid.Config
	log   zerolog.Logger

	styles     *Styles
	styleCache map[string]blockStyles

	mode      Mode
	cursor    Position
	monday    time.Time // Monday of the displayed week
	weekLabel string

	// Grab state. The drag tracker owns the transient geometry; dragOffset
	// accumulates the simulated pointer position.
	drag       *grid.Drag
	dragOffset float64
	grabLane   schedule.Mode

	// Form state
	form formModel

	// Confirm state
	confirmID string

	// Summary state
	summary    *summary.WeekSummary
	summaryErr error
	statusMsg  string

	width  int
	height int
	scroll int // First visible grid row
}

// Options configures the TUI.
type Options struct {
	Store  *store.Store
	Grid   grid.Config
	Logger zerolog.Logger
}

// New creates the TUI model and points the store at the week containing now.
func New(opts Options) Model {
	m := Model{
		store:      opts.Store,
		geom:       opts.Grid,
		log:        opts.Logger,
		styles:     NewStyles(),
		styleCache: make(map[string]blockStyles),
		drag:       grid.NewDrag(opts.Grid),
	}

	key := m.store.SetWeekStartDate(time.Now().In(m.store.Location()))
	m.setWeek(key)
	m.cursor.Row = m.geom.HourToRow(9)
	return m
}

// setWeek updates the displayed week from its canonical key.
func (m *Model) setWeek(key string) {
	monday, err := dateutil.ParseWeekKey(key, m.store.Location())
	if err != nil {
		// The store only hands out keys it generated.
		m.log.Error().Err(err).Str("key", key).Msg("unparseable week key")
		return
	}
	m.monday = monday
	m.weekLabel = key
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// activeLane returns the lane currently shown.
func (m Model) activeLane() schedule.Mode {
	return m.store.Snapshot().Mode
}

// blocksOnDay returns the shown lane's blocks for the cursor day.
func (m Model) blocksOnDay(day int) []schedule.Work {
	sch, ok := m.store.ActiveSchedule()
	if !ok {
		return nil
	}
	return sch.OnDay(m.activeLane(), day)
}

// blockAtCursor returns the block covering the cursor row, if any.
// With overlapping blocks the one starting latest wins, which is also the
// one rendered on top.
func (m Model) blockAtCursor() (schedule.Work, bool) {
	hour := m.geom.RowToHour(m.cursor.Row)
	var best schedule.Work
	found := false
	for _, w := range m.blocksOnDay(m.cursor.Day) {
		if hour < w.Start || hour >= w.End {
			continue
		}
		if !found || w.Start > best.Start {
			best = w
			found = true
		}
	}
	return best, found
}

// shiftWeek moves the displayed week by delta weeks.
func (m *Model) shiftWeek(delta int) {
	key := m.store.SetWeekStartDate(m.monday.AddDate(0, 0, delta*7))
	m.setWeek(key)
}

// maxRow is the last addressable grid row.
func (m Model) maxRow() int {
	return m.geom.Rows() - 1
}

// clampScroll keeps the cursor row inside the visible window.
func (m *Model) clampScroll() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor.Row < m.scroll {
		m.scroll = m.cursor.Row
	}
	if m.cursor.Row >= m.scroll+visible {
		m.scroll = m.cursor.Row - visible + 1
	}
}

// visibleRows is how many grid rows fit in the terminal.
func (m Model) visibleRows() int {
	// Header, week line, legend and help share the screen with the grid.
	reserved := 6
	if m.height <= reserved {
		return m.geom.Rows()
	}
	if rows := m.height - reserved; rows < m.geom.Rows() {
		return rows
	}
	return m.geom.Rows()
}
