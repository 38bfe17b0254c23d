package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/plando/internal/grid"
	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/summary"
)

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		} else {
			m.shiftWeek(-1)
			m.cursor.Day = 6
		}
	case "l", "right":
		if m.cursor.Day < 6 {
			m.cursor.Day++
		} else {
			m.shiftWeek(1)
			m.cursor.Day = 0
		}
	case "j", "down":
		if m.cursor.Row < m.maxRow() {
			m.cursor.Row++
			m.clampScroll()
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.clampScroll()
		}
	case "g":
		m.cursor.Row = 0
		m.clampScroll()
	case "G":
		m.cursor.Row = m.maxRow()
		m.clampScroll()

	case "[":
		m.shiftWeek(-1)
	case "]":
		m.shiftWeek(1)

	case "tab":
		next := schedule.ModeDo
		if m.activeLane() == schedule.ModeDo {
			next = schedule.ModePlan
		}
		if err := m.store.SetMode(next); err != nil {
			m.log.Error().Err(err).Msg("switching lane")
		}

	// Block editing
	case "a":
		m.mode = ModeForm
		m.form = newForm(m.cursor.Day, m.geom.RowToHour(m.cursor.Row))
	case "e", "enter":
		if w, ok := m.blockAtCursor(); ok {
			m.mode = ModeForm
			m.form = editForm(w)
		}
	case "d":
		if w, ok := m.blockAtCursor(); ok {
			m.mode = ModeConfirmDelete
			m.confirmID = w.ID
		}

	// Grabbing
	case "m":
		return m.beginGrab(grid.Move), nil
	case "r":
		return m.beginGrab(grid.ResizeBottom), nil
	case "t":
		return m.beginGrab(grid.ResizeTop), nil

	case "s":
		return m.openSummary(), nil

	case "X":
		m.mode = ModeConfirmReset
	}

	return m, nil
}

// beginGrab starts a drag of the given kind on the block under the cursor.
func (m Model) beginGrab(kind grid.Kind) Model {
	w, ok := m.blockAtCursor()
	if !ok {
		return m
	}
	anchor := m.geom.HourToOffset(w.Start)
	if kind == grid.ResizeBottom {
		anchor = m.geom.HourToOffset(w.End)
	}
	if err := m.drag.Begin(kind, w, anchor); err != nil {
		m.log.Error().Err(err).Msg("beginning grab")
		return m
	}
	m.mode = ModeGrab
	m.dragOffset = anchor
	m.grabLane = m.activeLane()
	return m
}

// handleGrabKeys handles keys while a block is grabbed. Every j/k press
// nudges the simulated pointer by half an hour of grid distance.
func (m Model) handleGrabKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.geom.PixelsPerHour / 2

	switch msg.String() {
	case "j", "down":
		m.dragOffset += step
	case "k", "up":
		m.dragOffset -= step

	case "enter", " ", "m":
		// Release wipes the drag state, so grab the id first.
		id := m.drag.WorkID()
		start, end, err := m.drag.Release(m.dragOffset)
		if err != nil {
			m.log.Error().Err(err).Msg("releasing grab")
			m.mode = ModeNormal
			return m, nil
		}
		m.mode = ModeNormal
		m.applyGrab(id, start, end)
		m.cursor.Row = m.geom.HourToRow(start)
		m.clampScroll()

	case "esc", "q":
		m.drag.Cancel()
		m.mode = ModeNormal
	}

	return m, nil
}

// applyGrab commits released drag geometry to the store.
func (m *Model) applyGrab(id string, start, end float64) {
	sch, ok := m.store.ActiveSchedule()
	if !ok || id == "" {
		return
	}
	idx := sch.FindWork(m.grabLane, id)
	if idx < 0 {
		return
	}
	moved := sch.Lane(m.grabLane)[idx].WithTimes(start, end)
	if err := m.store.UpdateWork(id, moved, m.grabLane); err != nil {
		m.log.Error().Err(err).Str("work", id).Msg("moving block")
	}
}

// handleFormKeys handles keys in the add/edit form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil

	case "enter":
		if m.form.focus < fieldCount-1 {
			m.form.next()
			return m, nil
		}
		w, err := m.form.work()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		lane := m.activeLane()
		if m.form.editID != "" {
			err = m.store.UpdateWork(m.form.editID, w, lane)
		} else {
			err = m.store.AddWork(w, lane)
		}
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// handleConfirmKeys handles yes/no prompts.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.mode == ModeConfirmDelete {
			if err := m.store.DeleteWork(m.confirmID, m.activeLane()); err != nil {
				m.log.Error().Err(err).Str("work", m.confirmID).Msg("deleting block")
			}
		} else {
			if err := m.store.Reset(); err != nil {
				m.log.Error().Err(err).Msg("resetting data")
			} else {
				key := m.store.SetWeekStartDate(time.Now().In(m.store.Location()))
				m.setWeek(key)
			}
		}
		m.confirmID = ""
		m.mode = ModeNormal

	case "n", "esc", "q":
		m.confirmID = ""
		m.mode = ModeNormal
	}
	return m, nil
}

// openSummary computes the week summary and shows the overlay.
func (m Model) openSummary() Model {
	sch, ok := m.store.ActiveSchedule()
	if !ok {
		return m
	}
	m.summary, m.summaryErr = summary.Summarize(sch, m.store.Location())
	m.statusMsg = ""
	m.mode = ModeSummary
	return m
}

// handleSummaryKeys handles keys in the summary overlay.
func (m Model) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "s":
		m.mode = ModeNormal
	case "y":
		if m.summary != nil {
			if err := clipboard.WriteAll(m.summary.Text()); err != nil {
				m.statusMsg = "copy failed: " + err.Error()
			} else {
				m.statusMsg = "copied to clipboard"
			}
		}
	}
	return m, nil
}
