package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeForm:
		return m.overlay(m.renderForm())
	case ModeConfirmDelete:
		return m.overlay(m.renderConfirm("Delete this block?"))
	case ModeConfirmReset:
		return m.overlay(m.renderConfirm("Erase ALL weeks and tasks?"))
	case ModeSummary:
		return m.overlay(m.renderSummary())
	default:
		return m.renderGrid()
	}
}

// overlay centers a panel in the terminal, replacing the grid while open.
func (m Model) overlay(panel string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Overlay.Render(panel))
}

func (m Model) renderGrid() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")

	visible := m.visibleRows()
	last := m.scroll + visible
	if last > m.geom.Rows() {
		last = m.geom.Rows()
	}
	for row := m.scroll; row < last; row++ {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	lane := "PLAN"
	if m.activeLane() == schedule.ModeDo {
		lane = "DO"
	}
	title := m.styles.Title.Render("plando")
	week := m.styles.WeekLine.Render("week of " + m.weekLabel)
	laneTag := m.styles.LaneActive.Render("[" + lane + "]")

	parts := []string{title, week, laneTag}
	if m.store.Degraded() {
		parts = append(parts, m.styles.FormError.Render("(not saving!)"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderDayHeaders() string {
	dates := dateutil.WeekDates(m.monday)
	cells := make([]string, 0, 8)
	cells = append(cells, m.styles.TimeCol.Render(""))
	for day := 0; day < 7; day++ {
		label := fmt.Sprintf("%s %d", dateutil.WeekdayShortName(day), dates[day].Day())
		cells = append(cells, m.styles.DayHeader.Render(label))
	}
	return strings.Join(cells, "")
}

// renderRow renders one half-hour row across all seven days.
func (m Model) renderRow(row int) string {
	hour := m.geom.RowToHour(row)

	label := ""
	if hour == float64(int(hour)) {
		label = fmt.Sprintf("%d:00", int(hour))
	}

	cells := make([]string, 0, 8)
	cells = append(cells, m.styles.TimeCol.Render(label))
	for day := 0; day < 7; day++ {
		cells = append(cells, m.renderCell(day, row, hour))
	}
	return strings.Join(cells, "")
}

// renderCell renders one day/row cell, picking the topmost block covering it.
func (m Model) renderCell(day, row int, hour float64) string {
	w, covered := m.cellBlock(day, hour)
	underCursor := day == m.cursor.Day && row == m.cursor.Row

	if !covered {
		if underCursor {
			return m.styles.Cursor.Render("")
		}
		return m.styles.EmptyCell.Render("·")
	}

	text := ""
	if hour == w.Start {
		text = " " + truncate(w.Name, colWidth-2)
	} else if hour == w.Start+0.5 {
		text = " " + schedule.FormatHour(w.Start) + "-" + schedule.FormatHour(w.End)
	}

	grabbed := m.mode == ModeGrab && m.drag.WorkID() == w.ID
	switch {
	case grabbed:
		return m.styles.Grabbed.Render(text)
	case underCursor:
		return m.styles.Selected.Render(text)
	default:
		color := schedule.ColorOf(w, m.store.Snapshot().Tasks)
		return m.blockStyle(color).body.Render(text)
	}
}

// cellBlock finds the block shown in a cell. While a grab is active the
// grabbed block is rendered at its previewed position instead of its stored
// one.
func (m Model) cellBlock(day int, hour float64) (schedule.Work, bool) {
	var best schedule.Work
	found := false
	for _, w := range m.blocksOnDay(day) {
		start, end := w.Start, w.End
		if m.mode == ModeGrab && m.drag.WorkID() == w.ID {
			if ps, pe, err := m.drag.Preview(m.dragOffset); err == nil {
				start, end = ps, pe
			}
			w = w.WithTimes(start, end)
		}
		if hour < start || hour >= end {
			continue
		}
		if !found || start > best.Start {
			best = w
			found = true
		}
	}
	return best, found
}

func (m Model) renderFooter() string {
	help := map[Mode]string{
		ModeNormal: "a add · e edit · d delete · m/r/t grab · tab plan/do · [/] week · s summary · X reset · q quit",
		ModeGrab:   "j/k nudge · enter drop · esc cancel",
	}[m.mode]

	lines := []string{}
	if m.statusMsg != "" {
		lines = append(lines, m.styles.Status.Render(m.statusMsg))
	}
	lines = append(lines, m.styles.Help.Render(help))
	return strings.Join(lines, "\n")
}

func (m Model) renderForm() string {
	labels := [fieldCount]string{"Name", "Start", "End", "Color"}

	title := "New block"
	if m.form.editID != "" {
		title = "Edit block"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	fmt.Fprintf(&b, "  %s\n\n", dateutil.WeekdayName(m.form.day))
	for i := 0; i < fieldCount; i++ {
		b.WriteString(m.styles.FormLabel.Render(fmt.Sprintf("%-6s", labels[i])))
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.FormError.Render(m.form.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab next · enter save · esc cancel"))
	return b.String()
}

func (m Model) renderConfirm(question string) string {
	return question + "\n\n" + m.styles.Help.Render("y confirm · n cancel")
}

func (m Model) renderSummary() string {
	if m.summaryErr != nil {
		return m.styles.FormError.Render(m.summaryErr.Error())
	}
	if m.summary == nil {
		return "No data for this week."
	}
	text := m.summary.Text()
	if m.statusMsg != "" {
		text += "\n" + m.styles.Status.Render(m.statusMsg)
	}
	return text + "\n" + m.styles.Help.Render("y copy · esc close")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return s[:n-1] + "…"
}
