package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Column width for each day of the grid.
const colWidth = 14

// Styles holds the lipgloss styles for the TUI.
type Styles struct {
	Title      lipgloss.Style
	WeekLine   lipgloss.Style
	LaneActive lipgloss.Style
	DayHeader  lipgloss.Style
	TimeCol    lipgloss.Style
	EmptyCell  lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Grabbed    lipgloss.Style
	Overlay    lipgloss.Style
	Help       lipgloss.Style
	Status     lipgloss.Style
	FormLabel  lipgloss.Style
	FormError  lipgloss.Style
}

// NewStyles builds the style set.
func NewStyles() *Styles {
	muted := lipgloss.Color("240")
	accent := lipgloss.Color("75")

	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		WeekLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		LaneActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		DayHeader:  lipgloss.NewStyle().Bold(true).Width(colWidth).Align(lipgloss.Center),
		TimeCol:    lipgloss.NewStyle().Foreground(muted).Width(6).Align(lipgloss.Right),
		EmptyCell:  lipgloss.NewStyle().Foreground(muted).Width(colWidth),
		Cursor:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Width(colWidth),
		Selected:   lipgloss.NewStyle().Bold(true).Reverse(true).Width(colWidth),
		Grabbed:    lipgloss.NewStyle().Bold(true).Blink(true).Width(colWidth),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Help:      lipgloss.NewStyle().Foreground(muted),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		FormLabel: lipgloss.NewStyle().Bold(true),
		FormError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// blockStyles are the width-fixed styles for one block color.
type blockStyles struct {
	body lipgloss.Style
}

// blockStyle returns the cached style for a hex color. Styles are built per
// distinct color, not per cell, since rendering touches hundreds of cells.
func (m *Model) blockStyle(hex string) blockStyles {
	if s, ok := m.styleCache[hex]; ok {
		return s
	}
	s := blockStyles{
		body: lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color("235")).
			Width(colWidth),
	}
	m.styleCache[hex] = s
	return s
}
