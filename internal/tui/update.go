package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.BlurMsg:
		// A drag must not survive losing the terminal's focus.
		if m.mode == ModeGrab {
			m.drag.Cancel()
			m.mode = ModeNormal
		}
		return m, nil
	}

	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyMsg dispatches keyboard input by mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		// Discard any in-flight drag before leaving.
		m.drag.Cancel()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeGrab:
		return m.handleGrabKeys(msg)
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirmDelete, ModeConfirmReset:
		return m.handleConfirmKeys(msg)
	case ModeSummary:
		return m.handleSummaryKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}
