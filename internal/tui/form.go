package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
)

// Form field indices.
const (
	fieldName = iota
	fieldStart
	fieldEnd
	fieldColor
	fieldCount
)

// formModel is the add/edit block form.
type formModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	editID string // Non-empty when editing an existing block
	day    int
	errMsg string
}

// newForm builds a form prefilled for a new block at the given day and hour.
func newForm(day int, startHour float64) formModel {
	f := formModel{day: day}

	name := textinput.New()
	name.Placeholder = "task name"
	name.CharLimit = 60
	name.Focus()
	f.inputs[fieldName] = name

	start := textinput.New()
	start.Placeholder = "9:00"
	start.CharLimit = 5
	start.SetValue(formatFormHour(startHour))
	f.inputs[fieldStart] = start

	end := textinput.New()
	end.Placeholder = "10:00"
	end.CharLimit = 5
	end.SetValue(formatFormHour(startHour + 1))
	f.inputs[fieldEnd] = end

	color := textinput.New()
	color.Placeholder = "#B2C8E7 (optional)"
	color.CharLimit = 7
	f.inputs[fieldColor] = color

	return f
}

// editForm builds a form prefilled from an existing block.
func editForm(w schedule.Work) formModel {
	f := newForm(w.DayOfWeek, w.Start)
	f.editID = w.ID
	f.inputs[fieldName].SetValue(w.Name)
	f.inputs[fieldStart].SetValue(formatFormHour(w.Start))
	f.inputs[fieldEnd].SetValue(formatFormHour(w.End))
	f.inputs[fieldColor].SetValue(w.Color)
	return f
}

// next moves focus to the following field.
func (f *formModel) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// prev moves focus to the preceding field.
func (f *formModel) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// update forwards the message to the focused input.
func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// work builds the block described by the form. A new id is assigned for
// adds; edits keep the original.
func (f formModel) work() (schedule.Work, error) {
	start, err := parseFormHour(f.inputs[fieldStart].Value())
	if err != nil {
		return schedule.Work{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseFormHour(f.inputs[fieldEnd].Value())
	if err != nil {
		return schedule.Work{}, fmt.Errorf("end: %w", err)
	}

	name := strings.TrimSpace(f.inputs[fieldName].Value())
	color := strings.TrimSpace(f.inputs[fieldColor].Value())

	w, err := schedule.NewWork(name, start, end, f.day, color)
	if err != nil {
		return schedule.Work{}, err
	}
	if f.editID != "" {
		w.ID = f.editID
	}
	return w, nil
}

// parseFormHour parses "9", "9:30" or "21:00" into a fractional hour.
func parseFormHour(s string) (float64, error) {
	h, err := dateutil.ParseClock(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	return h, nil
}

// formatFormHour renders a fractional hour as "9:00" or "9:30".
func formatFormHour(hour float64) string {
	h := int(hour)
	if hour-float64(h) >= 0.5 {
		return fmt.Sprintf("%d:30", h)
	}
	return fmt.Sprintf("%d:00", h)
}
