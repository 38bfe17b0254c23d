package schedule

// Task is a reusable named color tag. The name is the identity: two tasks
// with the same name are the same tag.
type Task struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTask creates a Task with validation.
func NewTask(name, color string) (Task, error) {
	if name == "" {
		return Task{}, ErrEmptyName
	}
	if !IsHexColor(color) {
		return Task{}, ErrInvalidColor
	}
	return Task{Name: name, Color: color}, nil
}

// DefaultColor is used when neither the block nor the registry carries one.
const DefaultColor = "#B2C8E7"

// DefaultTasks returns the seed registry for a fresh store.
func DefaultTasks() []Task {
	return []Task{
		{Name: "Math", Color: "#B2C8E7"},
		{Name: "Science", Color: "#BAE7B2"},
		{Name: "English", Color: "#C7B2E7"},
		{Name: "Reading", Color: "#E7B2DA"},
		{Name: "Other", Color: "#D9D9D9"},
	}
}

// TaskColor returns the registered color for name, or the empty string if the
// name is not registered.
func TaskColor(tasks []Task, name string) string {
	for _, t := range tasks {
		if t.Name == name {
			return t.Color
		}
	}
	return ""
}

// ColorOf resolves a Work's display color: its own override first, then the
// registry color for its name, then DefaultColor.
func ColorOf(w Work, tasks []Task) string {
	if w.Color != "" {
		return w.Color
	}
	if c := TaskColor(tasks, w.Name); c != "" {
		return c
	}
	return DefaultColor
}
