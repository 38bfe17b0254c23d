package ui

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/store"
)

func (a *App) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task registry",
		Long: `List, add, and recolor the named tasks that blocks inherit their
colors from.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.listTasks()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name] [color]",
		Short: "Register a task with a color",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			hex := schedule.DefaultColor
			if len(args) == 2 {
				hex = args[1]
			}
			t, err := schedule.NewTask(args[0], hex)
			if err != nil {
				return err
			}
			before := len(a.store.Snapshot().Tasks)
			if err := a.store.AddTask(t); err != nil {
				return fmt.Errorf("adding task: %w", err)
			}
			if len(a.store.Snapshot().Tasks) == before {
				fmt.Printf("Task %q already registered, keeping existing entry\n", t.Name)
				return nil
			}
			fmt.Printf("Registered task %q with color %s\n", t.Name, t.Color)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "color [name] [color]",
		Short: "Change a task's color",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			err := a.store.UpdateTaskColor(args[0], args[1])
			if errors.Is(err, store.ErrTaskNotFound) {
				return fmt.Errorf("no task named %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("updating task color: %w", err)
			}
			fmt.Printf("Task %q is now %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}

func (a *App) listTasks() error {
	tasks := a.store.Snapshot().Tasks
	if len(tasks) == 0 {
		fmt.Println("No tasks registered.")
		return nil
	}

	fmt.Printf("%s\n", formatHeader("TASKS"))
	for _, t := range tasks {
		fmt.Printf("  %s %-14s %s\n", swatch(t.Color), t.Name, formatMuted(t.Color))
	}
	return nil
}

// swatch renders a colored block for a hex color using 24-bit escapes.
func swatch(hex string) string {
	r, g, b, ok := splitHex(hex)
	if !ok || color.NoColor {
		return "  "
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

func splitHex(hex string) (r, g, b int, ok bool) {
	if !schedule.IsHexColor(hex) {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
