package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
	"github.com/javiermolinar/plando/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	var week string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a week's blocks",
		Long: `Display both lanes of a week, day by day.

Defaults to the current week; --week selects any other.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor || a.config.UI.NoColor {
				DisableColor()
			}

			ref := time.Now()
			if week != "" {
				var err error
				ref, err = dateutil.ParseDate(week, a.store.Location())
				if err != nil {
					return fmt.Errorf("week: %w", err)
				}
			}
			key := a.store.SetWeekStartDate(ref)
			sch, ok := a.store.ActiveSchedule()
			if !ok {
				return fmt.Errorf("no schedule for week %s", key)
			}

			fmt.Printf("=== %s ===\n", formatHeader("Week of "+key))

			empty := true
			for day := 0; day < 7; day++ {
				plan := sch.OnDay(schedule.ModePlan, day)
				done := sch.OnDay(schedule.ModeDo, day)
				if len(plan) == 0 && len(done) == 0 {
					continue
				}
				empty = false

				fmt.Printf("\n%s\n", formatHeader(dateutil.WeekdayName(day)))
				for _, w := range plan {
					printBlockRow("plan", w)
				}
				for _, w := range done {
					printBlockRow("do", w)
				}
			}

			if empty {
				fmt.Println("\nNo blocks this week.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD, default: this week)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printBlockRow(lane string, w schedule.Work) {
	tag := formatPlan("[plan]")
	if lane == "do" {
		tag = formatDo("[do]  ")
	}
	times := fmt.Sprintf("%5s-%-5s", schedule.FormatHour(w.Start), schedule.FormatHour(w.End))
	fmt.Printf("  %s %s %s %s\n", tag, formatMuted(times), w.Name,
		formatMuted("("+summary.FormatMinutes(w.Minutes())+")"))
}
