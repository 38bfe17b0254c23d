package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day      string
		start    string
		end      string
		lane     string
		week     string
		colorHex string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a block to a week",
		Long: `Add a block to the plan or do lane of a week.

Example:
  plando add "Math" --day=monday --start=9:00 --end=10:30
  plando add "Reading" --day=fri --start=20:00 --end=21:00 --lane=do --week=2024-06-03`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := schedule.ParseMode(lane)
			if err != nil {
				return err
			}
			dayIdx, err := dateutil.ParseWeekday(day)
			if err != nil {
				return fmt.Errorf("day: %w", err)
			}
			startHour, err := dateutil.ParseClock(start)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			endHour, err := dateutil.ParseClock(end)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}

			w, err := schedule.NewWork(args[0], startHour, endHour, dayIdx, colorHex)
			if err != nil {
				return err
			}

			ref := time.Now()
			if week != "" {
				ref, err = dateutil.ParseDate(week, a.store.Location())
				if err != nil {
					return fmt.Errorf("week: %w", err)
				}
			}
			key := a.store.SetWeekStartDate(ref)

			if err := a.store.AddWork(w, mode); err != nil {
				return fmt.Errorf("adding block: %w", err)
			}

			fmt.Printf("Added %s to %s of week %s: %s %s-%s\n",
				w.Name, mode, key,
				dateutil.WeekdayName(dayIdx),
				schedule.FormatHour(w.Start), schedule.FormatHour(w.End),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday name (monday..sunday, required)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (H:00 or H:30, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (H:00 or H:30, required)")
	cmd.Flags().StringVar(&lane, "lane", "plan", "Lane: plan or do")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD, default: this week)")
	cmd.Flags().StringVar(&colorHex, "color", "", "Block color (#RRGGBB, default: task registry color)")

	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
