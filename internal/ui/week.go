package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/llm"
	"github.com/javiermolinar/plando/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		week    string
		review  bool
		model   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week's plan/do summary",
		Long: `Summarize a week: planned time, done time, and how much of the plan
was followed through, overall and per task.

With --review the summary is sent to the configured LLM for a short
written review.`,
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
			a.store.SetWeekStartDate(ref)
			sch, ok := a.store.ActiveSchedule()
			if !ok {
				return fmt.Errorf("no schedule for this week")
			}

			s, err := summary.Summarize(sch, a.store.Location())
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			printWeekSummary(s)

			if review {
				if model == "" {
					model = a.config.LLM.Model
				}
				client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
				text, err := llm.NewReviewer(client).ReviewWeek(context.Background(), s)
				if err != nil {
					return fmt.Errorf("reviewing week: %w", err)
				}
				fmt.Printf("\n%s\n", formatHeader("REVIEW"))
				fmt.Println(strings.Repeat("-", lineWidth()))
				fmt.Println(text)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD, default: this week)")
	cmd.Flags().BoolVar(&review, "review", false, "Ask the configured LLM for a written review")
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printWeekSummary(s *summary.WeekSummary) {
	header := fmt.Sprintf("WEEK: %s - %s", s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))
	fmt.Printf("\n  %s\n", formatHeader(header))
	fmt.Println(strings.Repeat("-", lineWidth()))

	fmt.Printf("  Planned %s, did %s, followed through on %s\n",
		formatStats(summary.FormatMinutes(s.PlannedMinutes)),
		formatStats(summary.FormatMinutes(s.DoneMinutes)),
		formatStats(summary.FormatMinutes(s.FollowedMinutes)),
	)
	fmt.Printf("  Adherence: %s\n", formatStats(fmt.Sprintf("%.0f%%", s.Adherence()*100)))

	if len(s.Tasks) > 0 {
		fmt.Printf("\n  %s\n", formatHeader("BY TASK"))
		for _, t := range s.Tasks {
			fmt.Printf("  %-14s %s planned, %s done\n",
				t.Name,
				formatMuted(summary.FormatMinutes(t.PlannedMinutes)),
				formatMuted(summary.FormatMinutes(t.DoneMinutes)),
			)
		}
	}

	fmt.Printf("\n  %s\n", formatHeader("BY DAY"))
	for day, d := range s.Days {
		if d.PlannedMinutes == 0 && d.DoneMinutes == 0 {
			continue
		}
		fmt.Printf("  %-4s %s planned, %s done, %s followed\n",
			dateutil.WeekdayShortName(day),
			formatMuted(summary.FormatMinutes(d.PlannedMinutes)),
			formatMuted(summary.FormatMinutes(d.DoneMinutes)),
			formatMuted(summary.FormatMinutes(d.FollowedMinutes)),
		)
	}
	fmt.Println()
}

// lineWidth caps separator width to the terminal.
func lineWidth() int {
	if w := termWidth(); w < 74 {
		return w
	}
	return 74
}
