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

func (a *App) reviewCmd() *cobra.Command {
	var (
		week    string
		model   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Get an LLM review of a week",
		Long: `Send a week's plan/do summary to the configured LLM and print its
short written review. Equivalent to 'plando week --review' without the
full summary tables.`,
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

			s, err := summary.Summarize(sch, a.store.Location())
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

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

			fmt.Printf("\n  %s\n", formatHeader("REVIEW: week of "+key))
			fmt.Println(strings.Repeat("-", lineWidth()))
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD, default: this week)")
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
