// Package summary aggregates a week's plan and do lanes into adherence
// statistics: how much was planned, how much was actually done, and how much
// of the done time matched the plan.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/plando/internal/dateutil"
	"github.com/javiermolinar/plando/internal/schedule"
)

// DaySummary aggregates one weekday.
type DaySummary struct {
	Date            time.Time
	PlannedMinutes  int
	DoneMinutes     int
	FollowedMinutes int
}

// TaskTotal aggregates one task name across the week.
type TaskTotal struct {
	Name           string
	PlannedMinutes int
	DoneMinutes    int
}

// WeekSummary holds the aggregated plan/do comparison for one week.
type WeekSummary struct {
	Start time.Time
	End   time.Time

	Days  [7]DaySummary
	Tasks []TaskTotal

	PlannedMinutes  int
	DoneMinutes     int
	FollowedMinutes int
}

// Adherence is the fraction of planned time that was followed through,
// in [0, 1]. Zero planned time yields zero.
func (s *WeekSummary) Adherence() float64 {
	if s.PlannedMinutes == 0 {
		return 0
	}
	return float64(s.FollowedMinutes) / float64(s.PlannedMinutes)
}

// Summarize builds the week summary for one schedule. Followed-through time
// is the overlap between a plan block and a do block of the same task name on
// the same day, so doing different work in a planned slot does not count.
func Summarize(sch schedule.Schedule, loc *time.Location) (*WeekSummary, error) {
	monday, err := dateutil.ParseWeekKey(sch.WeekStartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("summarizing week %q: %w", sch.WeekStartDate, err)
	}
	dates := dateutil.WeekDates(monday)

	s := &WeekSummary{
		Start: dates[0],
		End:   dates[6],
	}

	totals := map[string]*TaskTotal{}
	totalFor := func(name string) *TaskTotal {
		if t, ok := totals[name]; ok {
			return t
		}
		t := &TaskTotal{Name: name}
		totals[name] = t
		return t
	}

	for day := 0; day < 7; day++ {
		d := &s.Days[day]
		d.Date = dates[day]

		plan := sch.OnDay(schedule.ModePlan, day)
		done := sch.OnDay(schedule.ModeDo, day)

		for _, w := range plan {
			d.PlannedMinutes += w.Minutes()
			totalFor(w.Name).PlannedMinutes += w.Minutes()
		}
		for _, w := range done {
			d.DoneMinutes += w.Minutes()
			totalFor(w.Name).DoneMinutes += w.Minutes()
		}
		d.FollowedMinutes = followedMinutes(plan, done)

		s.PlannedMinutes += d.PlannedMinutes
		s.DoneMinutes += d.DoneMinutes
		s.FollowedMinutes += d.FollowedMinutes
	}

	s.Tasks = make([]TaskTotal, 0, len(totals))
	for _, t := range totals {
		s.Tasks = append(s.Tasks, *t)
	}
	sort.Slice(s.Tasks, func(i, j int) bool { return s.Tasks[i].Name < s.Tasks[j].Name })

	return s, nil
}

// followedMinutes sums, per plan block, the overlap with same-named do
// blocks. Overlap is capped at the plan block's own length so overlapping do
// blocks cannot count the same planned time twice beyond it.
func followedMinutes(plan, done []schedule.Work) int {
	total := 0
	for _, p := range plan {
		var hours float64
		for _, d := range done {
			if d.Name != p.Name {
				continue
			}
			hours += schedule.OverlapHours(p.Start, p.End, d.Start, d.End)
		}
		hours = math.Min(hours, p.Duration())
		total += int(math.Round(hours * 60))
	}
	return total
}

// FormatMinutes renders minutes as "3h30m", "45m" or "0m".
func FormatMinutes(min int) string {
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// Text renders the summary as plain text, suitable for terminal output,
// clipboard copy, or a review prompt.
func (s *WeekSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s to %s\n", s.Start.Format("Jan 2"), s.End.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "Planned %s, did %s, followed through on %s (%.0f%%)\n",
		FormatMinutes(s.PlannedMinutes), FormatMinutes(s.DoneMinutes),
		FormatMinutes(s.FollowedMinutes), s.Adherence()*100)

	if len(s.Tasks) > 0 {
		b.WriteString("\nBy task:\n")
		for _, t := range s.Tasks {
			fmt.Fprintf(&b, "  %-12s planned %s, did %s\n",
				t.Name, FormatMinutes(t.PlannedMinutes), FormatMinutes(t.DoneMinutes))
		}
	}

	b.WriteString("\nBy day:\n")
	for day, d := range s.Days {
		if d.PlannedMinutes == 0 && d.DoneMinutes == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-4s planned %s, did %s, followed %s\n",
			dateutil.WeekdayShortName(day), FormatMinutes(d.PlannedMinutes),
			FormatMinutes(d.DoneMinutes), FormatMinutes(d.FollowedMinutes))
	}
	return b.String()
}
