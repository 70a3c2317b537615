package cli

import (
	"fmt"
	"time"

	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/spf13/cobra"
)

var describeOpts struct {
	date   string
	weekly int
	days   []int
	months []int
	until  string
	next   int
}

var describeClock clock.Clock = &clock.RealClock{}

var describeCmd = &cobra.Command{
	Use:     "describe",
	Short:   "Explain a repeat schedule and list its next dates",
	Args:    cobra.NoArgs,
	GroupID: "planning",
	Example: `  expendas describe --date 2024-03-15 --days 1,15 --months 1,3 --until 2025-03-31
  expendas describe --date 2024-03-15 --weekly 2 --next 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schedule, err := scheduleFromFlags()
		if err != nil {
			return err
		}

		feedback := recurrence.Describe(schedule)
		upcoming := nextOccurrences(schedule, describeOpts.next)

		if jsonOutput {
			dates := make([]string, len(upcoming))
			for i, d := range upcoming {
				dates[i] = d.Format(recurrence.DateLayout)
			}
			return outputJSON(cmd, map[string]interface{}{
				"description": feedback.Description,
				"errors":      feedback.Errors,
				"next":        dates,
			})
		}

		out := cmd.OutOrStdout()
		printSection(out, feedback.Description)
		for _, msg := range feedback.Errors {
			printWarning(out, msg)
		}
		for i, d := range upcoming {
			printLabelValue(out, fmt.Sprintf("%2d", i+1), d.Format("Mon, Jan 2 2006"))
		}
		return nil
	},
}

func init() {
	f := describeCmd.Flags()
	f.StringVar(&describeOpts.date, "date", "", "Start date, YYYY-MM-DD (default today)")
	f.IntVar(&describeOpts.weekly, "weekly", 0, "Repeat every N weeks")
	f.IntSliceVar(&describeOpts.days, "days", nil, "Repeat on these days of the month")
	f.IntSliceVar(&describeOpts.months, "months", nil, "Only in these months, 1 (January) to 12")
	f.StringVar(&describeOpts.until, "until", "", "Last date, YYYY-MM-DD")
	f.IntVar(&describeOpts.next, "next", 5, "How many upcoming dates to list")
}

func scheduleFromFlags() (recurrence.Recurrence, error) {
	schedule := recurrence.Recurrence{
		Date:                  clock.Today(describeClock),
		RepeatsOnDaysOfMonth:  describeOpts.days,
		RepeatsOnMonthsOfYear: make([]int, len(describeOpts.months)),
	}
	if describeOpts.date != "" {
		date, err := recurrence.ParseDate(describeOpts.date)
		if err != nil {
			return schedule, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", describeOpts.date)
		}
		schedule.Date = date
	}
	if describeOpts.weekly != 0 {
		weeks := describeOpts.weekly
		if weeks < 1 || weeks > recurrence.MaxWeeklyInterval {
			return schedule, fmt.Errorf("invalid --weekly %d, expected 1 to %d", weeks, recurrence.MaxWeeklyInterval)
		}
		schedule.RepeatsWeekly = &weeks
	}
	for i, m := range describeOpts.months {
		schedule.RepeatsOnMonthsOfYear[i] = m - 1
	}
	if describeOpts.until != "" {
		until, err := recurrence.ParseDate(describeOpts.until)
		if err != nil {
			return schedule, fmt.Errorf("invalid --until %q, expected YYYY-MM-DD", describeOpts.until)
		}
		schedule.RepeatsUntilDate = &until
	}
	return schedule, nil
}

// nextOccurrences returns up to n dates of the schedule starting at its start
// date.
func nextOccurrences(r recurrence.Recurrence, n int) []time.Time {
	var dates []time.Time
	after := r.Date
	for len(dates) < n {
		next, ok := recurrence.NextOccurrence(r, after)
		if !ok {
			break
		}
		dates = append(dates, next)
		if !r.IsRepeating() {
			break
		}
		after = next.AddDate(0, 0, 1)
	}
	return dates
}
