package recurrence

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	MsgEndBeforeStart       = "End date is before start date."
	MsgEndWithoutRepeat     = "An end date is set but the payment does not repeat."
	MsgBothModes            = "Choose either weekly or monthly repeats, not both."
	MsgMonthsWithoutDays    = "Months can only be chosen for monthly repeats."
	MsgEndBeforeFirstRepeat = "The end date is before the first repeat."
)

// shortest and longest length of each month
var (
	shortestMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	longestMonth  = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// Feedback is what the payment form shows under the repeat controls. Errors
// are advisory and never block saving.
type Feedback struct {
	Description string   `json:"description"`
	Errors      []string `json:"errors"`
}

// Describe summarizes the schedule as a sentence and lists anything that looks
// wrong with it. It is deterministic and tolerates inconsistent input.
func Describe(r Recurrence) Feedback {
	return Feedback{
		Description: description(r),
		Errors:      problems(r),
	}
}

func description(r Recurrence) string {
	var b strings.Builder
	switch r.Type() {
	case TypeWeekly:
		b.WriteString("Repeats every ")
		if weeks := *r.RepeatsWeekly; weeks > 1 {
			fmt.Fprintf(&b, "%d weeks", weeks)
		} else {
			b.WriteString("week")
		}
		b.WriteString(" on ")
		b.WriteString(r.Date.Weekday().String())
	case TypeMonthly:
		b.WriteString("Repeats monthly")
		days := filter(sortedUnique(r.RepeatsOnDaysOfMonth), ValidDay)
		if len(days) > 0 {
			b.WriteString(" on the ")
			b.WriteString(JoinList(mapInts(days, Ordinal)))
		}
		months := filter(sortedUnique(r.RepeatsOnMonthsOfYear), ValidMonth)
		switch {
		case len(months) > 0:
			b.WriteString(", in ")
			b.WriteString(JoinList(mapInts(months, MonthName)))
		case len(days) > 0:
			b.WriteString(" of every month")
		}
	default:
		return "Does not repeat."
	}
	if r.RepeatsUntilDate != nil {
		b.WriteString(" until ")
		b.WriteString(r.RepeatsUntilDate.Format("January 2, 2006"))
	}
	b.WriteString(".")
	return b.String()
}

func problems(r Recurrence) []string {
	errs := []string{}
	weekly := r.RepeatsWeekly != nil
	monthly := len(r.RepeatsOnDaysOfMonth) > 0
	days := sortedUnique(r.RepeatsOnDaysOfMonth)
	months := sortedUnique(r.RepeatsOnMonthsOfYear)
	sane := true

	if weekly && monthly {
		errs = append(errs, MsgBothModes)
		sane = false
	}
	if weekly && (*r.RepeatsWeekly < 1 || *r.RepeatsWeekly > MaxWeeklyInterval) {
		errs = append(errs, fmt.Sprintf("Weekly repeats must be every 1 to %d weeks.", MaxWeeklyInterval))
		sane = false
	}
	for _, d := range days {
		if !ValidDay(d) {
			errs = append(errs, fmt.Sprintf("Day %d is not a valid day of the month.", d))
		}
	}
	for _, m := range months {
		if !ValidMonth(m) {
			errs = append(errs, fmt.Sprintf("Month %d is not a valid month.", m))
		}
	}
	if len(months) > 0 && !monthly {
		errs = append(errs, MsgMonthsWithoutDays)
	}
	if monthly {
		if day := DayOf(r.Date); !slices.Contains(days, day) {
			errs = append(errs, fmt.Sprintf("The start date's day (%s) should be one of the selected days.", Ordinal(day)))
		}
		if month := MonthOf(r.Date); len(months) > 0 && !slices.Contains(months, month) {
			errs = append(errs, fmt.Sprintf("The start date's month (%s) should be one of the selected months.", MonthName(month)))
		}
		if msg := skippedDays(days, months); msg != "" {
			errs = append(errs, msg)
		}
	}

	if r.RepeatsUntilDate != nil {
		start := DateOnly(r.Date)
		until := DateOnly(*r.RepeatsUntilDate)
		switch {
		case !r.IsRepeating():
			errs = append(errs, MsgEndWithoutRepeat)
		case until.Before(start):
			errs = append(errs, MsgEndBeforeStart)
		case sane:
			if _, ok := NextOccurrence(r, start.AddDate(0, 0, 1)); !ok {
				errs = append(errs, MsgEndBeforeFirstRepeat)
			}
		}
	}
	return errs
}

// skippedDays warns about days 29..31 that some allowed month does not have.
func skippedDays(days, months []int) string {
	allowed := filter(months, ValidMonth)
	if len(allowed) == 0 {
		allowed = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	}
	var missing []string
	for _, d := range days {
		if d < 29 || !ValidDay(d) {
			continue
		}
		for _, m := range allowed {
			if d > shortestMonth[m] {
				missing = append(missing, Ordinal(d))
				break
			}
		}
	}
	switch len(missing) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("The %s does not occur in every selected month; those months are skipped.", missing[0])
	default:
		return fmt.Sprintf("The %s do not occur in every selected month; those months are skipped.", JoinList(missing))
	}
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th, ... 11th, 12th, 13th, ... 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// MonthName returns the English name of a 0-based month index.
func MonthName(month int) string {
	return time.Month(month + 1).String()
}

// JoinList renders "a", "a and b" or "a, b and c".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func mapInts(values []int, f func(int) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = f(v)
	}
	return out
}
