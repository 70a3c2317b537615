package recurrence

import "time"

const (
	// MaxOccurrences bounds the dates Occurrences returns for one window.
	MaxOccurrences = 5000

	// a selected day may be missing for eight years (the 29th of February
	// around 2100), so searches for the next date look a little further
	nextSearchMonths = 9 * 12

	secondsPerDay = 24 * 60 * 60
)

// Occurrences returns, in order, every date within [from, to] on which the
// schedule falls, up to MaxOccurrences of them. Nothing before the start date
// or after the end date is returned. A payment that does not repeat occurs
// once, on its start date. Weekly intervals outside 1..MaxWeeklyInterval
// produce no dates.
func Occurrences(r Recurrence, from, to time.Time) []time.Time {
	start := DateOnly(r.Date)
	from, to = DateOnly(from), DateOnly(to)
	if r.RepeatsUntilDate != nil {
		if until := DateOnly(*r.RepeatsUntilDate); until.Before(to) {
			to = until
		}
	}
	if to.Before(from) || to.Before(start) {
		return nil
	}

	switch r.Type() {
	case TypeWeekly:
		return weeklyOccurrences(start, *r.RepeatsWeekly, from, to)
	case TypeMonthly:
		return monthlyOccurrences(r, start, from, to)
	default:
		if start.Before(from) {
			return nil
		}
		return []time.Time{start}
	}
}

// NextOccurrence returns the first date on or after after on which the
// schedule falls. It reports false when there is none.
func NextOccurrence(r Recurrence, after time.Time) (time.Time, bool) {
	start := DateOnly(r.Date)
	after = DateOnly(after)
	first := start
	if after.After(first) {
		first = after
	}

	var next time.Time
	switch r.Type() {
	case TypeWeekly:
		weeks := *r.RepeatsWeekly
		if !validInterval(weeks) {
			return time.Time{}, false
		}
		next = firstWeekly(start, 7*weeks, first)
	case TypeMonthly:
		var ok bool
		if next, ok = firstMonthly(r, first); !ok {
			return time.Time{}, false
		}
	default:
		if start.Before(after) {
			return time.Time{}, false
		}
		next = start
	}

	if r.RepeatsUntilDate != nil && next.After(DateOnly(*r.RepeatsUntilDate)) {
		return time.Time{}, false
	}
	return next, true
}

func validInterval(weeks int) bool {
	return weeks >= 1 && weeks <= MaxWeeklyInterval
}

func daysBetween(a, b time.Time) int64 {
	return (b.Unix() - a.Unix()) / secondsPerDay
}

// firstWeekly returns the first date of the cadence that is not before from.
func firstWeekly(start time.Time, step int, from time.Time) time.Time {
	if !start.Before(from) {
		return start
	}
	elapsed := daysBetween(start, from)
	steps := (elapsed + int64(step) - 1) / int64(step)
	return start.AddDate(0, 0, int(steps)*step)
}

func weeklyOccurrences(start time.Time, weeks int, from, to time.Time) []time.Time {
	if !validInterval(weeks) {
		return nil
	}
	step := 7 * weeks

	var out []time.Time
	for current := firstWeekly(start, step, from); !current.After(to) && len(out) < MaxOccurrences; current = current.AddDate(0, 0, step) {
		out = append(out, current)
	}
	return out
}

type monthlyPlan struct {
	days       []int
	allowed    [12]bool
	everyMonth bool
}

func planMonthly(r Recurrence) (monthlyPlan, bool) {
	p := monthlyPlan{days: filter(sortedUnique(r.RepeatsOnDaysOfMonth), ValidDay)}
	if len(p.days) == 0 {
		return p, false
	}
	months := filter(sortedUnique(r.RepeatsOnMonthsOfYear), ValidMonth)
	for _, m := range months {
		p.allowed[m] = true
	}
	p.everyMonth = len(months) == 0

	// the smallest selected day has to fit at least one allowed month
	for m := 0; m < 12; m++ {
		if (p.everyMonth || p.allowed[m]) && p.days[0] <= longestMonth[m] {
			return p, true
		}
	}
	return p, false
}

// visit calls f for each selected date of the month starting at cursor that
// is within [first, to], and stops when f returns false.
func (p monthlyPlan) visit(cursor, first, to time.Time, f func(time.Time) bool) bool {
	if !p.everyMonth && !p.allowed[MonthOf(cursor)] {
		return true
	}
	last := daysInMonth(cursor.Year(), cursor.Month())
	for _, d := range p.days {
		if d > last {
			break
		}
		t := time.Date(cursor.Year(), cursor.Month(), d, 0, 0, 0, 0, time.UTC)
		if t.Before(first) {
			continue
		}
		if t.After(to) || !f(t) {
			return false
		}
	}
	return true
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthlyOccurrences(r Recurrence, start, from, to time.Time) []time.Time {
	plan, ok := planMonthly(r)
	if !ok {
		return nil
	}
	first := start
	if from.After(first) {
		first = from
	}

	var out []time.Time
	collect := func(t time.Time) bool {
		out = append(out, t)
		return len(out) < MaxOccurrences
	}
	for cursor := monthStart(first); !cursor.After(to); cursor = cursor.AddDate(0, 1, 0) {
		if !plan.visit(cursor, first, to, collect) {
			break
		}
	}
	return out
}

func firstMonthly(r Recurrence, first time.Time) (time.Time, bool) {
	plan, ok := planMonthly(r)
	if !ok {
		return time.Time{}, false
	}
	var found time.Time
	ok = false
	take := func(t time.Time) bool {
		found, ok = t, true
		return false
	}
	horizon := monthStart(first).AddDate(0, nextSearchMonths, 0)
	for cursor := monthStart(first); cursor.Before(horizon); cursor = cursor.AddDate(0, 1, 0) {
		if !plan.visit(cursor, first, horizon, take) {
			return found, ok
		}
	}
	return time.Time{}, false
}
