package recurrence

import (
	"slices"
	"time"
)

const (
	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"

	// MaxWeeklyInterval is the longest weekly cadence offered to users.
	MaxWeeklyInterval = 8
)

type Type string

const (
	TypeNone    Type = "none"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
)

// Recurrence holds the repeat fields of a payment. Date is the anchor (start)
// date. Months are indexed 0 (January) to 11 (December).
type Recurrence struct {
	Date                  time.Time
	RepeatsWeekly         *int
	RepeatsOnDaysOfMonth  []int
	RepeatsOnMonthsOfYear []int
	RepeatsUntilDate      *time.Time
}

// Type reports the active repeat mode. When both modes are set the weekly
// one wins; Describe flags that state as a warning.
func (r Recurrence) Type() Type {
	switch {
	case r.RepeatsWeekly != nil:
		return TypeWeekly
	case len(r.RepeatsOnDaysOfMonth) > 0:
		return TypeMonthly
	default:
		return TypeNone
	}
}

func (r Recurrence) IsRepeating() bool {
	return r.Type() != TypeNone
}

func (r Recurrence) clone() Recurrence {
	out := Recurrence{
		Date:                  r.Date,
		RepeatsOnDaysOfMonth:  slices.Clone(r.RepeatsOnDaysOfMonth),
		RepeatsOnMonthsOfYear: slices.Clone(r.RepeatsOnMonthsOfYear),
	}
	if r.RepeatsWeekly != nil {
		weeks := *r.RepeatsWeekly
		out.RepeatsWeekly = &weeks
	}
	if r.RepeatsUntilDate != nil {
		until := *r.RepeatsUntilDate
		out.RepeatsUntilDate = &until
	}
	return out
}

// Normalize truncates dates to calendar days, sorts and deduplicates the
// selections, and makes sure a non-empty selection contains the start date's
// day and month.
func Normalize(r Recurrence) Recurrence {
	out := r.clone()
	out.Date = DateOnly(r.Date)
	if out.RepeatsUntilDate != nil {
		until := DateOnly(*out.RepeatsUntilDate)
		out.RepeatsUntilDate = &until
	}
	if len(out.RepeatsOnDaysOfMonth) > 0 {
		out.RepeatsOnDaysOfMonth = include(out.RepeatsOnDaysOfMonth, DayOf(out.Date))
	}
	if len(out.RepeatsOnMonthsOfYear) > 0 {
		out.RepeatsOnMonthsOfYear = include(out.RepeatsOnMonthsOfYear, MonthOf(out.Date))
	}
	return out
}

// DayOf returns the day of the month (1..31) of t.
func DayOf(t time.Time) int {
	return t.Day()
}

// MonthOf returns the month index (0..11) of t.
func MonthOf(t time.Time) int {
	return int(t.Month()) - 1
}

// DateOnly drops the clock part of t and returns midnight UTC of the same day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ValidDay(day int) bool {
	return day >= 1 && day <= 31
}

func ValidMonth(month int) bool {
	return month >= 0 && month <= 11
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// include returns a sorted, deduplicated copy of values that contains v.
func include(values []int, v int) []int {
	out := append(slices.Clone(values), v)
	slices.Sort(out)
	return slices.Compact(out)
}

// without returns a copy of values with every v removed.
func without(values []int, v int) []int {
	out := make([]int, 0, len(values))
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func sortedUnique(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func filter(values []int, keep func(int) bool) []int {
	var out []int
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
