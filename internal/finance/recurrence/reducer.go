package recurrence

import (
	"slices"
	"time"
)

// Action is one edit of the repeat controls of the payment form.
type Action interface {
	apply(r Recurrence) Recurrence
}

// Reduce returns the schedule that results from applying action to state.
// The input is never modified.
func Reduce(state Recurrence, action Action) Recurrence {
	next := state.clone()
	if action == nil {
		return next
	}
	return action.apply(next)
}

// SetRepeating switches repeating on (weekly, every week) or off (all repeat
// fields cleared).
type SetRepeating struct {
	On bool
}

func (a SetRepeating) apply(r Recurrence) Recurrence {
	r.RepeatsWeekly = nil
	r.RepeatsOnDaysOfMonth = []int{}
	r.RepeatsOnMonthsOfYear = []int{}
	r.RepeatsUntilDate = nil
	if a.On {
		weeks := 1
		r.RepeatsWeekly = &weeks
	}
	return r
}

// SetRepeatType moves between weekly and monthly repeats. The selections of
// the mode being left are cleared.
type SetRepeatType struct {
	Type Type
}

func (a SetRepeatType) apply(r Recurrence) Recurrence {
	if !r.IsRepeating() || r.Type() == a.Type {
		return r
	}
	switch a.Type {
	case TypeMonthly:
		r.RepeatsWeekly = nil
		r.RepeatsOnDaysOfMonth = []int{DayOf(r.Date)}
	case TypeWeekly:
		weeks := 1
		r.RepeatsWeekly = &weeks
		r.RepeatsOnDaysOfMonth = []int{}
		r.RepeatsOnMonthsOfYear = []int{}
	}
	return r
}

// SetWeeklyInterval changes N in "every N weeks".
type SetWeeklyInterval struct {
	Weeks int
}

func (a SetWeeklyInterval) apply(r Recurrence) Recurrence {
	if r.Type() != TypeWeekly || a.Weeks < 1 {
		return r
	}
	weeks := a.Weeks
	r.RepeatsWeekly = &weeks
	return r
}

// ToggleDay selects or deselects a day of the month. The start date's own day
// cannot be deselected.
type ToggleDay struct {
	Day int
}

func (a ToggleDay) apply(r Recurrence) Recurrence {
	if r.Type() != TypeMonthly || !ValidDay(a.Day) || a.Day == DayOf(r.Date) {
		return r
	}
	if slices.Contains(r.RepeatsOnDaysOfMonth, a.Day) {
		r.RepeatsOnDaysOfMonth = without(r.RepeatsOnDaysOfMonth, a.Day)
	} else {
		r.RepeatsOnDaysOfMonth = include(r.RepeatsOnDaysOfMonth, a.Day)
	}
	return r
}

// SetMonthsEnabled turns the month restriction on, starting from the start
// date's month, or off.
type SetMonthsEnabled struct {
	On bool
}

func (a SetMonthsEnabled) apply(r Recurrence) Recurrence {
	if !a.On {
		r.RepeatsOnMonthsOfYear = []int{}
		return r
	}
	if r.Type() != TypeMonthly {
		return r
	}
	r.RepeatsOnMonthsOfYear = []int{MonthOf(r.Date)}
	return r
}

// ToggleMonth selects or deselects a month. The start date's own month cannot
// be deselected.
type ToggleMonth struct {
	Month int
}

func (a ToggleMonth) apply(r Recurrence) Recurrence {
	if r.Type() != TypeMonthly || len(r.RepeatsOnMonthsOfYear) == 0 ||
		!ValidMonth(a.Month) || a.Month == MonthOf(r.Date) {
		return r
	}
	if slices.Contains(r.RepeatsOnMonthsOfYear, a.Month) {
		r.RepeatsOnMonthsOfYear = without(r.RepeatsOnMonthsOfYear, a.Month)
	} else {
		r.RepeatsOnMonthsOfYear = include(r.RepeatsOnMonthsOfYear, a.Month)
	}
	return r
}

// SetEndDate sets or (with a nil Date) clears the last day of the schedule.
type SetEndDate struct {
	Date *time.Time
}

func (a SetEndDate) apply(r Recurrence) Recurrence {
	if a.Date == nil {
		r.RepeatsUntilDate = nil
		return r
	}
	if !r.IsRepeating() {
		return r
	}
	until := DateOnly(*a.Date)
	r.RepeatsUntilDate = &until
	return r
}

// SetAnchorDate moves the start date. Existing day and month selections gain
// the new date's day and month; nothing already chosen is dropped.
type SetAnchorDate struct {
	Date time.Time
}

func (a SetAnchorDate) apply(r Recurrence) Recurrence {
	r.Date = DateOnly(a.Date)
	if len(r.RepeatsOnDaysOfMonth) > 0 {
		r.RepeatsOnDaysOfMonth = include(r.RepeatsOnDaysOfMonth, DayOf(r.Date))
	}
	if len(r.RepeatsOnMonthsOfYear) > 0 {
		r.RepeatsOnMonthsOfYear = include(r.RepeatsOnMonthsOfYear, MonthOf(r.Date))
	}
	return r
}
