package recurrence

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_SetRepeating(t *testing.T) {
	monthly := Recurrence{
		Date:                  date("2024-03-15"),
		RepeatsOnDaysOfMonth:  []int{1, 15},
		RepeatsOnMonthsOfYear: []int{2, 5},
		RepeatsUntilDate:      datePtr("2024-12-31"),
	}

	off := Reduce(monthly, SetRepeating{On: false})
	assert.Nil(t, off.RepeatsWeekly)
	assert.Empty(t, off.RepeatsOnDaysOfMonth)
	assert.Empty(t, off.RepeatsOnMonthsOfYear)
	assert.Nil(t, off.RepeatsUntilDate)
	assert.False(t, off.IsRepeating())

	on := Reduce(off, SetRepeating{On: true})
	require.NotNil(t, on.RepeatsWeekly)
	assert.Equal(t, 1, *on.RepeatsWeekly)
	assert.Equal(t, []int{}, on.RepeatsOnDaysOfMonth)
	assert.Equal(t, []int{}, on.RepeatsOnMonthsOfYear)
	assert.Nil(t, on.RepeatsUntilDate)
	assert.Equal(t, monthly.Date, on.Date)
}

func TestReduce_SetRepeatType(t *testing.T) {
	weekly := Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(3)}

	monthly := Reduce(weekly, SetRepeatType{Type: TypeMonthly})
	assert.Nil(t, monthly.RepeatsWeekly)
	assert.Equal(t, []int{15}, monthly.RepeatsOnDaysOfMonth)

	monthly.RepeatsOnMonthsOfYear = []int{2, 4}
	back := Reduce(monthly, SetRepeatType{Type: TypeWeekly})
	require.NotNil(t, back.RepeatsWeekly)
	assert.Equal(t, 1, *back.RepeatsWeekly)
	assert.Empty(t, back.RepeatsOnDaysOfMonth)
	assert.Empty(t, back.RepeatsOnMonthsOfYear)

	same := Reduce(weekly, SetRepeatType{Type: TypeWeekly})
	assert.Equal(t, 3, *same.RepeatsWeekly)

	notRepeating := Reduce(Recurrence{Date: date("2024-03-15")}, SetRepeatType{Type: TypeMonthly})
	assert.False(t, notRepeating.IsRepeating())
}

func TestReduce_SetWeeklyInterval(t *testing.T) {
	weekly := Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(1)}

	assert.Equal(t, 4, *Reduce(weekly, SetWeeklyInterval{Weeks: 4}).RepeatsWeekly)
	assert.Equal(t, 1, *Reduce(weekly, SetWeeklyInterval{Weeks: 0}).RepeatsWeekly)

	monthly := Recurrence{Date: date("2024-03-15"), RepeatsOnDaysOfMonth: []int{15}}
	assert.Nil(t, Reduce(monthly, SetWeeklyInterval{Weeks: 2}).RepeatsWeekly)
}

func TestReduce_ToggleDay(t *testing.T) {
	state := Recurrence{Date: date("2024-03-15"), RepeatsOnDaysOfMonth: []int{15}}

	state = Reduce(state, ToggleDay{Day: 20})
	state = Reduce(state, ToggleDay{Day: 3})
	assert.Equal(t, []int{3, 15, 20}, state.RepeatsOnDaysOfMonth)

	state = Reduce(state, ToggleDay{Day: 20})
	assert.Equal(t, []int{3, 15}, state.RepeatsOnDaysOfMonth)

	t.Run("start day cannot be removed", func(t *testing.T) {
		next := Reduce(state, ToggleDay{Day: 15})
		assert.Equal(t, []int{3, 15}, next.RepeatsOnDaysOfMonth)
	})

	t.Run("out of range day ignored", func(t *testing.T) {
		next := Reduce(state, ToggleDay{Day: 32})
		assert.Equal(t, []int{3, 15}, next.RepeatsOnDaysOfMonth)
	})

	t.Run("ignored on weekly repeat", func(t *testing.T) {
		weekly := Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(1)}
		next := Reduce(weekly, ToggleDay{Day: 3})
		assert.Empty(t, next.RepeatsOnDaysOfMonth)
	})

	t.Run("input untouched", func(t *testing.T) {
		days := []int{15}
		input := Recurrence{Date: date("2024-03-15"), RepeatsOnDaysOfMonth: days}
		Reduce(input, ToggleDay{Day: 1})
		assert.Equal(t, []int{15}, days)
	})
}

func TestReduce_Months(t *testing.T) {
	state := Recurrence{Date: date("2024-03-15"), RepeatsOnDaysOfMonth: []int{15}}

	state = Reduce(state, SetMonthsEnabled{On: true})
	assert.Equal(t, []int{2}, state.RepeatsOnMonthsOfYear)

	state = Reduce(state, ToggleMonth{Month: 11})
	state = Reduce(state, ToggleMonth{Month: 0})
	assert.Equal(t, []int{0, 2, 11}, state.RepeatsOnMonthsOfYear)

	state = Reduce(state, ToggleMonth{Month: 2})
	assert.Equal(t, []int{0, 2, 11}, state.RepeatsOnMonthsOfYear, "start month stays selected")

	state = Reduce(state, ToggleMonth{Month: 0})
	assert.Equal(t, []int{2, 11}, state.RepeatsOnMonthsOfYear)

	state = Reduce(state, SetMonthsEnabled{On: false})
	assert.Empty(t, state.RepeatsOnMonthsOfYear)

	weekly := Reduce(Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(1)}, SetMonthsEnabled{On: true})
	assert.Empty(t, weekly.RepeatsOnMonthsOfYear)
}

func TestReduce_SetEndDate(t *testing.T) {
	weekly := Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(1)}

	withEnd := Reduce(weekly, SetEndDate{Date: datePtr("2025-03-15")})
	require.NotNil(t, withEnd.RepeatsUntilDate)
	assert.Equal(t, date("2025-03-15"), *withEnd.RepeatsUntilDate)

	cleared := Reduce(withEnd, SetEndDate{})
	assert.Nil(t, cleared.RepeatsUntilDate)

	once := Reduce(Recurrence{Date: date("2024-03-15")}, SetEndDate{Date: datePtr("2025-03-15")})
	assert.Nil(t, once.RepeatsUntilDate)
}

func TestReduce_SetAnchorDate(t *testing.T) {
	state := Recurrence{
		Date:                  date("2024-03-15"),
		RepeatsOnDaysOfMonth:  []int{1, 15},
		RepeatsOnMonthsOfYear: []int{2},
	}

	next := Reduce(state, SetAnchorDate{Date: date("2024-04-20")})

	assert.Equal(t, date("2024-04-20"), next.Date)
	assert.Equal(t, []int{1, 15, 20}, next.RepeatsOnDaysOfMonth)
	assert.Equal(t, []int{2, 3}, next.RepeatsOnMonthsOfYear)

	again := Reduce(next, SetAnchorDate{Date: date("2024-03-01")})
	assert.Equal(t, []int{1, 15, 20}, again.RepeatsOnDaysOfMonth)
	assert.Equal(t, []int{2, 3}, again.RepeatsOnMonthsOfYear)

	weekly := Reduce(Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(1)}, SetAnchorDate{Date: date("2024-04-20")})
	assert.Empty(t, weekly.RepeatsOnDaysOfMonth)
	assert.Empty(t, weekly.RepeatsOnMonthsOfYear)
}

func TestReduce_NilAction(t *testing.T) {
	state := Recurrence{Date: date("2024-03-15"), RepeatsWeekly: weeks(2)}
	assert.Equal(t, state, Reduce(state, nil))
}

// Random edit sequences must never break the start date inclusion rules or
// leave both repeat modes active.
func TestReduce_InvariantsHoldAcrossEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := date("2024-01-01")

	randomAction := func() Action {
		switch rng.Intn(8) {
		case 0:
			return SetRepeating{On: rng.Intn(2) == 0}
		case 1:
			if rng.Intn(2) == 0 {
				return SetRepeatType{Type: TypeWeekly}
			}
			return SetRepeatType{Type: TypeMonthly}
		case 2:
			return SetWeeklyInterval{Weeks: rng.Intn(10)}
		case 3:
			return ToggleDay{Day: rng.Intn(33)}
		case 4:
			return SetMonthsEnabled{On: rng.Intn(3) > 0}
		case 5:
			return ToggleMonth{Month: rng.Intn(13)}
		case 6:
			end := start.AddDate(0, 0, rng.Intn(800))
			return SetEndDate{Date: &end}
		default:
			return SetAnchorDate{Date: start.AddDate(0, 0, rng.Intn(730))}
		}
	}

	for run := 0; run < 200; run++ {
		state := Recurrence{Date: start}
		for step := 0; step < 50; step++ {
			state = Reduce(state, randomAction())

			weekly := state.RepeatsWeekly != nil
			monthly := len(state.RepeatsOnDaysOfMonth) > 0
			require.False(t, weekly && monthly, "both modes active: %+v", state)
			if monthly {
				require.Contains(t, state.RepeatsOnDaysOfMonth, DayOf(state.Date))
				require.True(t, slices.IsSorted(state.RepeatsOnDaysOfMonth))
			}
			if len(state.RepeatsOnMonthsOfYear) > 0 {
				require.True(t, monthly, "months without monthly repeat: %+v", state)
				require.Contains(t, state.RepeatsOnMonthsOfYear, MonthOf(state.Date))
				require.True(t, slices.IsSorted(state.RepeatsOnMonthsOfYear))
			}
		}
	}
}
