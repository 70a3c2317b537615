package interfaces

import (
	"net/http"
	"testing"

	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reduceResponse struct {
	State    recurrenceDTO       `json:"state"`
	Feedback recurrence.Feedback `json:"feedback"`
}

func TestDescribeSchedule(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, owner, http.MethodPost, "/recurrence/describe", map[string]interface{}{
		"date":                      "2024-03-15",
		"repeats_on_days_of_month":  []int{1, 15},
		"repeats_on_months_of_year": []int{0, 2},
	})

	require.Equal(t, http.StatusOK, status)
	feedback := decodeData[recurrence.Feedback](t, env)
	assert.Equal(t, "Repeats monthly on the 1st and 15th, in January and March.", feedback.Description)
	assert.Equal(t, []string{}, feedback.Errors)
}

func TestDescribeSchedule_Warnings(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, owner, http.MethodPost, "/recurrence/describe", map[string]interface{}{
		"date":               "2024-03-15",
		"repeats_until_date": "2024-04-01",
	})

	require.Equal(t, http.StatusOK, status)
	feedback := decodeData[recurrence.Feedback](t, env)
	assert.Equal(t, "Does not repeat.", feedback.Description)
	assert.Equal(t, []string{recurrence.MsgEndWithoutRepeat}, feedback.Errors)
}

func TestDescribeSchedule_BadDate(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, owner, http.MethodPost, "/recurrence/describe", map[string]interface{}{"date": "March 15"})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid date format, expected YYYY-MM-DD", env.Message)
}

func TestReduceSchedule(t *testing.T) {
	f := newFixture(t)
	monthly := map[string]interface{}{"date": "2024-03-15", "repeats_on_days_of_month": []int{15}}

	tests := []struct {
		name        string
		state       map[string]interface{}
		action      map[string]interface{}
		weekly      *int
		days        []int
		description string
	}{
		{
			name:        "start repeating",
			state:       map[string]interface{}{"date": "2024-03-15"},
			action:      map[string]interface{}{"type": "set_repeating", "on": true},
			weekly:      intPtr(1),
			days:        []int{},
			description: "Repeats every week on Friday.",
		},
		{
			name:        "switch to monthly",
			state:       map[string]interface{}{"date": "2024-03-15", "repeats_weekly": 2},
			action:      map[string]interface{}{"type": "set_repeat_type", "repeat_type": "monthly"},
			days:        []int{15},
			description: "Repeats monthly on the 15th of every month.",
		},
		{
			name:        "add a day",
			state:       monthly,
			action:      map[string]interface{}{"type": "toggle_day", "day": 1},
			days:        []int{1, 15},
			description: "Repeats monthly on the 1st and 15th of every month.",
		},
		{
			name:        "anchor day stays",
			state:       monthly,
			action:      map[string]interface{}{"type": "toggle_day", "day": 15},
			days:        []int{15},
			description: "Repeats monthly on the 15th of every month.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := f.do(t, owner, http.MethodPost, "/recurrence/reduce", map[string]interface{}{
				"state":  tt.state,
				"action": tt.action,
			})
			require.Equal(t, http.StatusOK, status)

			out := decodeData[reduceResponse](t, env)
			assert.Equal(t, tt.weekly, out.State.RepeatsWeekly)
			assert.Equal(t, tt.days, out.State.RepeatsOnDaysOfMonth)
			assert.Equal(t, tt.description, out.Feedback.Description)
		})
	}
}

func TestReduceSchedule_EndDate(t *testing.T) {
	f := newFixture(t)
	state := map[string]interface{}{"date": "2024-03-15", "repeats_weekly": 1}

	status, env := f.do(t, owner, http.MethodPost, "/recurrence/reduce", map[string]interface{}{
		"state":  state,
		"action": map[string]interface{}{"type": "set_end_date", "date": "2024-03-20"},
	})
	require.Equal(t, http.StatusOK, status)
	out := decodeData[reduceResponse](t, env)
	require.NotNil(t, out.State.RepeatsUntilDate)
	assert.Equal(t, "2024-03-20", *out.State.RepeatsUntilDate)
	assert.Equal(t, []string{recurrence.MsgEndBeforeFirstRepeat}, out.Feedback.Errors)

	state["repeats_until_date"] = "2024-03-20"
	status, env = f.do(t, owner, http.MethodPost, "/recurrence/reduce", map[string]interface{}{
		"state":  state,
		"action": map[string]interface{}{"type": "set_end_date", "date": nil},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decodeData[reduceResponse](t, env).State.RepeatsUntilDate)
}

func TestReduceSchedule_BadAction(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		action  map[string]interface{}
		message string
	}{
		{"unknown type", map[string]interface{}{"type": "explode"}, `Unknown action "explode"`},
		{"missing day", map[string]interface{}{"type": "toggle_day"}, "Action toggle_day requires day"},
		{"bad repeat type", map[string]interface{}{"type": "set_repeat_type", "repeat_type": "daily"}, "Repeat type must be weekly or monthly"},
		{"bad anchor date", map[string]interface{}{"type": "set_anchor_date", "date": "tomorrow"}, "Invalid date format, expected YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := f.do(t, owner, http.MethodPost, "/recurrence/reduce", map[string]interface{}{
				"state":  map[string]interface{}{"date": "2024-03-15"},
				"action": tt.action,
			})
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func intPtr(n int) *int {
	return &n
}
