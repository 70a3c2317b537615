package interfaces

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
)

// RecurrenceHandler backs the repeat controls of the payment form. It holds
// no state; every request carries the current schedule.
type RecurrenceHandler struct {
	responder
}

func NewRecurrenceHandler(respondJSON RespondJSONFunc, respondError RespondErrorFunc, logger *log.Logger) *RecurrenceHandler {
	return &RecurrenceHandler{responder: newResponder(respondJSON, respondError, logger)}
}

type actionDTO struct {
	Type       string  `json:"type"`
	On         *bool   `json:"on,omitempty"`
	RepeatType string  `json:"repeat_type,omitempty"`
	Weeks      *int    `json:"weeks,omitempty"`
	Day        *int    `json:"day,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Date       *string `json:"date,omitempty"`
}

type reduceRequest struct {
	State  recurrenceDTO `json:"state"`
	Action actionDTO     `json:"action"`
}

func missingField(action, field string) error {
	return financeErrors.NewValidationError(fmt.Sprintf("Action %s requires %s", action, field))
}

func (a actionDTO) toAction() (recurrence.Action, error) {
	switch a.Type {
	case "set_repeating":
		if a.On == nil {
			return nil, missingField(a.Type, "on")
		}
		return recurrence.SetRepeating{On: *a.On}, nil
	case "set_repeat_type":
		t := recurrence.Type(a.RepeatType)
		if t != recurrence.TypeWeekly && t != recurrence.TypeMonthly {
			return nil, financeErrors.NewValidationError("Repeat type must be weekly or monthly")
		}
		return recurrence.SetRepeatType{Type: t}, nil
	case "set_weekly_interval":
		if a.Weeks == nil {
			return nil, missingField(a.Type, "weeks")
		}
		return recurrence.SetWeeklyInterval{Weeks: *a.Weeks}, nil
	case "toggle_day":
		if a.Day == nil {
			return nil, missingField(a.Type, "day")
		}
		return recurrence.ToggleDay{Day: *a.Day}, nil
	case "set_months_enabled":
		if a.On == nil {
			return nil, missingField(a.Type, "on")
		}
		return recurrence.SetMonthsEnabled{On: *a.On}, nil
	case "toggle_month":
		if a.Month == nil {
			return nil, missingField(a.Type, "month")
		}
		return recurrence.ToggleMonth{Month: *a.Month}, nil
	case "set_end_date":
		if a.Date == nil || *a.Date == "" {
			return recurrence.SetEndDate{}, nil
		}
		date, err := parseActionDate(*a.Date)
		if err != nil {
			return nil, err
		}
		return recurrence.SetEndDate{Date: &date}, nil
	case "set_anchor_date":
		if a.Date == nil {
			return nil, missingField(a.Type, "date")
		}
		date, err := parseActionDate(*a.Date)
		if err != nil {
			return nil, err
		}
		return recurrence.SetAnchorDate{Date: date}, nil
	default:
		return nil, financeErrors.NewValidationError(fmt.Sprintf("Unknown action %q", a.Type))
	}
}

func parseActionDate(s string) (time.Time, error) {
	date, err := recurrence.ParseDate(s)
	if err != nil {
		return time.Time{}, financeErrors.NewValidationError("Invalid date format, expected YYYY-MM-DD")
	}
	return date, nil
}

func feedbackResponse(fb recurrence.Feedback) recurrence.Feedback {
	fb.Errors = nonNil(fb.Errors)
	return fb
}

// Describe returns the sentence and advisory warnings for a schedule.
func (h *RecurrenceHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var req recurrenceDTO
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	schedule, err := req.toRecurrence()
	if err != nil {
		h.serviceError(w, err, "Failed to describe schedule")
		return
	}
	h.success(w, http.StatusOK, "Schedule described.", feedbackResponse(recurrence.Describe(schedule)))
}

// Reduce applies one form edit to the schedule and returns the new schedule
// with its feedback.
func (h *RecurrenceHandler) Reduce(w http.ResponseWriter, r *http.Request) {
	var req reduceRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	state, err := req.State.toRecurrence()
	if err != nil {
		h.serviceError(w, err, "Failed to apply action")
		return
	}
	action, err := req.Action.toAction()
	if err != nil {
		h.serviceError(w, err, "Failed to apply action")
		return
	}

	next := recurrence.Reduce(state, action)
	h.success(w, http.StatusOK, "Schedule updated.", map[string]interface{}{
		"state":    newRecurrenceDTO(next),
		"feedback": feedbackResponse(recurrence.Describe(next)),
	})
}
