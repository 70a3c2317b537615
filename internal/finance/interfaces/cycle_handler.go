package interfaces

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/application"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
)

type CycleServiceInterface interface {
	Upcoming(ctx context.Context, userID string, from time.Time, days int) ([]domain.CycleItem, error)
}

type CycleHandler struct {
	responder
	service CycleServiceInterface
	clock   clock.Clock
}

func NewCycleHandler(service CycleServiceInterface, clk clock.Clock, respondJSON RespondJSONFunc, respondError RespondErrorFunc, logger *log.Logger) *CycleHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &CycleHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
		clock:     clk,
	}
}

// GetCycle lists upcoming payment occurrences. ?from= defaults to today and
// ?days= to a month.
func (h *CycleHandler) GetCycle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	from := clock.Today(h.clock)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := recurrence.ParseDate(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid from date format")
			return
		}
		from = parsed
	}

	days := application.DefaultCycleDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid days value")
			return
		}
		days = parsed
	}

	items, err := h.service.Upcoming(r.Context(), userID, from, days)
	if err != nil {
		h.serviceError(w, err, "Failed to compute payment cycle")
		return
	}
	h.success(w, http.StatusOK, "Cycle retrieved successfully.", map[string]interface{}{
		"from":  from.Format(recurrence.DateLayout),
		"days":  days,
		"items": newCycleItemResponses(items),
	})
}
