package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
)

type (
	RespondJSONFunc  func(w http.ResponseWriter, status int, payload interface{})
	RespondErrorFunc func(w http.ResponseWriter, status int, message string, errors ...[]string)
)

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}

func RespondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	RespondJSON(w, status, payload)
}

// responder is shared by every finance handler.
type responder struct {
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
	logger       *log.Logger
}

func newResponder(respondJSON RespondJSONFunc, respondError RespondErrorFunc, logger *log.Logger) responder {
	if respondJSON == nil || respondError == nil {
		panic("Response functions must not be nil")
	}
	if logger == nil {
		logger = log.Default()
	}
	return responder{respondJSON: respondJSON, respondError: respondError, logger: logger}
}

func (h responder) success(w http.ResponseWriter, status int, message string, data interface{}) {
	h.respondJSON(w, status, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// serviceError maps an error returned by a finance service onto a response.
// Unexpected errors are logged and answered with fallback.
func (h responder) serviceError(w http.ResponseWriter, err error, fallback string) {
	var validationErrors *financeErrors.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErrors.Messages())
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, financeErrors.ErrAccountNotFound):
		h.respondError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, financeErrors.ErrPaymentNotFound):
		h.respondError(w, http.StatusNotFound, "Payment not found")
	case errors.Is(err, financeErrors.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusForbidden, "You do not have access to this resource")
	default:
		h.logger.Error(fallback, "err", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
