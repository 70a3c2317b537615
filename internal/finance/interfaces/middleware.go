package interfaces

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/auth/authctx"
)

type pathParamKey string

const (
	AccountIDParam = "accountID"
	PaymentIDParam = "paymentID"
)

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(string(s[0])) + s[1:]
}

// ValidatePathParamsMiddleware parses the named path values as UUIDs and puts
// them into the request context. A malformed id answers 404 since no such
// resource can exist.
func (h responder) ValidatePathParamsMiddleware(next http.Handler, params ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range params {
			paramValue := r.PathValue(param)
			if paramValue == "" {
				h.logger.Debug("path parameter is empty", "param", param)
				h.respondError(w, http.StatusBadRequest, capitalizeFirstLetter(fmt.Sprintf("%s is required", param)))
				return
			}

			parsedUUID, err := uuid.Parse(paramValue)
			if err != nil {
				h.logger.Debug("path parameter is invalid", "param", param, "value", paramValue)
				switch param {
				case AccountIDParam:
					h.respondError(w, http.StatusNotFound, "Account not found")
				case PaymentIDParam:
					h.respondError(w, http.StatusNotFound, "Payment not found")
				default:
					h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", param))
				}
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(param), parsedUUID))
		}
		next.ServeHTTP(w, r)
	})
}

func pathUUID(r *http.Request, param string) (uuid.UUID, bool) {
	id, ok := r.Context().Value(pathParamKey(param)).(uuid.UUID)
	return id, ok
}

// requireUser answers 401 when the request did not pass the auth middleware.
func (h responder) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}
