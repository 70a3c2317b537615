package interfaces

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
)

type PaymentServiceInterface interface {
	CreatePayment(ctx context.Context, userID string, payment *domain.Payment, isIncome bool) ([]string, error)
	UpdatePayment(ctx context.Context, userID string, payment *domain.Payment, isIncome bool) ([]string, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID, userID string) error
	GetPayment(ctx context.Context, paymentID uuid.UUID, userID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID string, accountID *uuid.UUID) ([]domain.Payment, error)
	CreateTransfer(ctx context.Context, userID string, transfer *domain.Transfer) ([]*domain.Payment, []string, error)
}

type PaymentHandler struct {
	responder
	service PaymentServiceInterface
}

func NewPaymentHandler(service PaymentServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc, logger *log.Logger) *PaymentHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	return &PaymentHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
	}
}

// ListPayments accepts an optional ?account_id= filter.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var accountID *uuid.UUID
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid account_id")
			return
		}
		accountID = &id
	}

	payments, err := h.service.ListPayments(r.Context(), userID, accountID)
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve payments")
		return
	}
	data := make([]paymentResponse, len(payments))
	for i := range payments {
		data[i] = newPaymentResponse(&payments[i])
	}
	h.success(w, http.StatusOK, "Payments retrieved successfully.", data)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req paymentRequest
	if !h.validatedBody(w, r, paymentSchema, &req) {
		return
	}
	payment, err := req.toPayment()
	if err != nil {
		h.serviceError(w, err, "Failed to create payment")
		return
	}

	warnings, err := h.service.CreatePayment(r.Context(), userID, payment, req.IsIncome)
	if err != nil {
		h.serviceError(w, err, "Failed to create payment")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":   "success",
		"message":  "Payment successfully created.",
		"data":     newPaymentResponse(payment),
		"warnings": nonNil(warnings),
	})
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(r, PaymentIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Payment not found")
		return
	}

	payment, err := h.service.GetPayment(r.Context(), paymentID, userID)
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve payment")
		return
	}
	h.success(w, http.StatusOK, "Payment retrieved successfully.", newPaymentResponse(payment))
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(r, PaymentIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Payment not found")
		return
	}
	var req paymentRequest
	if !h.validatedBody(w, r, paymentSchema, &req) {
		return
	}
	payment, err := req.toPayment()
	if err != nil {
		h.serviceError(w, err, "Failed to update payment")
		return
	}
	payment.ID = paymentID

	warnings, err := h.service.UpdatePayment(r.Context(), userID, payment, req.IsIncome)
	if err != nil {
		h.serviceError(w, err, "Failed to update payment")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"message":  "Payment successfully updated.",
		"data":     newPaymentResponse(payment),
		"warnings": nonNil(warnings),
	})
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(r, PaymentIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Payment not found")
		return
	}

	if err := h.service.DeletePayment(r.Context(), paymentID, userID); err != nil {
		h.serviceError(w, err, "Failed to delete payment")
		return
	}
	h.success(w, http.StatusOK, "Payment successfully deleted.", nil)
}

// CreateTransfer stores the withdrawal and the deposit of a transfer.
func (h *PaymentHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req transferRequest
	if !h.validatedBody(w, r, transferSchema, &req) {
		return
	}
	transfer, err := req.toTransfer()
	if err != nil {
		h.serviceError(w, err, "Failed to create transfer")
		return
	}

	payments, warnings, err := h.service.CreateTransfer(r.Context(), userID, transfer)
	if err != nil {
		h.serviceError(w, err, "Failed to create transfer")
		return
	}
	data := make([]paymentResponse, len(payments))
	for i, p := range payments {
		data[i] = newPaymentResponse(p)
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":   "success",
		"message":  "Transfer successfully created.",
		"data":     data,
		"warnings": nonNil(warnings),
	})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
