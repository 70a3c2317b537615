package interfaces

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, userID string, account *domain.Account) error
	GetAccount(ctx context.Context, accountID uuid.UUID, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, account *domain.Account) error
	DeleteAccount(ctx context.Context, accountID uuid.UUID, userID string) error
	FormFields(accountType domain.AccountType) []domain.FormField
	AccountTypes() []domain.AccountGroup
}

type AccountHandler struct {
	responder
	service AccountServiceInterface
}

func NewAccountHandler(service AccountServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc, logger *log.Logger) *AccountHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	return &AccountHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
	}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	accounts, err := h.service.ListAccounts(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve accounts")
		return
	}

	data := make([]accountResponse, len(accounts))
	for i := range accounts {
		data[i] = newAccountResponse(&accounts[i])
	}
	h.success(w, http.StatusOK, "Accounts retrieved successfully.", data)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := req.toAccount()
	if err := h.service.CreateAccount(r.Context(), userID, account); err != nil {
		h.serviceError(w, err, "Failed to create account")
		return
	}
	h.success(w, http.StatusCreated, "Account successfully created.", newAccountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	accountID, ok := pathUUID(r, AccountIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Account not found")
		return
	}

	account, err := h.service.GetAccount(r.Context(), accountID, userID)
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve account")
		return
	}
	h.success(w, http.StatusOK, "Account retrieved successfully.", newAccountResponse(account))
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	accountID, ok := pathUUID(r, AccountIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Account not found")
		return
	}
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account := req.toAccount()
	account.ID = accountID
	if err := h.service.UpdateAccount(r.Context(), userID, account); err != nil {
		h.serviceError(w, err, "Failed to update account")
		return
	}
	h.success(w, http.StatusOK, "Account successfully updated.", newAccountResponse(account))
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	accountID, ok := pathUUID(r, AccountIDParam)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Account not found")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), accountID, userID); err != nil {
		h.serviceError(w, err, "Failed to delete account")
		return
	}
	h.success(w, http.StatusOK, "Account successfully deleted.", nil)
}

// GetFormFields returns the inputs of the account editor for ?type=.
func (h *AccountHandler) GetFormFields(w http.ResponseWriter, r *http.Request) {
	accountType := domain.AccountType(r.URL.Query().Get("type"))
	if accountType == "" {
		accountType = domain.AccountChecking
	}
	if !accountType.Valid() {
		h.respondError(w, http.StatusBadRequest, "Invalid account type")
		return
	}
	h.success(w, http.StatusOK, "Form fields retrieved successfully.", map[string]interface{}{
		"account_type": accountType,
		"category":     domain.CategoryOf(accountType),
		"fields":       h.service.FormFields(accountType),
	})
}

func (h *AccountHandler) GetAccountTypes(w http.ResponseWriter, _ *http.Request) {
	h.success(w, http.StatusOK, "Account types retrieved successfully.", h.service.AccountTypes())
}
