package interfaces

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/auth/authctx"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/application"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	owner    = "user-1"
	intruder = "user-2"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	accounts *infrastructure.MockAccountRepository
	payments *infrastructure.MockPaymentRepository
	cache    *infrastructure.MockCycleCache
	clock    *clock.FakeClock

	checking domain.Account
	savings  domain.Account
	foreign  domain.Account

	mux *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		checking: domain.Account{ID: uuid.New(), UserID: owner, Name: "Checking", AccountType: domain.AccountChecking, Balance: decimal.RequireFromString("1000")},
		savings:  domain.Account{ID: uuid.New(), UserID: owner, Name: "Savings", AccountType: domain.AccountSavings, Balance: decimal.RequireFromString("5000")},
		foreign:  domain.Account{ID: uuid.New(), UserID: intruder, Name: "Theirs", AccountType: domain.AccountChecking},
		payments: infrastructure.NewMockPaymentRepository(),
		cache:    infrastructure.NewMockCycleCache(),
		clock:    clock.NewFakeClock(now),
	}
	f.accounts = infrastructure.NewMockAccountRepository(f.checking, f.savings, f.foreign)

	logger := log.New(io.Discard)
	accountHandler := NewAccountHandler(application.NewAccountService(f.accounts, f.cache, f.clock, logger), RespondJSON, RespondError, logger)
	paymentHandler := NewPaymentHandler(application.NewPaymentService(f.payments, f.accounts, f.cache, f.clock, logger), RespondJSON, RespondError, logger)
	recurrenceHandler := NewRecurrenceHandler(RespondJSON, RespondError, logger)
	cycleHandler := NewCycleHandler(application.NewCycleService(f.payments, f.accounts, f.cache, logger), f.clock, RespondJSON, RespondError, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts", accountHandler.ListAccounts)
	mux.HandleFunc("POST /accounts", accountHandler.CreateAccount)
	mux.HandleFunc("GET /accounts/form", accountHandler.GetFormFields)
	mux.HandleFunc("GET /account_types", accountHandler.GetAccountTypes)
	mux.Handle("GET /accounts/{accountID}", accountHandler.ValidatePathParamsMiddleware(http.HandlerFunc(accountHandler.GetAccount), AccountIDParam))
	mux.Handle("PUT /accounts/{accountID}", accountHandler.ValidatePathParamsMiddleware(http.HandlerFunc(accountHandler.UpdateAccount), AccountIDParam))
	mux.Handle("DELETE /accounts/{accountID}", accountHandler.ValidatePathParamsMiddleware(http.HandlerFunc(accountHandler.DeleteAccount), AccountIDParam))

	mux.HandleFunc("GET /payments", paymentHandler.ListPayments)
	mux.HandleFunc("POST /payments", paymentHandler.CreatePayment)
	mux.Handle("GET /payments/{paymentID}", paymentHandler.ValidatePathParamsMiddleware(http.HandlerFunc(paymentHandler.GetPayment), PaymentIDParam))
	mux.Handle("PUT /payments/{paymentID}", paymentHandler.ValidatePathParamsMiddleware(http.HandlerFunc(paymentHandler.UpdatePayment), PaymentIDParam))
	mux.Handle("DELETE /payments/{paymentID}", paymentHandler.ValidatePathParamsMiddleware(http.HandlerFunc(paymentHandler.DeletePayment), PaymentIDParam))
	mux.HandleFunc("POST /transfers", paymentHandler.CreateTransfer)

	mux.HandleFunc("POST /recurrence/describe", recurrenceHandler.Describe)
	mux.HandleFunc("POST /recurrence/reduce", recurrenceHandler.Reduce)
	mux.HandleFunc("GET /cycle", cycleHandler.GetCycle)
	f.mux = mux
	return f
}

type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Code     int             `json:"code"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
	Data     json.RawMessage `json:"data"`
}

// do sends the request as userID; an empty userID sends it unauthenticated.
func (f *fixture) do(t *testing.T, userID, method, target string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(authctx.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
