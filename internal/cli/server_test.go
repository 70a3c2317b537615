package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/auth"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/application"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/infrastructure"
	"github.com/sebuszqo/Expendas/internal/finance/interfaces"
	"github.com/sebuszqo/Expendas/internal/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) Register(context.Context, string, string, string) (*user.User, error) {
	return nil, errors.New("not supported")
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUsers) GetUserByLoginOrEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

type fakeHealth struct {
	status string
}

func (f fakeHealth) Health(context.Context) map[string]string {
	return map[string]string{"status": f.status}
}

type testServer struct {
	handler  http.Handler
	token    string
	checking domain.Account
	logs     *bytes.Buffer
}

func newTestServer(t *testing.T, db HealthChecker) *testServer {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	logger := log.New(io.Discard)

	users := &fakeUsers{users: map[string]*user.User{"user-1": {ID: "user-1", Login: "ann"}}}
	jwtManager, err := auth.NewJWTManager("test-secret", time.Hour, &clock.RealClock{})
	require.NoError(t, err)
	token, err := jwtManager.GenerateAccessJWT("user-1")
	require.NoError(t, err)
	authService := auth.NewAuthService(users, jwtManager, logger)

	checking := domain.Account{ID: uuid.New(), UserID: "user-1", Name: "Checking", AccountType: domain.AccountChecking, Balance: decimal.NewFromInt(1000)}
	accounts := infrastructure.NewMockAccountRepository(checking)
	payments := infrastructure.NewMockPaymentRepository()
	cache := infrastructure.NewMockCycleCache()

	server := NewServer(
		auth.NewHandler(authService, interfaces.RespondJSON, interfaces.RespondError),
		authService,
		user.NewHandler(users, interfaces.RespondJSON, interfaces.RespondError),
		interfaces.NewAccountHandler(application.NewAccountService(accounts, cache, clk, logger), interfaces.RespondJSON, interfaces.RespondError, logger),
		interfaces.NewPaymentHandler(application.NewPaymentService(payments, accounts, cache, clk, logger), interfaces.RespondJSON, interfaces.RespondError, logger),
		interfaces.NewRecurrenceHandler(interfaces.RespondJSON, interfaces.RespondError, logger),
		interfaces.NewCycleHandler(application.NewCycleService(payments, accounts, cache, logger), clk, interfaces.RespondJSON, interfaces.RespondError, logger),
		db,
	)
	server.RegisterRoutes()

	logs := &bytes.Buffer{}
	return &testServer{
		handler:  server.Handler(log.New(logs)),
		token:    token,
		checking: checking,
		logs:     logs,
	}
}

func (s *testServer) do(t *testing.T, method, target, token, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&payload))
	return w.Code, payload
}

func TestServer_Ready(t *testing.T) {
	s := newTestServer(t, fakeHealth{status: "up"})

	status, payload := s.do(t, http.MethodGet, "/api/ready", "", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", payload["status"])
}

func TestServer_ReadyDatabaseDown(t *testing.T) {
	s := newTestServer(t, fakeHealth{status: "down"})

	status, payload := s.do(t, http.MethodGet, "/api/ready", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", payload["status"])
}

func TestServer_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	status, payload := s.do(t, http.MethodGet, "/nowhere", "", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Path not found", payload["message"])
}

func TestServer_ProtectedRequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	status, payload := s.do(t, http.MethodGet, "/api/protected/accounts", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authorization header is required", payload["message"])

	status, _ = s.do(t, http.MethodGet, "/api/protected/accounts", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_PaymentFlow(t *testing.T) {
	s := newTestServer(t, nil)

	status, payload := s.do(t, http.MethodPost, "/api/protected/payments", s.token, `{
		"account_id": "`+s.checking.ID.String()+`",
		"amount": "100",
		"description": "Rent",
		"date": "2024-03-10",
		"repeats_on_days_of_month": [10]
	}`)
	require.Equal(t, http.StatusCreated, status, payload)

	status, payload = s.do(t, http.MethodGet, "/api/protected/cycle?from=2024-03-01&days=62", s.token, "")
	require.Equal(t, http.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "800", items[1].(map[string]interface{})["balance_after"])

	status, _ = s.do(t, http.MethodGet, "/api/protected/accounts/"+s.checking.ID.String(), s.token, "")
	assert.Equal(t, http.StatusOK, status)

	assert.Contains(t, s.logs.String(), "/api/protected/cycle")
	assert.Contains(t, s.logs.String(), "status=200")
}
