package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"github.com/sebuszqo/Expendas/internal/auth"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/application"
	"github.com/sebuszqo/Expendas/internal/finance/interfaces"
	"github.com/sebuszqo/Expendas/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

// HealthChecker reports the state of a dependency for /api/ready.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	router            *http.ServeMux
	authHandler       *auth.Handler
	userHandler       *user.Handler
	authService       auth.Service
	accountHandler    *interfaces.AccountHandler
	paymentHandler    *interfaces.PaymentHandler
	recurrenceHandler *interfaces.RecurrenceHandler
	cycleHandler      *interfaces.CycleHandler
	db                HealthChecker
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	accountHandler *interfaces.AccountHandler,
	paymentHandler *interfaces.PaymentHandler,
	recurrenceHandler *interfaces.RecurrenceHandler,
	cycleHandler *interfaces.CycleHandler,
	db HealthChecker,
) *Server {
	return &Server{
		authHandler:       authHandler,
		authService:       authService,
		userHandler:       userHandler,
		accountHandler:    accountHandler,
		paymentHandler:    paymentHandler,
		recurrenceHandler: recurrenceHandler,
		cycleHandler:      cycleHandler,
		db:                db,
		router:            http.NewServeMux(),
	}
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	payload := map[string]interface{}{"status": "ready"}
	if s.db != nil {
		health := s.db.Health(r.Context())
		payload["database"] = health
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
			payload["status"] = "unavailable"
		}
	}
	interfaces.RespondJSON(w, status, payload)
}

func (s *Server) protected(h http.Handler) http.Handler {
	return s.authService.JWTAccessTokenMiddleware()(h)
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", s.protected(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	// ACCOUNTS API
	accounts := s.accountHandler
	protectedRoutes.Handle("GET /api/protected/accounts", s.protected(http.HandlerFunc(accounts.ListAccounts)))
	protectedRoutes.Handle("POST /api/protected/accounts", s.protected(http.HandlerFunc(accounts.CreateAccount)))
	protectedRoutes.Handle("GET /api/protected/accounts/form", s.protected(http.HandlerFunc(accounts.GetFormFields)))
	protectedRoutes.Handle("GET /api/protected/account_types", s.protected(http.HandlerFunc(accounts.GetAccountTypes)))
	protectedRoutes.Handle("GET /api/protected/accounts/{accountID}",
		s.protected(accounts.ValidatePathParamsMiddleware(http.HandlerFunc(accounts.GetAccount), interfaces.AccountIDParam)))
	protectedRoutes.Handle("PUT /api/protected/accounts/{accountID}",
		s.protected(accounts.ValidatePathParamsMiddleware(http.HandlerFunc(accounts.UpdateAccount), interfaces.AccountIDParam)))
	protectedRoutes.Handle("DELETE /api/protected/accounts/{accountID}",
		s.protected(accounts.ValidatePathParamsMiddleware(http.HandlerFunc(accounts.DeleteAccount), interfaces.AccountIDParam)))

	// PAYMENTS API
	payments := s.paymentHandler
	protectedRoutes.Handle("GET /api/protected/payments", s.protected(http.HandlerFunc(payments.ListPayments)))
	protectedRoutes.Handle("POST /api/protected/payments", s.protected(http.HandlerFunc(payments.CreatePayment)))
	protectedRoutes.Handle("GET /api/protected/payments/{paymentID}",
		s.protected(payments.ValidatePathParamsMiddleware(http.HandlerFunc(payments.GetPayment), interfaces.PaymentIDParam)))
	protectedRoutes.Handle("PUT /api/protected/payments/{paymentID}",
		s.protected(payments.ValidatePathParamsMiddleware(http.HandlerFunc(payments.UpdatePayment), interfaces.PaymentIDParam)))
	protectedRoutes.Handle("DELETE /api/protected/payments/{paymentID}",
		s.protected(payments.ValidatePathParamsMiddleware(http.HandlerFunc(payments.DeletePayment), interfaces.PaymentIDParam)))
	protectedRoutes.Handle("POST /api/protected/transfers", s.protected(http.HandlerFunc(payments.CreateTransfer)))

	// RECURRENCE + CYCLE API
	protectedRoutes.Handle("POST /api/protected/recurrence/describe", s.protected(http.HandlerFunc(s.recurrenceHandler.Describe)))
	protectedRoutes.Handle("POST /api/protected/recurrence/reduce", s.protected(http.HandlerFunc(s.recurrenceHandler.Reduce)))
	protectedRoutes.Handle("GET /api/protected/cycle", s.protected(http.HandlerFunc(s.cycleHandler.GetCycle)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func (s *Server) Handler(logger *log.Logger) http.Handler {
	return loggingMiddleware(logger, s.router)
}

// StartCycleScheduler refreshes the cached payment cycle of every user with a
// repeating payment on schedule. The caller stops the returned cron.
func StartCycleScheduler(schedule string, cycles *application.CycleService, clk clock.Clock, logger *log.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		refreshed, err := cycles.WarmCache(context.Background(), clock.Today(clk), application.DefaultCycleDays)
		if err != nil {
			logger.Error("Error refreshing payment cycles", "err", err)
			return
		}
		logger.Info("Payment cycles refreshed", "users", refreshed)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
