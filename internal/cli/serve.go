package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	database "github.com/sebuszqo/Expendas/db"
	"github.com/sebuszqo/Expendas/internal/auth"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/config"
	"github.com/sebuszqo/Expendas/internal/finance/application"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/infrastructure"
	"github.com/sebuszqo/Expendas/internal/finance/interfaces"
	"github.com/sebuszqo/Expendas/internal/user"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the HTTP API",
	Args:    cobra.NoArgs,
	GroupID: "server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, config.Load())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply the database schema on start")
}

func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel,
	})
	log.SetDefault(logger)
	return logger
}

// newCycleCache picks Redis when REDIS_ADDR is set and a no-op cache otherwise.
func newCycleCache(ctx context.Context, cfg *config.Config, logger *log.Logger) (domain.CycleCache, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, payment cycles are not cached")
		return infrastructure.NoopCycleCache{}, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return infrastructure.NewRedisCycleCache(client, cfg.CycleCacheTTL), func() { client.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg)
	if cfg.JWTSecret == "" {
		return errors.New("missing configuration: no JWT_SECRET provided")
	}

	dbService, err := database.NewDBService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer dbService.Close()

	if !skipMigrate {
		if err := dbService.Migrate(ctx); err != nil {
			return err
		}
	}

	cache, closeCache, err := newCycleCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	clk := &clock.RealClock{}
	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, clk)
	if err != nil {
		return err
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, logger.WithPrefix("user"))
	userHandler := user.NewHandler(userService, interfaces.RespondJSON, interfaces.RespondError)
	authService := auth.NewAuthService(userService, jwtManager, logger.WithPrefix("auth"))
	authHandler := auth.NewHandler(authService, interfaces.RespondJSON, interfaces.RespondError)

	financeLogger := logger.WithPrefix("finance")
	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	paymentRepo := infrastructure.NewPaymentRepository(dbService.DB)
	accountService := application.NewAccountService(accountRepo, cache, clk, financeLogger)
	paymentService := application.NewPaymentService(paymentRepo, accountRepo, cache, clk, financeLogger)
	cycleService := application.NewCycleService(paymentRepo, accountRepo, cache, financeLogger)

	server := NewServer(
		authHandler,
		authService,
		userHandler,
		interfaces.NewAccountHandler(accountService, interfaces.RespondJSON, interfaces.RespondError, financeLogger),
		interfaces.NewPaymentHandler(paymentService, interfaces.RespondJSON, interfaces.RespondError, financeLogger),
		interfaces.NewRecurrenceHandler(interfaces.RespondJSON, interfaces.RespondError, financeLogger),
		interfaces.NewCycleHandler(cycleService, clk, interfaces.RespondJSON, interfaces.RespondError, financeLogger),
		dbService,
	)
	server.RegisterRoutes()

	scheduler, err := StartCycleScheduler(cfg.CycleRefreshSchedule, cycleService, clk, logger.WithPrefix("cron"))
	if err != nil {
		return fmt.Errorf("scheduler didn't start: %w", err)
	}
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(logger.WithPrefix("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
