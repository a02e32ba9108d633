package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/developer-portal/internal/api/http"
	"github.com/spec-kit/developer-portal/internal/api/http/handlers"
	"github.com/spec-kit/developer-portal/internal/auth"
	"github.com/spec-kit/developer-portal/internal/config"
	"github.com/spec-kit/developer-portal/internal/events"
	"github.com/spec-kit/developer-portal/internal/observability"
	"github.com/spec-kit/developer-portal/internal/persistence"
	"github.com/spec-kit/developer-portal/internal/repository"
	"github.com/spec-kit/developer-portal/internal/service"
	"github.com/spec-kit/developer-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo    repository.UserRepository
		appRepo     repository.AppRepository
		credentials repository.CredentialStore
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		appRepo = repository.NewAppRepository(pool)
		credentials = repository.NewCredentialStore(userRepo)
	} else {
		memory := repository.NewMemoryStore()
		if err := memory.Seed(repository.DefaultSeedUsers(), cfg.Auth.BcryptCost); err != nil {
			logger.Fatal("failed to seed memory store", zap.Error(err))
		}
		userRepo = memory
		appRepo = memory.AppRepo()
		credentials = memory
	}

	var otpStore repository.OTPStore
	if redis.Client != nil {
		otpStore = repository.NewRedisOTPStore(redis.Client)
	} else {
		otpStore = repository.NewMemoryOTPStore()
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		Credentials: credentials,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}

	otpService := service.NewOTPService(cfg.OTP, otpStore, userRepo, authService.TokenManager(), dispatcher, logger)
	appService := service.NewAppService(appRepo, userRepo, dispatcher)
	leaderboard := service.NewLeaderboardService()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	gate := auth.NewGate(authService.TokenManager(), auth.DefaultPolicy())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService, cfg.App),
		OTP:       handlers.NewOTPHandler(otpService, cfg.App),
		Apps:      handlers.NewAppsHandler(appService),
		Dashboard: handlers.NewDashboardHandler(appService, leaderboard),
		Admin:     handlers.NewAdminHandler(authService, appService),
		Gate:      gate,
		Tokens:    authService.TokenManager(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
