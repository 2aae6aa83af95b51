package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sitiket/tiketops/internal/api/http"
	"github.com/sitiket/tiketops/internal/api/http/handlers"
	"github.com/sitiket/tiketops/internal/auth"
	"github.com/sitiket/tiketops/internal/config"
	"github.com/sitiket/tiketops/internal/events"
	"github.com/sitiket/tiketops/internal/observability"
	"github.com/sitiket/tiketops/internal/persistence"
	"github.com/sitiket/tiketops/internal/repository"
	"github.com/sitiket/tiketops/internal/service"
	"github.com/sitiket/tiketops/internal/settings"
	"github.com/sitiket/tiketops/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger.Level, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := persistence.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisStore, err := persistence.NewRedisStore(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisStore.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	settingsStore := settings.NewStore(redisStore, redisStore, logger)
	settingsStore.Load(ctx)
	redisStore.ListenConfigUpdates(ctx, logger, func(string) {
		settingsStore.Reload(ctx)
	})

	ticketRepo := repository.NewTicketRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Tickets:    ticketRepo,
		Progress:   progressRepo,
		Settings:   settingsStore,
		Dispatcher: dispatcher,
		Logger:     logger,
		BaseURL:    cfg.App.TicketBaseURL,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		Tickets: ticketRepo,
		Logger:  logger,
	})
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.AccessTokenTTL())
	authService := service.NewAuthService(service.AuthDependencies{
		Users:      userRepo,
		Tokens:     tokenManager,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	alertService := service.NewAlertService(service.AlertDependencies{
		Tickets:    ticketRepo,
		Settings:   settingsStore,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	alertService.RegisterHandlers()
	worker.StartAlertWorker(ctx, alertService, cfg.AlertScanInterval(), logger)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pool, redisStore, metrics),
		Tickets:        handlers.NewTicketsHandler(ticketService, settingsStore),
		Reports:        handlers.NewReportsHandler(reportService),
		Settings:       handlers.NewSettingsHandler(settingsStore, dispatcher),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
