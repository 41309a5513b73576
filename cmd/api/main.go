package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/copconnect/reporting-service/internal/api/http"
	"github.com/copconnect/reporting-service/internal/api/http/handlers"
	"github.com/copconnect/reporting-service/internal/auth"
	"github.com/copconnect/reporting-service/internal/config"
	"github.com/copconnect/reporting-service/internal/events"
	"github.com/copconnect/reporting-service/internal/observability"
	"github.com/copconnect/reporting-service/internal/persistence"
	"github.com/copconnect/reporting-service/internal/repository"
	"github.com/copconnect/reporting-service/internal/service"
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

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	principalRepo := repository.NewPrincipalRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	faqRepo := repository.NewCachedFAQRepository(repository.NewFAQRepository(pool), redis, cfg.FAQ.CacheTTL(), logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PrincipalRepo: principalRepo,
		TokenManager:  tokens,
		Hasher:        auth.NewHasher(cfg.Auth.BcryptCost),
		Metrics:       metrics,
		Logger:        logger,
	})

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, redis, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	reportService := service.NewReportService(reportRepo, dispatcher, logger)
	faqService := service.NewFAQService(faqRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:        handlers.NewAuthHandler(authService),
		Reports:     handlers.NewReportsHandler(reportService),
		FAQs:        handlers.NewFAQHandler(faqService),
		Guard:       auth.NewGuard(tokens),
		AuthLimiter: httptransport.AuthRateLimiter(cfg.Auth.RateLimitPerMinute, persistence.NewLimiterStorage(redis.Client, "limiter:")),
		Metrics:     metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
