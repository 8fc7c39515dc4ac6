package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crisis-support-service/internal/api/http"
	"github.com/spec-kit/crisis-support-service/internal/api/http/handlers"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/config"
	"github.com/spec-kit/crisis-support-service/internal/events"
	"github.com/spec-kit/crisis-support-service/internal/observability"
	"github.com/spec-kit/crisis-support-service/internal/persistence"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	"github.com/spec-kit/crisis-support-service/internal/service"
	"github.com/spec-kit/crisis-support-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	childRepo := repository.NewChildRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	environmentRepo := repository.NewEnvironmentRepository(pool)
	personalizationRepo := repository.NewPersonalizationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, redis.Client, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	childService := service.NewChildServiceWithBounds(childRepo, cfg.Children.MinAgeYears, cfg.Children.MaxAgeYears)
	crisisService := service.NewCrisisService(service.CrisisDependencies{
		ChildRepo:  childRepo,
		Dispatcher: dispatcher,
		Notifier:   notificationService,
		Logger:     logger,
	})
	calendarService := service.NewCalendarService(service.CalendarDependencies{
		EventRepo:  eventRepo,
		ChildRepo:  childRepo,
		Dispatcher: dispatcher,
		Notifier:   notificationService,
		Logger:     logger,
	})
	environmentService := service.NewEnvironmentService(environmentRepo)
	personalizationService := service.NewPersonalizationService(personalizationRepo, childRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Children:        handlers.NewChildrenHandler(childService),
		Crises:          handlers.NewCrisesHandler(crisisService),
		Events:          handlers.NewEventsHandler(calendarService),
		Environments:    handlers.NewEnvironmentsHandler(environmentService),
		Personalization: handlers.NewPersonalizationHandler(personalizationService),
		AuthMiddleware:  authMiddleware,
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
