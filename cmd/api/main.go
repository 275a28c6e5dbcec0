package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gym-service/internal/api/http"
	"github.com/spec-kit/gym-service/internal/api/http/handlers"
	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/observability"
	"github.com/spec-kit/gym-service/internal/persistence"
	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/internal/service"
	"github.com/spec-kit/gym-service/internal/worker"
	"github.com/spec-kit/gym-service/pkg/timeutil"
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
	studentRepo := repository.NewStudentRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	checkinRepo := repository.NewCheckinRepository(pool)
	helpOrderRepo := repository.NewHelpOrderRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	notifyQueue := queue.NewRedisQueue(redis.Client, cfg.Queue.KeyPrefix)
	clock := timeutil.SystemClock{}
	loc := cfg.App.Location()

	sessionService := service.NewSessionService(cfg.Auth, adminRepo, logger)
	if err := sessionService.EnsureDefaultAdmin(ctx); err != nil {
		logger.Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}

	studentService := service.NewStudentService(studentRepo)
	planService := service.NewPlanService(planRepo)
	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		RegistrationRepo: registrationRepo,
		StudentRepo:      studentRepo,
		PlanRepo:         planRepo,
		TxRunner:         txRunner,
		Queue:            notifyQueue,
		Clock:            clock,
		Logger:           logger,
	})
	checkinService := service.NewCheckinService(checkinRepo, studentRepo, txRunner, clock, loc)
	helpOrderService := service.NewHelpOrderService(helpOrderRepo, studentRepo, notifyQueue, clock, logger)

	mailer := worker.NewLogMailer(logger, cfg.Mail)
	workers := worker.NewPool(notifyQueue, logger, cfg.Queue)
	workers.Register(queue.JobRegistrationConfirmation, worker.NewRegistrationConfirmationHandler(mailer, loc))
	workers.Register(queue.JobHelpOrderAnswered, worker.NewHelpOrderAnsweredHandler(mailer))
	workers.Start(ctx)

	metrics := observability.NewMetrics()
	authMiddleware := auth.NewAuthMiddleware(sessionService.TokenManager(), adminRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Sessions:       handlers.NewSessionsHandler(sessionService),
		Students:       handlers.NewStudentsHandler(studentService),
		Plans:          handlers.NewPlansHandler(planService),
		Registrations:  handlers.NewRegistrationsHandler(registrationService),
		Checkins:       handlers.NewCheckinsHandler(checkinService),
		HelpOrders:     handlers.NewHelpOrdersHandler(helpOrderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	workers.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
