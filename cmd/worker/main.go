package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/observability"
	"github.com/spec-kit/gym-service/internal/persistence"
	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/internal/worker"
)

// Standalone notification worker. The API binary runs the same pool
// in-process; this one exists for deployments that scale mail dispatch
// independently of the HTTP tier.
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	notifyQueue := queue.NewRedisQueue(redis.Client, cfg.Queue.KeyPrefix)
	mailer := worker.NewLogMailer(logger, cfg.Mail)

	pool := worker.NewPool(notifyQueue, logger, cfg.Queue)
	pool.Register(queue.JobRegistrationConfirmation, worker.NewRegistrationConfirmationHandler(mailer, cfg.App.Location()))
	pool.Register(queue.JobHelpOrderAnswered, worker.NewHelpOrderAnsweredHandler(mailer))
	pool.Start(ctx)

	logger.Info("notification worker started", zap.Int("workers", cfg.Queue.Workers))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	cancel()
	pool.Wait()
}
