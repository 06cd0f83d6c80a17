package main

import (
	"context"
	"errors"
	"os"
	"time"

	"conciergerie/internal/backend"
	"conciergerie/internal/cli"
	"conciergerie/internal/log"
	"conciergerie/internal/services"
	"conciergerie/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting notify-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker reads what the server wrote, so both must share a database.
	if cfg.DataBackend != backend.SQLiteBackend.String() {
		logger.Error("notify-worker requires the sqlite backend", log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("notify-worker requires AMQP_URL")
		os.Exit(1)
	}

	res := cli.InitBackend(context.Background(), logger, cfg)
	consumer := res.Publisher
	if consumer == nil {
		logger.Error("AMQP broker unreachable", "queue", cfg.AMQPQueue)
		_ = res.Close()
		os.Exit(1)
	}

	messages := services.NewMessageService(res.Repository, nil, logger)
	w := worker.NewNotificationWorker(res.Repository, messages, cfg.WorkerBatchSize, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err.Error())
		}
	})

	logger.Info("Performing startup notification check...")
	if err := w.StartupCheck(ctx); err != nil {
		logger.Error("Startup notification check failed", log.FieldError, err.Error())
	}

	go func() {
		if err := consumer.ConsumeBookingEvents(ctx, w.HandleBookingEvent); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Booking event consumption failed", log.FieldError, err.Error())
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.WorkerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.StartupCheck(ctx); err != nil && ctx.Err() == nil {
					logger.Error("Periodic notification check failed", log.FieldError, err.Error())
				}
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("notify-worker stopped")
}
