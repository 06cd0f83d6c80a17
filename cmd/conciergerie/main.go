package main

import (
	"context"
	"os"
	"time"

	"conciergerie/internal/cli"
	apphttp "conciergerie/internal/http"
	"conciergerie/internal/log"
	"conciergerie/internal/metrics"
	"conciergerie/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	res := cli.InitBackend(context.Background(), logger, cfg)

	aggregator, err := metrics.NewAggregator(metrics.Config{
		NightlyRate: cfg.NightlyRate,
		ShareLimit:  cfg.ShareLimit,
		RecentLimit: cfg.RecentLimit,
	}, logger)
	if err != nil {
		logger.Error("Failed to build metrics aggregator", log.FieldError, err.Error())
		os.Exit(1)
	}

	// A nil *amqp.Client must not become a non-nil interface.
	var publisher services.EventPublisher
	if res.Publisher != nil {
		publisher = res.Publisher
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Options{
		Repository:         res.Repository,
		Aggregator:         aggregator,
		Bookings:           services.NewBookingService(res.Repository, res.Repository, publisher, logger),
		Messages:           services.NewMessageService(res.Repository, nil, logger),
		Logger:             logger,
		CacheSize:          cfg.CacheSize,
		CacheTTL:           cfg.CacheTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.AllowedOrigins,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err.Error())
		}
	})

	logger.Info("Starting conciergerie server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"events", res.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
