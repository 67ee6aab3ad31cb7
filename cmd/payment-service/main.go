package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/draftea/order-saga/payment-service/config"
	"github.com/draftea/order-saga/shared/logging"
	"github.com/draftea/order-saga/shared/server"
	"github.com/draftea/order-saga/shared/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting service",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("transport", cfg.Transport),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel := telemetry.NewTelemetry(telemetry.PaymentServiceConfig)
	if cfg.Telemetry.Enabled {
		var shutdown func()
		tel, shutdown, err = telemetry.InitTelemetry(ctx, telemetry.PaymentServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint).WithSampleRatio(cfg.Telemetry.SampleRatio))
		if err != nil {
			logger.Fatal("failed to init telemetry", zap.Error(err))
		}
		defer shutdown()
	}
	ctx = telemetry.WithTelemetry(ctx, tel)

	// Initialize dependencies
	deps, err := config.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("error closing dependencies", zap.Error(err))
		}
	}()

	router := server.NewRouter(tel, nil)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return deps.Transport.Subscriber.Subscribe(gctx, deps.PaymentEventHandlers, deps.PaymentEventHandlers.Topics()...)
	})
	g.Go(func() error {
		return server.Serve(gctx, srv)
	})
	g.Go(func() error {
		return deps.Reaper.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", zap.Error(err))
		return
	}
	logger.Info("service stopped")
}
