package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/facematch/internal/api"
	"github.com/saturnino-fabrica-de-software/facematch/internal/config"
	"github.com/saturnino-fabrica-de-software/facematch/internal/face"
	"github.com/saturnino-fabrica-de-software/facematch/internal/service"
	"github.com/saturnino-fabrica-de-software/facematch/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting face match API",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("provider", cfg.FaceProvider),
		slog.String("model", cfg.FaceModel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Working directory for uploads, created if absent
	store, err := storage.NewTempStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	verifier, err := face.NewFaceVerifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	compareService := service.NewCompareService(store, verifier, logger,
		service.WithConcurrencyLimit(cfg.MaxConcurrentComparisons),
		service.WithTimeout(cfg.CompareTimeout),
		service.WithKeepFailedUploads(cfg.KeepFailedUploads),
	)

	// Load the model before accepting traffic. The first request retries on failure.
	if err := compareService.Warmup(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		logger.Warn("model warm-up failed, starting anyway", slog.Any("error", err))
	}

	router := api.NewRouter(logger, &api.Dependencies{
		CompareService: compareService,
		BodyLimit:      cfg.BodyLimit(),
		SwaggerHost:    cfg.Addr(),
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr()))
		if err := router.Listen(cfg.Addr()); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
