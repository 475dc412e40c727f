package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Skufu/alzrisk/internal/config"
	"github.com/Skufu/alzrisk/internal/metrics"
	"github.com/Skufu/alzrisk/internal/predictor"
	"github.com/Skufu/alzrisk/internal/server"
	"github.com/Skufu/alzrisk/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ModelPath = resolveModelPath(cmd, cfg.ModelPath)

	logger := telemetry.New(os.Stdout, telemetry.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	reg := metrics.NewRegistry()
	collector := metrics.New(reg)

	p, err := loadPredictor(cfg.ModelPath,
		predictor.WithObserver(collector),
		predictor.WithLogger(logger),
	)
	if err != nil {
		logger.Error("model load failed", "path", cfg.ModelPath, "error", err)
		return err
	}
	logger.Info("model loaded", "path", cfg.ModelPath, "features", len(p.FeatureNames()))

	router, err := server.NewRouter(server.Options{
		Predictor:        p,
		ModelPath:        cfg.ModelPath,
		Metrics:          metrics.Handler(reg),
		Logger:           logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		MaxBodyBytes:     cfg.MaxBodyBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("server listening", "addr", cfg.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return waitForShutdown(ctx, srv, errCh, cfg.ShutdownTimeout, logger)
}

// waitForShutdown blocks until ctx is done or the listener fails, then
// drains in-flight requests within timeout.
func waitForShutdown(ctx context.Context, srv *http.Server, errCh <-chan error, timeout time.Duration, logger *slog.Logger) error {
	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
