package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/serials/internal/app"
	"github.com/allisson/serials/internal/config"
)

type listener interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type namedListener struct {
	name string
	listener
}

// RunServer serves the sequence API, plus the metrics endpoint when enabled, until
// SIGINT/SIGTERM or until either listener fails. Both listeners are then drained
// within ServerShutdownTimeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	logger.Info("starting server",
		slog.String("version", version),
		slog.String("db_driver", cfg.DBDriver),
		slog.Bool("metrics_enabled", cfg.MetricsEnabled),
	)

	apiServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	listeners := []namedListener{{name: "api", listener: apiServer}}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		listeners = append(listeners, namedListener{name: "metrics", listener: metricsServer})
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, logger, cfg.ServerShutdownTimeout, listeners)
}

// serve runs every listener and shuts all of them down once ctx is done or one fails.
// It returns the first start failure, or the joined shutdown errors.
func serve(ctx context.Context, logger *slog.Logger, timeout time.Duration, listeners []namedListener) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, l := range listeners {
		g.Go(func() error {
			if err := l.Start(gctx); err != nil {
				return fmt.Errorf("%s server: %w", l.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		for _, l := range listeners {
			if err := l.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s server shutdown: %w", l.name, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
