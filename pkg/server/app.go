package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"AstroInsight/pkg/cache"
	"AstroInsight/pkg/config"
	xhttp "AstroInsight/pkg/http"
	applogger "AstroInsight/pkg/logger"
)

// Version is reported on the root route; set with -ldflags at build time.
var Version = "dev"

// Worker is a background task that runs until its context is cancelled.
type Worker struct {
	Name string
	Run  func(ctx context.Context) error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	cache      cache.Service
	workers    []Worker
	logger     *applogger.Logger

	stopWorkers context.CancelFunc
	// plain Group: a failing worker leaves the others running
	workersGroup errgroup.Group
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, c cache.Service, workers []Worker, l *applogger.Logger) *App {
	return &App{cfg: cfg, httpServer: httpServer, cache: c, workers: workers, logger: l}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or the HTTP server fails, then shuts
// everything down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		a.closeCache()
		return err
	}
	a.startWorkers()
	a.logger.Info("astroinsight started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("ephemeris", a.cfg.Ephemeris.Backend),
		applogger.String("version", Version),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-a.httpServer.Errors():
		if ok && err != nil {
			a.logger.Error("http server error", applogger.Error(err))
			runErr = fmt.Errorf("http server: %w", err)
		}
	}
	return errors.Join(runErr, a.shutdown())
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	var err error
	if serr := a.httpServer.Stop(context.Background()); serr != nil {
		a.logger.Error("http shutdown error", applogger.Error(serr))
		err = serr
	}
	if a.stopWorkers != nil {
		a.stopWorkers()
		if werr := a.workersGroup.Wait(); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	a.closeCache()

	a.logger.Info("shutdown complete")
	return err
}

func (a *App) startWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWorkers = cancel
	for _, w := range a.workers {
		a.workersGroup.Go(func() error {
			if err := w.Run(ctx); err != nil {
				a.logger.Error("worker stopped", applogger.String("worker", w.Name), applogger.Error(err))
				return fmt.Errorf("worker %s: %w", w.Name, err)
			}
			return nil
		})
	}
}

func (a *App) closeCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}
}
