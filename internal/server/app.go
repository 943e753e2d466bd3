// Package server initializes and runs the health tracker server.
// It wires the repository manager, the core services and the HTTP
// transport, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/config"
	"github.com/dmitrijs2005/healthtracker/internal/server/httpapi"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/healthtracker/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	symptoms *services.SymptomService
	metrics  *services.MetricService
	sync     *services.SyncService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:   cfg,
		logger:   logger,
		repos:    rm,
		symptoms: services.NewSymptomService(rm.Symptoms(), logger),
		metrics:  services.NewMetricService(rm.Metrics(), logger),
		sync:     services.NewSyncService(rm.Symptoms(), rm.Metrics(), logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.config.APIToken, app.symptoms, app.metrics, app.sync)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "Error closing repositories", "error", err)
	}
}
