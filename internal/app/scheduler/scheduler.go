// Package scheduler содержит приложение планировщика фоновых задач сервиса подписок.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/home-inventory/internal/app/infra"
	"github.com/magabrotheeeer/home-inventory/internal/config"
	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/services/lifecycle"
	schedulerservice "github.com/magabrotheeeer/home-inventory/internal/services/scheduler"
	"github.com/magabrotheeeer/home-inventory/internal/storage"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	store            storage.Store
	events           *infra.Events
	logger           *slog.Logger
}

// New создает новый экземпляр приложения планировщика.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := infra.OpenStore(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	events, err := infra.OpenEvents(cfg.RabbitMQ, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	m := metrics.New(prometheus.NewRegistry())
	clk := clock.Real{}
	lc := lifecycle.New(logger, store, clk, events.Publisher, m, lifecycle.Config{
		AssignPeriod: cfg.AssignPeriod,
	})

	svc := schedulerservice.NewSchedulerService(logger, store, lc, clk, events.Publisher, m, schedulerservice.Config{
		PurgeInterval:      cfg.PurgeInterval,
		TrialSweepInterval: cfg.TrialSweepInterval,
		RetentionDays:      cfg.RetentionDays,
	})

	return &App{
		schedulerService: svc,
		store:            store,
		events:           events,
		logger:           logger,
	}, nil
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.schedulerService.Run(ctx)

	a.logger.Info("shutting down scheduler service")

	if err := a.events.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq", sl.Err(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}
