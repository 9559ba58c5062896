// Package infra открывает внешние ресурсы, общие для API и планировщика:
// хранилище, кеш redis и публикатор событий RabbitMQ.
package infra

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/cache"
	"github.com/magabrotheeeer/home-inventory/internal/config"
	"github.com/magabrotheeeer/home-inventory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/migrations"
	"github.com/magabrotheeeer/home-inventory/internal/storage"
	"github.com/magabrotheeeer/home-inventory/internal/storage/repository"
	"github.com/magabrotheeeer/home-inventory/internal/storage/sqlite"
)

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

// OpenStore открывает хранилище по storage.driver. Для PostgreSQL применяет миграции
// и ждет появления схемы.
func OpenStore(cfg config.Storage, log *slog.Logger) (storage.Store, error) {
	const op = "infra.OpenStore"

	switch cfg.Driver {
	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("sqlite storage opened", slog.String("path", cfg.SQLitePath))
		return st, nil

	case config.DriverPostgres:
		st, err := repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if cfg.MigrationsPath != "" {
			version, err := migrations.Run(st.DB, cfg.MigrationsPath)
			if err != nil {
				_ = st.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			log.Info("migrations applied", slog.Uint64("version", uint64(version)))
		}
		if err := waitForDB(st); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("postgres storage opened")
		return st, nil

	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}

func waitForDB(db *repository.Storage) error {
	var err error
	for range dbReadyAttempts {
		if err = repository.CheckDatabaseReady(db); err == nil {
			return nil
		}
		time.Sleep(dbReadyDelay)
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// OpenCache подключается к redis. Без адреса или при ошибке подключения возвращает nil:
// каталог тарифов работает без кеша.
func OpenCache(ctx context.Context, cfg config.RedisConnection, log *slog.Logger) *cache.Cache {
	if cfg.AddressRedis == "" {
		log.Info("redis is not configured, plan cache disabled")
		return nil
	}
	c, err := cache.InitServer(ctx, cfg)
	if err != nil {
		log.Warn("redis is unavailable, plan cache disabled", sl.Err(err))
		return nil
	}
	return c
}

// Events публикатор событий и функция освобождения ресурсов.
type Events struct {
	Publisher rabbitmq.Publisher
	close     func() error
}

// Close закрывает канал и соединение RabbitMQ.
func (e *Events) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}

// OpenEvents подключается к RabbitMQ и объявляет exchange с очередями.
// При выключенном RabbitMQ возвращает NopPublisher.
func OpenEvents(cfg config.RabbitMQ, log *slog.Logger) (*Events, error) {
	const op = "infra.OpenEvents"

	if !cfg.Enabled {
		log.Info("rabbitmq disabled, events are not published")
		return &Events{Publisher: rabbitmq.NopPublisher{}}, nil
	}

	conn, err := rabbitmq.Connect(cfg.URL, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetEntitlementQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := rabbitmq.NewPublisher(ch, cfg.Exchange)
	return &Events{
		Publisher: pub,
		close: func() error {
			if err := pub.Close(); err != nil {
				log.Error("failed to close channel", sl.Err(err))
			}
			return conn.Close()
		},
	}, nil
}
