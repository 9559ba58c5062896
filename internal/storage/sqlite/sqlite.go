// Package sqlite реализует storage.Store на встроенной SQLite через gorm.
// Используется для локального запуска и в тестах сервисов.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/storage"
)

// MemoryPath открывает изолированную базу в памяти.
const MemoryPath = ":memory:"

var _ storage.Store = (*Storage)(nil)

// Storage хранит соединение gorm.
type Storage struct {
	db *gorm.DB
}

type txKey struct{}

// Open открывает базу по пути dbPath, создает схему и системные тарифы.
func Open(dbPath string) (*Storage, error) {
	const op = "storage.sqlite.Open"

	var dsn string
	if dbPath == MemoryPath {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("%s: create db directory: %w", op, err)
		}
		dsn = dbPath + "?"
	}
	if !strings.HasSuffix(dsn, "?") {
		dsn += "&"
	}
	dsn += "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// SQLite допускает одного писателя
	sqlDB.SetMaxOpenConns(1)

	s := &Storage{db: database}
	if err := s.bootstrap(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close закрывает соединение.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RunInTx выполняет fn в транзакции gorm. Вложенный вызов использует внешнюю транзакцию.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Storage) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *Storage) bootstrap() error {
	if err := s.db.AutoMigrate(&userRow{}, &planRow{}, &subscriptionRow{},
		&houseRow{}, &roomRow{}, &itemRow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_one_open_per_user
		ON subscriptions (user_id) WHERE status IN ('ACTIVE', 'TRIAL')`).Error; err != nil {
		return fmt.Errorf("create open subscription index: %w", err)
	}

	now := time.Now().UTC()
	seed := make([]planRow, 0, len(systemPlans))
	for _, p := range systemPlans {
		p.CreatedAt, p.UpdatedAt = now, now
		seed = append(seed, planRowFromModel(&p))
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}
	return nil
}

// systemPlans совпадают с начальным набором в migrations/000001_init.up.sql.
var systemPlans = []models.Plan{
	{Name: models.PlanFree, DisplayName: "Free", Description: "One small house", Currency: "USD",
		MaxHouses: 1, MaxRoomsPerHouse: 3, MaxItemsPerRoom: 50, IsActive: true, SortOrder: 0},
	{Name: models.PlanTrial, DisplayName: "Trial", Description: "Full access for the trial period", Currency: "USD",
		MaxHouses: models.Unlimited, MaxRoomsPerHouse: models.Unlimited, MaxItemsPerRoom: models.Unlimited,
		IsActive: true, AllowTrial: true, SortOrder: 1},
	{Name: models.PlanBasic, DisplayName: "Basic", Description: "A couple of houses", Price: 499, Currency: "USD",
		MaxHouses: 2, MaxRoomsPerHouse: 10, MaxItemsPerRoom: 200, IsActive: true, SortOrder: 2},
	{Name: models.PlanPro, DisplayName: "Pro", Description: "Bigger households", Price: 999, Currency: "USD",
		MaxHouses: 5, MaxRoomsPerHouse: 25, MaxItemsPerRoom: models.Unlimited, IsActive: true, SortOrder: 3},
	{Name: models.PlanPremium, DisplayName: "Premium", Description: "No limits", Price: 1999, Currency: "USD",
		MaxHouses: models.Unlimited, MaxRoomsPerHouse: models.Unlimited, MaxItemsPerRoom: models.Unlimited,
		IsActive: true, SortOrder: 4},
}

// wrapErr переводит ошибки gorm и SQLite в ошибки models.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, models.ErrStorage, err)
	}
}
