// Package storage описывает контракт хранилища сервиса подписок.
// Реализации: storage/repository (PostgreSQL) и storage/sqlite (встроенная, gorm).
package storage

import (
	"context"
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// Store полный интерфейс хранилища. Сервисы зависят от более узких интерфейсов.
type Store interface {
	// RunInTx выполняет fn в одной транзакции. Вызовы с контекстом из fn
	// выполняются внутри нее. Ошибка fn откатывает транзакцию.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	Users
	Plans
	Subscriptions
	Inventory

	Ping(ctx context.Context) error
	Close() error
}

// Users пользователи и поля триала.
type Users interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserForUpdate блокирует строку пользователя до конца транзакции RunInTx.
	GetUserForUpdate(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserTrial сохраняет поля триала, RequiresUpgrade и UpdatedAt.
	UpdateUserTrial(ctx context.Context, u *models.User) error
	SetUserRole(ctx context.Context, id string, role models.Role, at time.Time) error
	SetRequiresUpgrade(ctx context.Context, id string, value bool, at time.Time) error
	// ListUsersWithExpiredTrial пользователи с закончившимся триалом, без флага
	// RequiresUpgrade и без ACTIVE подписки.
	ListUsersWithExpiredTrial(ctx context.Context, now time.Time) ([]*models.User, error)
}

// Plans каталог тарифов.
type Plans interface {
	CreatePlan(ctx context.Context, p *models.Plan) error
	UpdatePlan(ctx context.Context, p *models.Plan) error
	GetPlanByID(ctx context.Context, id int64) (*models.Plan, error)
	// GetPlanByName не фильтрует по IsActive.
	GetPlanByName(ctx context.Context, name string) (*models.Plan, error)
	// ListPlans сортирует по sort_order, затем по id.
	ListPlans(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
}

// Subscriptions подписки.
type Subscriptions interface {
	CreateSubscription(ctx context.Context, s *models.Subscription) error
	UpdateSubscription(ctx context.Context, s *models.Subscription) error
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	// GetOpenSubscription самая новая ACTIVE или TRIAL подписка с тарифом либо models.ErrNotFound.
	GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error)
	// CancelOpenSubscriptions переводит все ACTIVE и TRIAL подписки пользователя в CANCELED
	// с cancel_at_period_end и возвращает число измененных строк.
	CancelOpenSubscriptions(ctx context.Context, userID string, at time.Time) (int, error)
	DeleteCanceledBefore(ctx context.Context, before time.Time) (int, error)
}

// Inventory читает дерево домов приложения учета вещей.
type Inventory interface {
	InventoryTree(ctx context.Context, userID string) ([]models.HouseNode, error)
}
