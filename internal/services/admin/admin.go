// Package admin объединяет административные операции над тарифами, подписками
// и пользователями. Каждая операция требует администратора.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/password"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Catalog операции каталога тарифов.
type Catalog interface {
	CreatePlan(ctx context.Context, spec models.PlanSpec) (*models.Plan, error)
	UpdatePlan(ctx context.Context, id int64, patch models.PlanPatch) (*models.Plan, error)
	ListAllPlans(ctx context.Context) ([]*models.Plan, error)
}

// Trials выдача триала.
type Trials interface {
	GrantOrExtendTrial(ctx context.Context, userID string, days int) (*trial.Result, error)
}

// Lifecycle операции с подписками.
type Lifecycle interface {
	AssignPlan(ctx context.Context, userID string, planID int64) (*models.Subscription, error)
	ForceCancelSubscription(ctx context.Context, subscriptionID int64) (*models.Subscription, error)
	PurgeOldCanceled(ctx context.Context, retentionDays int) (int, error)
}

// Users хранилище пользователей.
type Users interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	SetUserRole(ctx context.Context, id string, role models.Role, at time.Time) error
}

// NewUser данные для создания пользователя из бэк-офиса.
type NewUser struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role"`
}

// Service административный интерфейс.
type Service struct {
	catalog   Catalog
	trials    Trials
	lifecycle Lifecycle
	users     Users
	clock     clock.Clock
	validate  *validator.Validate
	log       *slog.Logger
}

// New создает административный сервис.
func New(log *slog.Logger, catalog Catalog, trials Trials, lifecycle Lifecycle, users Users, clk clock.Clock) *Service {
	return &Service{
		catalog:   catalog,
		trials:    trials,
		lifecycle: lifecycle,
		users:     users,
		clock:     clk,
		validate:  validator.New(),
		log:       log,
	}
}

func (s *Service) authorize(op string, p models.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	s.log.Warn("admin operation rejected", slog.String("op", op), slog.String("user_id", p.UserID))
	return fmt.Errorf("%s: %w", op, models.ErrForbidden)
}

func (s *Service) audit(op string, p models.Principal, attrs ...any) {
	s.log.Info("admin operation", append([]any{slog.String("op", op), slog.String("admin_id", p.UserID)}, attrs...)...)
}

// AssignPlan назначает тариф пользователю.
func (s *Service) AssignPlan(ctx context.Context, p models.Principal, userID string, planID int64) (*models.Subscription, error) {
	const op = "admin.AssignPlan"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	sub, err := s.lifecycle.AssignPlan(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.String("user_id", userID), slog.Int64("plan_id", planID))
	return sub, nil
}

// GrantOrExtendTrial выдает или продлевает триал.
func (s *Service) GrantOrExtendTrial(ctx context.Context, p models.Principal, userID string, days int) (*trial.Result, error) {
	const op = "admin.GrantOrExtendTrial"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	res, err := s.trials.GrantOrExtendTrial(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.String("user_id", userID), slog.Int("days", days))
	return res, nil
}

// CancelSubscription отменяет подписку любого пользователя.
func (s *Service) CancelSubscription(ctx context.Context, p models.Principal, subscriptionID int64) (*models.Subscription, error) {
	const op = "admin.CancelSubscription"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	sub, err := s.lifecycle.ForceCancelSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.Int64("subscription_id", subscriptionID))
	return sub, nil
}

// CreatePlan добавляет тариф.
func (s *Service) CreatePlan(ctx context.Context, p models.Principal, spec models.PlanSpec) (*models.Plan, error) {
	const op = "admin.CreatePlan"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	plan, err := s.catalog.CreatePlan(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.String("plan", plan.Name))
	return plan, nil
}

// UpdatePlan правит тариф.
func (s *Service) UpdatePlan(ctx context.Context, p models.Principal, id int64, patch models.PlanPatch) (*models.Plan, error) {
	const op = "admin.UpdatePlan"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	plan, err := s.catalog.UpdatePlan(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.Int64("plan_id", id))
	return plan, nil
}

// ListPlans возвращает все тарифы, включая неактивные.
func (s *Service) ListPlans(ctx context.Context, p models.Principal) ([]*models.Plan, error) {
	const op = "admin.ListPlans"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	plans, err := s.catalog.ListAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// PurgeOldCanceled удаляет старые отмененные подписки.
func (s *Service) PurgeOldCanceled(ctx context.Context, p models.Principal, retentionDays int) (int, error) {
	const op = "admin.PurgeOldCanceled"
	if err := s.authorize(op, p); err != nil {
		return 0, err
	}
	n, err := s.lifecycle.PurgeOldCanceled(ctx, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.Int("retention_days", retentionDays), slog.Int("count", n))
	return n, nil
}

// ListUsers возвращает страницу пользователей.
func (s *Service) ListUsers(ctx context.Context, p models.Principal, limit, offset int) ([]*models.User, error) {
	const op = "admin.ListUsers"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%s: %w: offset must not be negative", op, models.ErrValidation)
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// CreateUser создает пользователя с хешированным паролем.
func (s *Service) CreateUser(ctx context.Context, p models.Principal, in NewUser) (*models.User, error) {
	const op = "admin.CreateUser"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrValidation, err)
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown role %q", op, models.ErrValidation, in.Role)
	}
	if err := password.Validate(in.Password); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrValidation, err)
	}
	hash, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	u := &models.User{
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.String("user_id", u.ID), slog.String("role", string(role)))
	return u, nil
}

// SetRole меняет роль пользователя.
func (s *Service) SetRole(ctx context.Context, p models.Principal, userID string, role models.Role) (*models.User, error) {
	const op = "admin.SetRole"
	if err := s.authorize(op, p); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown role %q", op, models.ErrValidation, role)
	}
	if err := s.users.SetUserRole(ctx, userID, role, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit(op, p, slog.String("user_id", userID), slog.String("role", string(role)))
	return u, nil
}
