// Package catalog управляет каталогом тарифов: чтение, создание и правка планов.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// ActivePlansKey ключ кеша списка активных тарифов.
const ActivePlansKey = "plans:active"

const defaultCurrency = "USD"

var planNameRe = regexp.MustCompile(`^[a-z0-9_-]{2,32}$`)

// Repository методы хранилища, нужные каталогу.
type Repository interface {
	CreatePlan(ctx context.Context, p *models.Plan) error
	UpdatePlan(ctx context.Context, p *models.Plan) error
	GetPlanByID(ctx context.Context, id int64) (*models.Plan, error)
	GetPlanByName(ctx context.Context, name string) (*models.Plan, error)
	ListPlans(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
}

// Cache кеш списка тарифов. Может отсутствовать.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service каталог тарифов.
type Service struct {
	repo     Repository
	cache    Cache
	clock    clock.Clock
	ttl      time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// New создает каталог. cache может быть nil, тогда список читается из хранилища.
func New(log *slog.Logger, repo Repository, cache Cache, clk clock.Clock, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		clock:    clk,
		ttl:      ttl,
		log:      log,
		metrics:  m,
		validate: validator.New(),
	}
}

// ValidateLimit проверяет значение лимита: -1 (без ограничений) или неотрицательное число.
func ValidateLimit(v int) bool {
	return v == models.Unlimited || v >= 0
}

// GetPlan возвращает активный тариф по имени. Неактивный тариф считается отсутствующим.
func (s *Service) GetPlan(ctx context.Context, name string) (*models.Plan, error) {
	const op = "catalog.GetPlan"

	p, err := s.repo.GetPlanByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !p.IsActive {
		return nil, fmt.Errorf("%s: plan %q: %w", op, name, models.ErrNotFound)
	}
	return p, nil
}

// GetPlanAny возвращает тариф по имени независимо от активности.
func (s *Service) GetPlanAny(ctx context.Context, name string) (*models.Plan, error) {
	const op = "catalog.GetPlanAny"

	p, err := s.repo.GetPlanByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetPlanByID возвращает тариф по идентификатору.
func (s *Service) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "catalog.GetPlanByID"

	p, err := s.repo.GetPlanByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListActivePlans возвращает активные тарифы по sort_order, затем id.
// Сначала смотрит в кеш, ошибки кеша только логируются.
func (s *Service) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "catalog.ListActivePlans"

	if s.cache != nil {
		var cached []*models.Plan
		found, err := s.cache.Get(ctx, ActivePlansKey, &cached)
		if err != nil {
			s.log.Warn("failed to read plans from cache", slog.String("key", ActivePlansKey), sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	plans, err := s.repo.ListPlans(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ActivePlansKey, plans, s.ttl); err != nil {
			s.log.Warn("failed to cache plans", slog.String("key", ActivePlansKey), sl.Err(err))
		}
	}
	return plans, nil
}

// ListAllPlans возвращает все тарифы, включая неактивные.
func (s *Service) ListAllPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "catalog.ListAllPlans"

	plans, err := s.repo.ListPlans(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// CreatePlan добавляет тариф. Имя уникально и после создания не меняется.
func (s *Service) CreatePlan(ctx context.Context, spec models.PlanSpec) (*models.Plan, error) {
	const op = "catalog.CreatePlan"

	p, err := s.createPlan(ctx, spec)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("plan created", slog.String("plan", p.Name), slog.Int64("id", p.ID))
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) createPlan(ctx context.Context, spec models.PlanSpec) (*models.Plan, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.DisplayName = strings.TrimSpace(spec.DisplayName)
	if err := s.validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	if !planNameRe.MatchString(spec.Name) {
		return nil, fmt.Errorf("%w: name %q must match %s", models.ErrValidation, spec.Name, planNameRe)
	}
	if err := checkLimits(spec.MaxHouses, spec.MaxRoomsPerHouse, spec.MaxItemsPerRoom); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &models.Plan{
		Name:             spec.Name,
		DisplayName:      spec.DisplayName,
		Description:      spec.Description,
		Price:            spec.Price,
		Currency:         normalizeCurrency(spec.Currency),
		MaxHouses:        spec.MaxHouses,
		MaxRoomsPerHouse: spec.MaxRoomsPerHouse,
		MaxItemsPerRoom:  spec.MaxItemsPerRoom,
		IsActive:         true,
		AllowTrial:       spec.AllowTrial,
		SortOrder:        spec.SortOrder,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if spec.IsActive != nil {
		p.IsActive = *spec.IsActive
	}
	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePlan меняет все поля тарифа, кроме имени.
func (s *Service) UpdatePlan(ctx context.Context, id int64, patch models.PlanPatch) (*models.Plan, error) {
	const op = "catalog.UpdatePlan"

	p, err := s.updatePlan(ctx, id, patch)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("plan updated", slog.String("plan", p.Name), slog.Int64("id", p.ID))
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) updatePlan(ctx context.Context, id int64, patch models.PlanPatch) (*models.Plan, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	p, err := s.repo.GetPlanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if strings.TrimSpace(p.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display name is required", models.ErrValidation)
	}
	if err := checkLimits(p.MaxHouses, p.MaxRoomsPerHouse, p.MaxItemsPerRoom); err != nil {
		return nil, err
	}
	p.Currency = normalizeCurrency(p.Currency)
	p.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ActivePlansKey); err != nil {
		s.log.Warn("failed to invalidate plans cache", slog.String("key", ActivePlansKey), sl.Err(err))
	}
}

func checkLimits(limits ...int) error {
	var errs []error
	for _, v := range limits {
		if !ValidateLimit(v) {
			errs = append(errs, fmt.Errorf("limit %d must be -1 or non-negative", v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", models.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}
