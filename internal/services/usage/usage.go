// Package usage считает использование инвентаря и сравнивает его с лимитами тарифа.
package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// Repository методы хранилища для подсчета использования.
type Repository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	InventoryTree(ctx context.Context, userID string) ([]models.HouseNode, error)
	GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	GetPlanByName(ctx context.Context, name string) (*models.Plan, error)
}

// Target родитель для лимитов на дом и на комнату.
type Target struct {
	HouseID int64 `json:"house_id,omitempty"`
	RoomID  int64 `json:"room_id,omitempty"`
}

// Config параметры учета использования.
type Config struct {
	FreePlan string
}

// Service учет использования.
type Service struct {
	repo    Repository
	clock   clock.Clock
	metrics *metrics.Metrics
	cfg     Config
	log     *slog.Logger
}

// New создает сервис учета использования.
func New(log *slog.Logger, repo Repository, clk clock.Clock, m *metrics.Metrics, cfg Config) *Service {
	if cfg.FreePlan == "" {
		cfg.FreePlan = models.PlanFree
	}
	return &Service{
		repo:    repo,
		clock:   clk,
		metrics: m,
		cfg:     cfg,
		log:     log,
	}
}

// ComputeUsage строит снимок использования по дереву дом-комната-предмет.
func (s *Service) ComputeUsage(ctx context.Context, userID string) (*models.Usage, error) {
	const op = "usage.ComputeUsage"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tree, err := s.repo.InventoryTree(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := FromTree(tree)
	return &u, nil
}

// FromTree считает использование по дереву владений.
func FromTree(tree []models.HouseNode) models.Usage {
	u := models.Usage{
		RoomsPerHouse: make(map[int64]int, len(tree)),
		ItemsPerRoom:  make(map[int64]int),
	}
	for _, h := range tree {
		u.Houses++
		u.RoomsPerHouse[h.ID] = len(h.Rooms)
		for _, r := range h.Rooms {
			u.Rooms++
			u.Items += r.ItemCount
			u.ItemsPerRoom[r.ID] = r.ItemCount
		}
	}
	return u
}

// CheckLimit решает, можно ли добавить delta единиц в измерении d.
// Для roomsPerHouse и itemsPerRoom текущее значение берется у родителя из target.
// Родитель обязателен и должен принадлежать пользователю: пустые дома и комнаты
// в usage есть с нулем, поэтому отсутствие ключа значит чужой или несуществующий родитель.
func CheckLimit(u models.Usage, plan *models.Plan, d models.Dimension, target Target, delta int) (models.LimitDecision, error) {
	if delta < 0 {
		return models.LimitDecision{}, fmt.Errorf("%w: delta must not be negative, got %d", models.ErrValidation, delta)
	}
	if plan == nil {
		return models.LimitDecision{}, fmt.Errorf("%w: plan is required", models.ErrValidation)
	}
	limit, ok := plan.Limit(d)
	if !ok {
		return models.LimitDecision{}, fmt.Errorf("%w: unknown dimension %q", models.ErrValidation, d)
	}

	var (
		current int
		err     error
	)
	switch d {
	case models.DimensionHouses:
		current = u.Houses
	case models.DimensionRoomsPerHouse:
		current, err = parentCount(u.RoomsPerHouse, target.HouseID, "house")
	case models.DimensionItemsPerRoom:
		current, err = parentCount(u.ItemsPerRoom, target.RoomID, "room")
	}
	if err != nil {
		return models.LimitDecision{}, err
	}

	return models.LimitDecision{
		Allowed:   limit == models.Unlimited || current+delta <= limit,
		Dimension: d,
		Limit:     limit,
		Current:   current,
		Requested: delta,
	}, nil
}

func parentCount(counts map[int64]int, id int64, kind string) (int, error) {
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s_id is required", models.ErrValidation, kind)
	}
	n, ok := counts[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s %d", models.ErrNotFound, kind, id)
	}
	return n, nil
}

// EffectivePlan возвращает тариф, по которому меряются лимиты пользователя:
// ACTIVE подписка, незакончившийся TRIAL или бесплатный тариф.
func (s *Service) EffectivePlan(ctx context.Context, userID string) (*models.Plan, error) {
	const op = "usage.EffectivePlan"

	sub, err := s.repo.GetOpenSubscription(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub != nil && sub.Plan != nil {
		switch sub.Status {
		case models.StatusActive:
			return sub.Plan, nil
		case models.StatusTrial:
			if sub.TrialEndsAt != nil && s.clock.Now().Before(*sub.TrialEndsAt) {
				return sub.Plan, nil
			}
		}
	}

	free, err := s.repo.GetPlanByName(ctx, s.cfg.FreePlan)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w: free plan %q is not configured", op, models.ErrConfiguration, s.cfg.FreePlan)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !free.IsActive {
		return nil, fmt.Errorf("%s: %w: free plan %q is not active", op, models.ErrConfiguration, s.cfg.FreePlan)
	}
	return free, nil
}

// Check считает использование, выбирает тариф и проверяет лимит.
func (s *Service) Check(ctx context.Context, userID string, d models.Dimension, target Target, delta int) (*models.LimitDecision, error) {
	const op = "usage.Check"

	decision, err := s.check(ctx, userID, d, target, delta)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !decision.Allowed {
		s.log.Info("limit reached",
			slog.String("user_id", userID),
			slog.String("dimension", string(d)),
			slog.Int("limit", decision.Limit),
			slog.Int("current", decision.Current))
	}
	return decision, nil
}

func (s *Service) check(ctx context.Context, userID string, d models.Dimension, target Target, delta int) (*models.LimitDecision, error) {
	u, err := s.ComputeUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.EffectivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	decision, err := CheckLimit(*u, plan, d, target, delta)
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// Summary отдает использование, действующий тариф и остаток по каждому измерению.
// Для лимитов на дом и комнату берется самый заполненный родитель.
func (s *Service) Summary(ctx context.Context, userID string) (*models.UsageSummary, error) {
	const op = "usage.Summary"

	u, err := s.ComputeUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan, err := s.EffectivePlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UsageSummary{
		Usage: *u,
		Plan:  plan,
		Headroom: []models.Headroom{
			headroom(models.DimensionHouses, plan.MaxHouses, u.Houses),
			headroom(models.DimensionRoomsPerHouse, plan.MaxRoomsPerHouse, maxValue(u.RoomsPerHouse)),
			headroom(models.DimensionItemsPerRoom, plan.MaxItemsPerRoom, maxValue(u.ItemsPerRoom)),
		},
	}, nil
}

func headroom(d models.Dimension, limit, used int) models.Headroom {
	h := models.Headroom{Dimension: d, Limit: limit, Used: used, Remaining: models.Unlimited}
	if limit != models.Unlimited {
		h.Remaining = max(limit-used, 0)
	}
	return h
}

func maxValue(m map[int64]int) int {
	var res int
	for _, v := range m {
		res = max(res, v)
	}
	return res
}
