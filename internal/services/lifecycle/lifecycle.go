// Package lifecycle назначает и отменяет подписки, отдает текущее состояние
// прав пользователя и чистит старую историю.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// Repository методы хранилища для жизненного цикла подписок.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	SetRequiresUpgrade(ctx context.Context, id string, value bool, at time.Time) error
	GetPlanByID(ctx context.Context, id int64) (*models.Plan, error)
	CreateSubscription(ctx context.Context, s *models.Subscription) error
	UpdateSubscription(ctx context.Context, s *models.Subscription) error
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error)
	CancelOpenSubscriptions(ctx context.Context, userID string, at time.Time) (int, error)
	DeleteCanceledBefore(ctx context.Context, before time.Time) (int, error)
}

// Config параметры назначения тарифа.
type Config struct {
	// AssignPeriod длина оплаченного периода. 0 - один календарный год.
	AssignPeriod time.Duration
}

// Service менеджер жизненного цикла подписок.
type Service struct {
	repo    Repository
	clock   clock.Clock
	events  rabbitmq.Publisher
	metrics *metrics.Metrics
	cfg     Config
	log     *slog.Logger
}

// New создает менеджер подписок. events может быть nil.
func New(log *slog.Logger, repo Repository, clk clock.Clock, events rabbitmq.Publisher, m *metrics.Metrics, cfg Config) *Service {
	if events == nil {
		events = rabbitmq.NopPublisher{}
	}
	return &Service{
		repo:    repo,
		clock:   clk,
		events:  events,
		metrics: m,
		cfg:     cfg,
		log:     log,
	}
}

// AssignPlan назначает пользователю активный тариф на один период.
// Открытые подписки отменяются в той же транзакции.
func (s *Service) AssignPlan(ctx context.Context, userID string, planID int64) (*models.Subscription, error) {
	const op = "lifecycle.AssignPlan"

	sub, err := s.assignPlan(ctx, userID, planID)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("plan assigned",
		slog.String("user_id", userID),
		slog.String("plan", sub.Plan.Name),
		slog.Int64("subscription_id", sub.ID))
	s.publish(ctx, rabbitmq.Event{
		Type:           rabbitmq.EventPlanAssigned,
		UserID:         userID,
		SubscriptionID: sub.ID,
		PlanName:       sub.Plan.Name,
	})
	return sub, nil
}

func (s *Service) assignPlan(ctx context.Context, userID string, planID int64) (*models.Subscription, error) {
	now := s.clock.Now()

	var sub *models.Subscription
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetUser(ctx, userID); err != nil {
			return err
		}
		plan, err := s.repo.GetPlanByID(ctx, planID)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return fmt.Errorf("%w: %q", models.ErrInvalidPlan, plan.Name)
		}

		if _, err := s.repo.CancelOpenSubscriptions(ctx, userID, now); err != nil {
			return err
		}
		sub = &models.Subscription{
			UserID:             userID,
			PlanID:             plan.ID,
			Status:             models.StatusActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   s.periodEnd(now),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.repo.CreateSubscription(ctx, sub); err != nil {
			return err
		}
		sub.Plan = plan
		return s.repo.SetRequiresUpgrade(ctx, userID, false, now)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) periodEnd(start time.Time) time.Time {
	if s.cfg.AssignPeriod > 0 {
		return start.Add(s.cfg.AssignPeriod)
	}
	return start.AddDate(1, 0, 0)
}

// CancelSubscription отменяет подписку владельца. Чужая подписка считается отсутствующей.
// Повторная отмена возвращает подписку без изменений.
func (s *Service) CancelSubscription(ctx context.Context, userID string, subscriptionID int64) (*models.Subscription, error) {
	const op = "lifecycle.CancelSubscription"

	sub, changed, err := s.cancel(ctx, subscriptionID, func(sub *models.Subscription) bool {
		return sub.UserID == userID
	})
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.afterCancel(ctx, sub, changed)
	return sub, nil
}

// ForceCancelSubscription отменяет подписку любого владельца. Только для администратора.
func (s *Service) ForceCancelSubscription(ctx context.Context, subscriptionID int64) (*models.Subscription, error) {
	const op = "lifecycle.ForceCancelSubscription"

	sub, changed, err := s.cancel(ctx, subscriptionID, nil)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.afterCancel(ctx, sub, changed)
	return sub, nil
}

func (s *Service) cancel(ctx context.Context, subscriptionID int64, owns func(*models.Subscription) bool) (*models.Subscription, bool, error) {
	sub, err := s.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, false, err
	}
	if owns != nil && !owns(sub) {
		return nil, false, fmt.Errorf("subscription %d: %w", subscriptionID, models.ErrNotFound)
	}
	if sub.Status == models.StatusCanceled {
		return sub, false, nil
	}

	sub.Status = models.StatusCanceled
	sub.CancelAtPeriodEnd = true
	sub.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

func (s *Service) afterCancel(ctx context.Context, sub *models.Subscription, changed bool) {
	if !changed {
		s.log.Debug("subscription already canceled", slog.Int64("subscription_id", sub.ID))
		return
	}
	s.log.Info("subscription canceled",
		slog.String("user_id", sub.UserID),
		slog.Int64("subscription_id", sub.ID))
	e := rabbitmq.Event{
		Type:           rabbitmq.EventSubscriptionCanceled,
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
	}
	if sub.Plan != nil {
		e.PlanName = sub.Plan.Name
	}
	s.publish(ctx, e)
}

// GetCurrentSubscription возвращает самую новую ACTIVE или TRIAL подписку с тарифом.
// Если открытой подписки нет, возвращает nil без ошибки.
func (s *Service) GetCurrentSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "lifecycle.GetCurrentSubscription"

	sub, err := s.repo.GetOpenSubscription(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// Status собирает состояние прав пользователя для страницы подписки.
func (s *Service) Status(ctx context.Context, userID string) (*models.EntitlementStatus, error) {
	const op = "lifecycle.Status"

	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.GetCurrentSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	st := &models.EntitlementStatus{
		Subscription:       sub,
		IsOnTrial:          u.IsOnTrial(now),
		TrialExpired:       u.TrialExpired(now),
		TrialDaysRemaining: u.TrialDaysRemaining(now),
		TrialEndsAt:        u.TrialEndsAt,
		HasUsedTrial:       u.HasUsedTrial,
		RequiresUpgrade:    u.RequiresUpgrade,
	}
	if sub != nil {
		st.Plan = sub.Plan
		st.HasActiveSubscription = sub.Status == models.StatusActive
	}
	return st, nil
}

// ListSubscriptions возвращает историю подписок пользователя, новые первыми.
func (s *Service) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "lifecycle.ListSubscriptions"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := s.repo.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// PurgeOldCanceled удаляет отмененные подписки, не менявшиеся дольше retentionDays.
func (s *Service) PurgeOldCanceled(ctx context.Context, retentionDays int) (int, error) {
	const op = "lifecycle.PurgeOldCanceled"

	if retentionDays <= 0 {
		err := fmt.Errorf("%w: retention days must be positive, got %d", models.ErrValidation, retentionDays)
		s.metrics.ObserveOperation(op, err)
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cutoff := s.clock.Now().AddDate(0, 0, -retentionDays)
	n, err := s.repo.DeleteCanceledBefore(ctx, cutoff)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AddSubscriptionsPurged(n)
	s.log.Info("canceled subscriptions purged", slog.Int("count", n), slog.Time("cutoff", cutoff))
	if n > 0 {
		s.publish(ctx, rabbitmq.Event{Type: rabbitmq.EventSubscriptionsPurged, Count: n})
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context, e rabbitmq.Event) {
	e.OccurredAt = s.clock.Now()
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", e.Type), sl.Err(err))
	}
}
