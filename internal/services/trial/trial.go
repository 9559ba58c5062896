// Package trial выдает пробный период: однократный самостоятельный старт
// и продление администратором.
package trial

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

// Repository методы хранилища, нужные для триала.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUserForUpdate(ctx context.Context, id string) (*models.User, error)
	UpdateUserTrial(ctx context.Context, u *models.User) error
	GetPlanByName(ctx context.Context, name string) (*models.Plan, error)
	GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	CancelOpenSubscriptions(ctx context.Context, userID string, at time.Time) (int, error)
	CreateSubscription(ctx context.Context, s *models.Subscription) error
	UpdateSubscription(ctx context.Context, s *models.Subscription) error
}

// Config параметры пробного периода.
type Config struct {
	TrialDays int
	TrialPlan string
}

// Result пользователь и подписка после выдачи триала.
type Result struct {
	User         *models.User         `json:"user"`
	Subscription *models.Subscription `json:"subscription"`
	// Extended true, если существующая TRIAL-подписка продлена на месте.
	Extended bool `json:"extended"`
}

// Service менеджер пробного периода.
type Service struct {
	repo    Repository
	clock   clock.Clock
	events  rabbitmq.Publisher
	metrics *metrics.Metrics
	cfg     Config
	log     *slog.Logger
}

// New создает менеджер триала. events может быть nil.
func New(log *slog.Logger, repo Repository, clk clock.Clock, events rabbitmq.Publisher, m *metrics.Metrics, cfg Config) *Service {
	if events == nil {
		events = rabbitmq.NopPublisher{}
	}
	if cfg.TrialPlan == "" {
		cfg.TrialPlan = models.PlanTrial
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

// StartTrial запускает пробный период, доступный пользователю один раз.
// Все открытые подписки пользователя отменяются, создается TRIAL-подписка.
func (s *Service) StartTrial(ctx context.Context, userID string) (*Result, error) {
	const op = "trial.StartTrial"

	res, err := s.startTrial(ctx, userID)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("trial started",
		slog.String("user_id", userID),
		slog.Int64("subscription_id", res.Subscription.ID),
		slog.Time("trial_ends_at", *res.User.TrialEndsAt))
	s.publish(ctx, rabbitmq.Event{
		Type:           rabbitmq.EventTrialStarted,
		UserID:         userID,
		SubscriptionID: res.Subscription.ID,
		PlanName:       s.cfg.TrialPlan,
		TrialEndsAt:    res.User.TrialEndsAt,
	})
	return res, nil
}

func (s *Service) startTrial(ctx context.Context, userID string) (*Result, error) {
	if s.cfg.TrialDays <= 0 {
		return nil, fmt.Errorf("%w: trial days must be positive", models.ErrConfiguration)
	}
	now := s.clock.Now()
	end := now.AddDate(0, 0, s.cfg.TrialDays)

	var res Result
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u.HasUsedTrial {
			return models.ErrTrialAlreadyUsed
		}
		plan, err := s.trialPlan(ctx)
		if err != nil {
			return err
		}

		u.TrialStartedAt = &now
		u.TrialEndsAt = &end
		u.HasUsedTrial = true
		u.RequiresUpgrade = false
		u.UpdatedAt = now
		if err := s.repo.UpdateUserTrial(ctx, u); err != nil {
			return err
		}

		sub, err := s.replaceWithTrial(ctx, userID, plan, now, end)
		if err != nil {
			return err
		}
		res = Result{User: u, Subscription: sub}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GrantOrExtendTrial выдает или продлевает триал до now+days. Флаг использования
// триала не проверяется. Дата начала триала сохраняется, если уже была.
func (s *Service) GrantOrExtendTrial(ctx context.Context, userID string, days int) (*Result, error) {
	const op = "trial.GrantOrExtendTrial"

	res, err := s.grantOrExtend(ctx, userID, days)
	s.metrics.ObserveOperation(op, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("trial granted",
		slog.String("user_id", userID),
		slog.Int("days", days),
		slog.Bool("extended", res.Extended),
		slog.Int64("subscription_id", res.Subscription.ID))
	s.publish(ctx, rabbitmq.Event{
		Type:           rabbitmq.EventTrialExtended,
		UserID:         userID,
		SubscriptionID: res.Subscription.ID,
		PlanName:       s.cfg.TrialPlan,
		TrialEndsAt:    res.User.TrialEndsAt,
	})
	return res, nil
}

func (s *Service) grantOrExtend(ctx context.Context, userID string, days int) (*Result, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", models.ErrValidation, days)
	}
	now := s.clock.Now()
	end := now.AddDate(0, 0, days)

	var res Result
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		plan, err := s.trialPlan(ctx)
		if err != nil {
			return err
		}

		if u.TrialStartedAt == nil {
			u.TrialStartedAt = &now
		}
		u.TrialEndsAt = &end
		u.HasUsedTrial = true
		u.RequiresUpgrade = false
		u.UpdatedAt = now
		if err := s.repo.UpdateUserTrial(ctx, u); err != nil {
			return err
		}

		current, err := s.repo.GetOpenSubscription(ctx, userID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if current != nil && current.Status == models.StatusTrial && current.PlanID == plan.ID {
			current.TrialEndsAt = &end
			current.CurrentPeriodEnd = end
			current.UpdatedAt = now
			if err := s.repo.UpdateSubscription(ctx, current); err != nil {
				return err
			}
			current.Plan = plan
			res = Result{User: u, Subscription: current, Extended: true}
			return nil
		}

		sub, err := s.replaceWithTrial(ctx, userID, plan, now, end)
		if err != nil {
			return err
		}
		res = Result{User: u, Subscription: sub}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// replaceWithTrial отменяет открытые подписки и создает TRIAL-подписку. Вызывается в транзакции.
func (s *Service) replaceWithTrial(ctx context.Context, userID string, plan *models.Plan, now, end time.Time) (*models.Subscription, error) {
	canceled, err := s.repo.CancelOpenSubscriptions(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if canceled > 0 {
		s.log.Debug("open subscriptions superseded by trial", slog.String("user_id", userID), slog.Int("count", canceled))
	}

	sub := &models.Subscription{
		UserID:             userID,
		PlanID:             plan.ID,
		Status:             models.StatusTrial,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   end,
		TrialEndsAt:        &end,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	sub.Plan = plan
	return sub, nil
}

func (s *Service) trialPlan(ctx context.Context) (*models.Plan, error) {
	plan, err := s.repo.GetPlanByName(ctx, s.cfg.TrialPlan)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: trial plan %q is not configured", models.ErrConfiguration, s.cfg.TrialPlan)
	}
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: trial plan %q is not active", models.ErrConfiguration, s.cfg.TrialPlan)
	}
	return plan, nil
}

func (s *Service) publish(ctx context.Context, e rabbitmq.Event) {
	e.OccurredAt = s.clock.Now()
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", e.Type), sl.Err(err))
	}
}
