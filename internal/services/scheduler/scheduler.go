// Package scheduler запускает фоновые задачи: чистку старых отмененных подписок
// и пометку пользователей с истекшим триалом.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// UserRepository методы хранилища для обхода пользователей с истекшим триалом.
type UserRepository interface {
	ListUsersWithExpiredTrial(ctx context.Context, now time.Time) ([]*models.User, error)
	SetRequiresUpgrade(ctx context.Context, id string, value bool, at time.Time) error
}

// Purger удаляет старые отмененные подписки.
type Purger interface {
	PurgeOldCanceled(ctx context.Context, retentionDays int) (int, error)
}

// Config интервалы и срок хранения истории.
type Config struct {
	PurgeInterval      time.Duration
	TrialSweepInterval time.Duration
	RetentionDays      int
}

type SchedulerService struct {
	repo    UserRepository
	purger  Purger
	clock   clock.Clock
	events  rabbitmq.Publisher
	metrics *metrics.Metrics
	cfg     Config
	log     *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(log *slog.Logger, repo UserRepository, purger Purger, clk clock.Clock,
	events rabbitmq.Publisher, m *metrics.Metrics, cfg Config) *SchedulerService {
	if events == nil {
		events = rabbitmq.NopPublisher{}
	}
	return &SchedulerService{
		repo:    repo,
		purger:  purger,
		clock:   clk,
		events:  events,
		metrics: m,
		cfg:     cfg,
		log:     log,
	}
}

// Run запускает обе задачи и ждет их завершения после отмены ctx.
func (s *SchedulerService) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.PurgeCanceledSubscriptions(ctx)
	}()
	go func() {
		defer wg.Done()
		s.SweepExpiredTrials(ctx)
	}()
	wg.Wait()
}

// PurgeCanceledSubscriptions чистит историю сразу и затем раз в PurgeInterval.
func (s *SchedulerService) PurgeCanceledSubscriptions(ctx context.Context) {
	every(ctx, s.cfg.PurgeInterval, func() {
		_, _ = s.runPurge(ctx)
	})
}

func (s *SchedulerService) runPurge(ctx context.Context) (int, error) {
	s.log.Info("starting purge of canceled subscriptions", slog.Int("retention_days", s.cfg.RetentionDays))
	n, err := s.purger.PurgeOldCanceled(ctx, s.cfg.RetentionDays)
	if err != nil {
		s.log.Error("failed to purge canceled subscriptions", sl.Err(err))
		return 0, err
	}
	return n, nil
}

// SweepExpiredTrials помечает пользователей с истекшим триалом сразу и затем раз в TrialSweepInterval.
func (s *SchedulerService) SweepExpiredTrials(ctx context.Context) {
	every(ctx, s.cfg.TrialSweepInterval, func() {
		_, _ = s.runTrialSweep(ctx)
	})
}

// runTrialSweep ставит RequiresUpgrade пользователям без ACTIVE подписки, чей триал закончился.
// Подписки не меняются: TRIAL остается до замены.
func (s *SchedulerService) runTrialSweep(ctx context.Context) (int, error) {
	s.log.Info("starting sweep of expired trials")
	now := s.clock.Now()
	users, err := s.repo.ListUsersWithExpiredTrial(ctx, now)
	if err != nil {
		s.log.Error("failed to find users with expired trial", sl.Err(err))
		return 0, err
	}
	if len(users) == 0 {
		s.log.Info("no expired trials found")
		return 0, nil
	}
	s.log.Info("found expired trials", slog.Int("count", len(users)))

	flagged := 0
	for _, u := range users {
		if err := s.repo.SetRequiresUpgrade(ctx, u.ID, true, now); err != nil {
			s.log.Error("failed to flag user", slog.String("user_id", u.ID), sl.Err(err))
			continue
		}
		flagged++
		if err := s.events.Publish(ctx, rabbitmq.Event{
			Type:        rabbitmq.EventTrialExpired,
			UserID:      u.ID,
			TrialEndsAt: u.TrialEndsAt,
			OccurredAt:  now,
		}); err != nil {
			s.log.Warn("failed to publish event", slog.String("type", rabbitmq.EventTrialExpired), sl.Err(err))
		}
	}
	s.metrics.AddTrialsExpired(flagged)
	return flagged, nil
}

// every вызывает fn сразу и затем с периодом interval до отмены ctx.
func every(ctx context.Context, interval time.Duration, fn func()) {
	fn()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
