package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

var openStatuses = []string{string(models.StatusActive), string(models.StatusTrial)}

// CreateSubscription вставляет подписку и заполняет её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	const op = "storage.sqlite.CreateSubscription"
	row := subscriptionRowFromModel(sub)
	row.ID = 0
	if err := s.conn(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	sub.ID = row.ID
	return nil
}

// UpdateSubscription перезаписывает изменяемые поля подписки.
func (s *Storage) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	const op = "storage.sqlite.UpdateSubscription"
	res := s.conn(ctx).Model(&subscriptionRow{}).Where("id = ?", sub.ID).Updates(map[string]any{
		"plan_id":              sub.PlanID,
		"status":               string(sub.Status),
		"current_period_start": utc(sub.CurrentPeriodStart),
		"current_period_end":   utc(sub.CurrentPeriodEnd),
		"trial_ends_at":        utcPtr(sub.TrialEndsAt),
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
		"external_id":          sub.ExternalID,
		"updated_at":           utc(sub.UpdatedAt),
	})
	if res.Error != nil {
		return wrapErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr(op, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetSubscription возвращает подписку с тарифом по ID.
func (s *Storage) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	const op = "storage.sqlite.GetSubscription"
	var row subscriptionRow
	if err := s.conn(ctx).Preload("Plan").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// GetOpenSubscription возвращает самую новую ACTIVE или TRIAL подписку пользователя.
func (s *Storage) GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.sqlite.GetOpenSubscription"
	var row subscriptionRow
	err := s.conn(ctx).Preload("Plan").
		Where("user_id = ? AND status IN ?", userID, openStatuses).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// ListSubscriptions возвращает историю подписок пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.sqlite.ListSubscriptions"
	var rows []subscriptionRow
	err := s.conn(ctx).Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(op, err)
	}
	subs := make([]*models.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, rows[i].toModel())
	}
	return subs, nil
}

// CancelOpenSubscriptions отменяет все открытые подписки пользователя и возвращает их число.
func (s *Storage) CancelOpenSubscriptions(ctx context.Context, userID string, at time.Time) (int, error) {
	const op = "storage.sqlite.CancelOpenSubscriptions"
	res := s.conn(ctx).Model(&subscriptionRow{}).
		Where("user_id = ? AND status IN ?", userID, openStatuses).
		Updates(map[string]any{
			"status":               string(models.StatusCanceled),
			"cancel_at_period_end": true,
			"updated_at":           utc(at),
		})
	if res.Error != nil {
		return 0, wrapErr(op, res.Error)
	}
	return int(res.RowsAffected), nil
}

// DeleteCanceledBefore удаляет отменённые подписки, изменённые раньше before.
func (s *Storage) DeleteCanceledBefore(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.sqlite.DeleteCanceledBefore"
	res := s.conn(ctx).
		Where("status = ? AND updated_at < ?", string(models.StatusCanceled), utc(before)).
		Delete(&subscriptionRow{})
	if res.Error != nil {
		return 0, wrapErr(op, res.Error)
	}
	return int(res.RowsAffected), nil
}
