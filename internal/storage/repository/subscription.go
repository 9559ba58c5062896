package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

const subscriptionWithPlanQuery = `SELECT s.id, s.user_id, s.plan_id, s.status,
	s.current_period_start, s.current_period_end, s.trial_ends_at, s.cancel_at_period_end,
	s.external_id, s.created_at, s.updated_at,
	p.id, p.name, p.display_name, p.description, p.price, p.currency, p.max_houses,
	p.max_rooms_per_house, p.max_items_per_room, p.is_active, p.allow_trial, p.sort_order,
	p.created_at, p.updated_at
	FROM subscriptions s
	JOIN subscription_plans p ON p.id = s.plan_id`

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	p := &models.Plan{}
	var trialEndsAt sql.NullTime
	var externalID sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &trialEndsAt, &sub.CancelAtPeriodEnd,
		&externalID, &sub.CreatedAt, &sub.UpdatedAt,
		&p.ID, &p.Name, &p.DisplayName, &p.Description, &p.Price, &p.Currency,
		&p.MaxHouses, &p.MaxRoomsPerHouse, &p.MaxItemsPerRoom, &p.IsActive, &p.AllowTrial,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	sub.TrialEndsAt = nullTime(trialEndsAt)
	if externalID.Valid {
		sub.ExternalID = &externalID.String
	}
	sub.Plan = p
	return sub, nil
}

// CreateSubscription вставляет подписку и заполняет её ID.
// Вторая открытая подписка пользователя отклоняется частичным уникальным индексом (ErrConflict).
func (s *Storage) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, plan_id, status, current_period_start,
			      current_period_end, trial_ends_at, cancel_at_period_end, external_id,
			      created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	err := s.q(ctx).QueryRowContext(ctx, query,
		sub.UserID, sub.PlanID, sub.Status, sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
		sub.TrialEndsAt, sub.CancelAtPeriodEnd, sub.ExternalID, sub.CreatedAt,
		sub.UpdatedAt).Scan(&sub.ID)
	if err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// UpdateSubscription перезаписывает изменяемые поля подписки.
func (s *Storage) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET plan_id = $1, status = $2, current_period_start = $3, current_period_end = $4,
			      trial_ends_at = $5, cancel_at_period_end = $6, external_id = $7, updated_at = $8
			  WHERE id = $9`
	res, err := s.q(ctx).ExecContext(ctx, query,
		sub.PlanID, sub.Status, sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.TrialEndsAt,
		sub.CancelAtPeriodEnd, sub.ExternalID, sub.UpdatedAt, sub.ID)
	return expectOne(op, res, err)
}

// GetSubscription возвращает подписку с тарифом по ID.
func (s *Storage) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sub, err := scanSubscription(s.q(ctx).QueryRowContext(ctx,
		subscriptionWithPlanQuery+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return sub, nil
}

// GetOpenSubscription возвращает самую новую ACTIVE или TRIAL подписку пользователя.
func (s *Storage) GetOpenSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.GetOpenSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := subscriptionWithPlanQuery + `
			  WHERE s.user_id = $1 AND s.status IN ('ACTIVE', 'TRIAL')
			  ORDER BY s.created_at DESC, s.id DESC
			  LIMIT 1`
	sub, err := scanSubscription(s.q(ctx).QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает историю подписок пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := subscriptionWithPlanQuery + `
			  WHERE s.user_id = $1
			  ORDER BY s.created_at DESC, s.id DESC`
	rows, err := s.q(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return subs, nil
}

// CancelOpenSubscriptions отменяет все открытые подписки пользователя и возвращает их число.
func (s *Storage) CancelOpenSubscriptions(ctx context.Context, userID string, at time.Time) (int, error) {
	const op = "storage.CancelOpenSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'CANCELED', cancel_at_period_end = TRUE, updated_at = $1
			  WHERE user_id = $2 AND status IN ('ACTIVE', 'TRIAL')`
	res, err := s.q(ctx).ExecContext(ctx, query, at, userID)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return int(n), nil
}

// DeleteCanceledBefore удаляет отменённые подписки, изменённые раньше before.
func (s *Storage) DeleteCanceledBefore(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.DeleteCanceledBefore"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM subscriptions WHERE status = 'CANCELED' AND updated_at < $1`, before)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return int(n), nil
}
