package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

const userColumns = `id, email, name, password_hash, role, trial_started_at, trial_ends_at,
	has_used_trial, requires_upgrade, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var trialStartedAt, trialEndsAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&trialStartedAt, &trialEndsAt, &u.HasUsedTrial, &u.RequiresUpgrade,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.TrialStartedAt = nullTime(trialStartedAt)
	u.TrialEndsAt = nullTime(trialEndsAt)
	return u, nil
}

// CreateUser сохраняет пользователя. Пустой ID заменяется на новый UUID.
func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	query := `INSERT INTO users (id, email, name, password_hash, role, trial_started_at,
			      trial_ends_at, has_used_trial, requires_upgrade, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.q(ctx).ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.TrialStartedAt, u.TrialEndsAt,
		u.HasUsedTrial, u.RequiresUpgrade, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUser", id, "")
}

// GetUserForUpdate читает пользователя с SELECT ... FOR UPDATE. Вне RunInTx
// блокировка снимается сразу после запроса.
func (s *Storage) GetUserForUpdate(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "storage.GetUserForUpdate", id, " FOR UPDATE")
}

func (s *Storage) getUser(ctx context.Context, op, id, lock string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1` + lock
	u, err := scanUser(s.q(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.q(ctx).QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// ListUsers возвращает страницу пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users
			  ORDER BY created_at, id
			  LIMIT $1 OFFSET $2`
	return s.queryUsers(ctx, op, query, limit, offset)
}

// UpdateUserTrial записывает поля триала, requires_upgrade и updated_at.
func (s *Storage) UpdateUserTrial(ctx context.Context, u *models.User) error {
	const op = "storage.UpdateUserTrial"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET trial_started_at = $1, trial_ends_at = $2, has_used_trial = $3,
			      requires_upgrade = $4, updated_at = $5
			  WHERE id = $6`
	res, err := s.q(ctx).ExecContext(ctx, query,
		u.TrialStartedAt, u.TrialEndsAt, u.HasUsedTrial, u.RequiresUpgrade, u.UpdatedAt, u.ID)
	return expectOne(op, res, err)
}

// SetUserRole меняет роль пользователя.
func (s *Storage) SetUserRole(ctx context.Context, id string, role models.Role, at time.Time) error {
	const op = "storage.SetUserRole"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`, role, at, id)
	return expectOne(op, res, err)
}

// SetRequiresUpgrade выставляет флаг requires_upgrade.
func (s *Storage) SetRequiresUpgrade(ctx context.Context, id string, value bool, at time.Time) error {
	const op = "storage.SetRequiresUpgrade"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE users SET requires_upgrade = $1, updated_at = $2 WHERE id = $3`, value, at, id)
	return expectOne(op, res, err)
}

// ListUsersWithExpiredTrial ищет пользователей с истёкшим триалом без ACTIVE подписки,
// ещё не помеченных requires_upgrade.
func (s *Storage) ListUsersWithExpiredTrial(ctx context.Context, now time.Time) ([]*models.User, error) {
	const op = "storage.ListUsersWithExpiredTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users u
			  WHERE u.trial_ends_at IS NOT NULL
			    AND u.trial_ends_at <= $1
			    AND u.requires_upgrade = FALSE
			    AND NOT EXISTS (
			        SELECT 1 FROM subscriptions s
			        WHERE s.user_id = u.id AND s.status = 'ACTIVE'
			    )
			  ORDER BY u.trial_ends_at, u.id`
	return s.queryUsers(ctx, op, query, now)
}

func (s *Storage) queryUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return users, nil
}

func expectOne(op string, res sql.Result, err error) error {
	if err != nil {
		return wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
