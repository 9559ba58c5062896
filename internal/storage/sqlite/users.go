package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// CreateUser сохраняет пользователя. Пустой ID заменяется на новый UUID.
func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	const op = "storage.sqlite.CreateUser"
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	row := userRowFromModel(u)
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.sqlite.GetUser"
	var row userRow
	if err := s.conn(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// GetUserForUpdate то же, что GetUser. SQLite не поддерживает FOR UPDATE,
// транзакции и так идут через одно соединение.
func (s *Storage) GetUserForUpdate(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.sqlite.GetUserForUpdate"
	var row userRow
	err := s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.sqlite.GetUserByEmail"
	var row userRow
	if err := s.conn(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// ListUsers возвращает страницу пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.sqlite.ListUsers"
	var rows []userRow
	if err := s.conn(ctx).Order("created_at, id").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return usersToModels(rows), nil
}

// UpdateUserTrial записывает поля триала, requires_upgrade и updated_at.
func (s *Storage) UpdateUserTrial(ctx context.Context, u *models.User) error {
	const op = "storage.sqlite.UpdateUserTrial"
	return s.updateUser(ctx, op, u.ID, map[string]any{
		"trial_started_at": utcPtr(u.TrialStartedAt),
		"trial_ends_at":    utcPtr(u.TrialEndsAt),
		"has_used_trial":   u.HasUsedTrial,
		"requires_upgrade": u.RequiresUpgrade,
		"updated_at":       utc(u.UpdatedAt),
	})
}

// SetUserRole меняет роль пользователя.
func (s *Storage) SetUserRole(ctx context.Context, id string, role models.Role, at time.Time) error {
	const op = "storage.sqlite.SetUserRole"
	return s.updateUser(ctx, op, id, map[string]any{
		"role":       string(role),
		"updated_at": utc(at),
	})
}

// SetRequiresUpgrade выставляет флаг requires_upgrade.
func (s *Storage) SetRequiresUpgrade(ctx context.Context, id string, value bool, at time.Time) error {
	const op = "storage.sqlite.SetRequiresUpgrade"
	return s.updateUser(ctx, op, id, map[string]any{
		"requires_upgrade": value,
		"updated_at":       utc(at),
	})
}

// ListUsersWithExpiredTrial ищет пользователей с истёкшим триалом без ACTIVE подписки,
// ещё не помеченных requires_upgrade.
func (s *Storage) ListUsersWithExpiredTrial(ctx context.Context, now time.Time) ([]*models.User, error) {
	const op = "storage.sqlite.ListUsersWithExpiredTrial"
	var rows []userRow
	err := s.conn(ctx).
		Where("trial_ends_at IS NOT NULL AND trial_ends_at <= ?", utc(now)).
		Where("requires_upgrade = ?", false).
		Where("NOT EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = users.id AND s.status = ?)",
			string(models.StatusActive)).
		Order("trial_ends_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return usersToModels(rows), nil
}

func (s *Storage) updateUser(ctx context.Context, op, id string, updates map[string]any) error {
	res := s.conn(ctx).Model(&userRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return wrapErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr(op, gorm.ErrRecordNotFound)
	}
	return nil
}

func usersToModels(rows []userRow) []*models.User {
	users := make([]*models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toModel())
	}
	return users
}
