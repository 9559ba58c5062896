// Package models содержит доменные типы сервиса подписок.
package models

import (
	"math"
	"time"
)

// Role роль пользователя.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User пользователь. Поля триала меняет только сервис trial.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	PasswordHash    string     `json:"-"`
	Role            Role       `json:"role"`
	TrialStartedAt  *time.Time `json:"trial_started_at,omitempty"`
	TrialEndsAt     *time.Time `json:"trial_ends_at,omitempty"`
	HasUsedTrial    bool       `json:"has_used_trial"`
	RequiresUpgrade bool       `json:"requires_upgrade"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsOnTrial true, если окно триала открыто на момент now.
func (u *User) IsOnTrial(now time.Time) bool {
	if u.TrialStartedAt == nil || u.TrialEndsAt == nil {
		return false
	}
	return now.Before(*u.TrialEndsAt)
}

// TrialExpired true, если триал начинался и уже закончился.
func (u *User) TrialExpired(now time.Time) bool {
	if u.TrialStartedAt == nil || u.TrialEndsAt == nil {
		return false
	}
	return !now.Before(*u.TrialEndsAt)
}

// TrialDaysRemaining количество оставшихся дней триала с округлением вверх, 0 вне триала.
func (u *User) TrialDaysRemaining(now time.Time) int {
	if !u.IsOnTrial(now) {
		return 0
	}
	return int(math.Ceil(u.TrialEndsAt.Sub(now).Hours() / 24))
}

// Principal аутентифицированный пользователь из проверенного токена.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
