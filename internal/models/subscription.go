package models

import "time"

// SubscriptionStatus состояние подписки.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "ACTIVE"
	StatusTrial    SubscriptionStatus = "TRIAL"
	StatusCanceled SubscriptionStatus = "CANCELED"
)

// IsOpen true для ACTIVE и TRIAL: у пользователя может быть только одна такая подписка.
func (s SubscriptionStatus) IsOpen() bool {
	return s == StatusActive || s == StatusTrial
}

// Subscription выдача тарифа пользователю на период.
type Subscription struct {
	ID                 int64              `json:"id"`
	UserID             string             `json:"user_id"`
	PlanID             int64              `json:"plan_id"`
	Plan               *Plan              `json:"plan,omitempty"`
	Status             SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at,omitempty"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	ExternalID         *string            `json:"external_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// EntitlementStatus сводка для страницы подписки.
// HasActiveSubscription true только для ACTIVE, не для TRIAL.
type EntitlementStatus struct {
	Subscription          *Subscription `json:"subscription,omitempty"`
	Plan                  *Plan         `json:"plan,omitempty"`
	HasActiveSubscription bool          `json:"has_active_subscription"`
	IsOnTrial             bool          `json:"is_on_trial"`
	TrialExpired          bool          `json:"trial_expired"`
	TrialDaysRemaining    int           `json:"trial_days_remaining"`
	TrialEndsAt           *time.Time    `json:"trial_ends_at,omitempty"`
	HasUsedTrial          bool          `json:"has_used_trial"`
	RequiresUpgrade       bool          `json:"requires_upgrade"`
}
