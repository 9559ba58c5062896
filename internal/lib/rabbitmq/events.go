package rabbitmq

import "time"

// Ключи маршрутизации событий подписок.
const (
	EventTrialStarted         = "trial.started"
	EventTrialExtended        = "trial.extended"
	EventTrialExpired         = "trial.expired"
	EventPlanAssigned         = "plan.assigned"
	EventSubscriptionCanceled = "subscription.canceled"
	EventSubscriptionsPurged  = "subscriptions.purged"
)

// Event тело сообщения о смене прав пользователя.
type Event struct {
	Type           string     `json:"type"`
	UserID         string     `json:"user_id,omitempty"`
	SubscriptionID int64      `json:"subscription_id,omitempty"`
	PlanName       string     `json:"plan_name,omitempty"`
	TrialEndsAt    *time.Time `json:"trial_ends_at,omitempty"`
	Count          int        `json:"count,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
