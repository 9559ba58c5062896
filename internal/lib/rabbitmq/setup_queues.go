package rabbitmq

// QueueConfig очередь и ключ, по которому она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEntitlementQueues возвращает очереди для событий подписок.
// Приложение каталога слушает entitlements.changes, рассылка писем - entitlements.trial.
func GetEntitlementQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "entitlements.changes", RoutingKey: "#"},
		{QueueName: "entitlements.trial", RoutingKey: "trial.*"},
	}
}
