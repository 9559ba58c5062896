package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const heartbeat = 10 * time.Second

// Connect подключается к RabbitMQ, повторяя попытку retries раз с паузой delay.
func Connect(url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"

	cfg := amqp.Config{
		Heartbeat:  heartbeat,
		Properties: amqp.Table{"connection_name": "entitlements"},
	}
	var lastErr error
	for attempt := 0; attempt < max(retries, 1); attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
		}
		conn, err := amqp.DialConfig(url, cfg)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", op, lastErr)
}

// SetupChannel открывает канал, объявляет durable topic exchange и привязывает к нему очереди.
// При любой ошибке канал закрывается.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := declare(ch, exchange, queues); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}

func declare(ch *amqp.Channel, exchange string, queues []QueueConfig) error {
	// durable, без autoDelete и internal
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange %s: %w", exchange, err)
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue %s: %w", q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s by %q: %w", q.QueueName, exchange, q.RoutingKey, err)
		}
	}
	return nil
}
