package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishMessage_MarshalError(t *testing.T) {
	// канал не сериализуется в json, до обращения к RabbitMQ дело не доходит
	badMsg := struct {
		Ch chan int `json:"ch"`
	}{
		Ch: make(chan int),
	}

	err := PublishMessage(nil, "", "queue", badMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: EventTrialStarted}))
}

func TestAMQPPublisher_TopicRouting(t *testing.T) {
	amqpURI := amqpURIForTest(t)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	exchange := "entitlements-routing"
	ch, err := SetupChannel(conn, exchange, GetEntitlementQueues())
	require.NoError(t, err)
	// очереди durable и могут остаться от прошлого запуска
	_, err = ch.QueuePurge("entitlements.trial", false)
	require.NoError(t, err)
	_, err = ch.QueuePurge("entitlements.changes", false)
	require.NoError(t, err)

	publisher := NewPublisher(ch, exchange)
	defer publisher.Close()

	consumeCh, err := conn.Channel()
	require.NoError(t, err)
	defer consumeCh.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 0, 10)
	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, Event{Type: EventPlanAssigned, UserID: "u-1", PlanName: "pro", OccurredAt: now}))
	require.NoError(t, publisher.Publish(ctx, Event{Type: EventTrialStarted, UserID: "u-1", TrialEndsAt: &ends, OccurredAt: now}))

	trialDeliveries, err := consumeCh.Consume("entitlements.trial", "trial-consumer", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-trialDeliveries:
		var got Event
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, EventTrialStarted, got.Type)
		assert.Equal(t, "u-1", got.UserID)
		require.NotNil(t, got.TrialEndsAt)
		assert.True(t, got.TrialEndsAt.Equal(ends))
		assert.Equal(t, "application/json", d.ContentType)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for trial event")
	}

	assert.Eventually(t, func() bool {
		changes, err := consumeCh.QueueInspect("entitlements.changes")
		return err == nil && changes.Messages == 2
	}, 5*time.Second, 100*time.Millisecond)
}

func TestAMQPPublisher_CanceledContext(t *testing.T) {
	publisher := NewPublisher(nil, "entitlements")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, Event{Type: EventTrialExpired})
	assert.ErrorIs(t, err, context.Canceled)
}
