package ordersvc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quickjuice/backend/internal/service/models/outbox"
)

// Queues the order lifecycle events are published to.
const (
	QueueOrderCreated       = "oms.order.created"
	QueueOrderStatusChanged = "oms.order.status_changed"
	QueueOrderCancelled     = "oms.order.cancelled"
)

const eventMaxRetries = 5

// newOrderMessage builds an outbox row for the default exchange, routed by
// queue name.
func newOrderMessage(queue string, payload any) (outbox.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return outbox.Message{}, fmt.Errorf("failed to encode order event: %w", err)
	}

	now := time.Now()

	return outbox.Message{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     body,
		ContentType: "application/json",
		MaxRetries:  eventMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
