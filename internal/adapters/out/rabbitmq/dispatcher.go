// Package rabbitmq implements the notification dispatcher port on top of a
// RabbitMQ topic exchange. The core publishes one event per committed order
// transition; which customers and operators the event ultimately reaches is
// resolved by the consumers bound to the exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order events are published to.
const ExchangeName = "order_events"

// eventPayload is the wire shape of a published notification event.
type eventPayload struct {
	OrderID  string            `json:"order_id"`
	Kind     string            `json:"kind"`
	Audience string            `json:"audience"`
	Zip      string            `json:"zip"`
	Data     map[string]string `json:"data,omitempty"`
}

// Dispatcher publishes notification events to RabbitMQ. It implements
// ports.NotificationDispatcher.
type Dispatcher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewDispatcher connects to the broker at the given AMQP URL and declares
// the durable order events exchange.
func NewDispatcher(url string) (*Dispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Dispatcher{conn: conn, ch: ch}, nil
}

// Notify publishes the event as a persistent JSON message. The routing key
// is "orders.<kind>.<audience>", so consumers can bind narrowly (a customer
// notifier to "orders.*.customer", an operator feed to
// "orders.payment_confirmed.eligible_operators_in_zip").
func (d *Dispatcher) Notify(ctx context.Context, event ports.NotificationEvent) error {
	body, err := json.Marshal(payloadFromEvent(event))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return d.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey(event),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close releases the channel and connection.
func (d *Dispatcher) Close() {
	if d.ch != nil {
		_ = d.ch.Close()
	}
	if d.conn != nil {
		_ = d.conn.Close()
	}
}

func payloadFromEvent(event ports.NotificationEvent) eventPayload {
	return eventPayload{
		OrderID:  event.OrderID.String(),
		Kind:     string(event.Kind),
		Audience: string(event.Audience),
		Zip:      event.Zip.String(),
		Data:     event.Data,
	}
}

func routingKey(event ports.NotificationEvent) string {
	return fmt.Sprintf("orders.%s.%s", event.Kind, event.Audience)
}
