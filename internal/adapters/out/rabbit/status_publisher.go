// Package rabbit publishes pickup status changes to a RabbitMQ fanout
// exchange. Consumers (notification services, the mobile push gateway) bind
// their own queues; this side only declares the exchange and publishes.
package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// StatusChangedMessage is the wire format of one published transition.
type StatusChangedMessage struct {
	PickupID   string    `json:"pickup_id"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AmqpStatusPublisher implements ports.StatusPublisher on a fanout exchange.
type AmqpStatusPublisher struct {
	channel  *amqp091.Channel
	exchange string
}

// NewAmqpStatusPublisher declares the fanout exchange and returns a publisher
// bound to it.
func NewAmqpStatusPublisher(channel *amqp091.Channel, exchange string) (*AmqpStatusPublisher, error) {
	err := channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AmqpStatusPublisher{channel: channel, exchange: exchange}, nil
}

// PublishStatusChanged sends one JSON message to the exchange. The routing
// key is empty, fanout exchanges ignore it.
func (p *AmqpStatusPublisher) PublishStatusChanged(ctx context.Context, change ports.StatusChange) error {
	message := StatusChangedMessage{
		PickupID:   change.PickupID.String(),
		OrderID:    change.OrderID.String(),
		Status:     change.Status.String(),
		OccurredAt: change.OccurredAt,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   change.OccurredAt,
		},
	)
}
