// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CostingFinalized is emitted when a finalize-mode costing run persists.
type CostingFinalized struct {
	OrderID    string    `json:"order_id"`
	TotalCost  float64   `json:"total_cost"`
	FinalPrice float64   `json:"final_price"`
	IsEstimate bool      `json:"is_estimate"`
	Version    int       `json:"version"`
	ComputedAt time.Time `json:"computed_at"`
}

// TaskStatusChanged is emitted when a production task transitions.
type TaskStatusChanged struct {
	TaskID    string    `json:"task_id"`
	OrderID   string    `json:"order_id"`
	TaskType  string    `json:"task_type"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// Publisher emits domain events. Implementations must be safe for concurrent
// use; publish failures are the caller's to log, never to fail the operation.
type Publisher interface {
	PublishCostingFinalized(ctx context.Context, e CostingFinalized) error
	PublishTaskStatusChanged(ctx context.Context, e TaskStatusChanged) error
	Close() error
}

// NoopPublisher drops all events. Used when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishCostingFinalized(context.Context, CostingFinalized) error { return nil }
func (NoopPublisher) PublishTaskStatusChanged(context.Context, TaskStatusChanged) error {
	return nil
}
func (NoopPublisher) Close() error { return nil }

// AMQPPublisher publishes events to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewAMQPPublisher connects to RabbitMQ and declares the topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, exchange: exchange}, nil
}

// PublishCostingFinalized implements Publisher.
func (p *AMQPPublisher) PublishCostingFinalized(ctx context.Context, e CostingFinalized) error {
	return p.publish(ctx, "costing.finalized", e)
}

// PublishTaskStatusChanged implements Publisher.
func (p *AMQPPublisher) PublishTaskStatusChanged(ctx context.Context, e TaskStatusChanged) error {
	return p.publish(ctx, fmt.Sprintf("task.%s", e.To), e)
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Close closes the underlying connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
