// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/plant-catalog/internal/queue"
)

// EventPublisher publishes plant lifecycle events to a durable queue.  Each
// call dials its own connection; write traffic on the catalog is low and
// this keeps the publisher free of reconnect state.
type EventPublisher struct {
	url    string
	queue  string
	logger *zap.Logger
}

// NewEventPublisher returns a publisher for the given broker URL and queue.
func NewEventPublisher(url, queue string, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{url: url, queue: queue, logger: logger}
}

// Publish sends ev as a persistent JSON message.  The function never panics;
// any error is logged and returned so the caller can choose to ignore it.
func (p *EventPublisher) Publish(ctx context.Context, ev q.PlantEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq publish failed", zap.Error(err), zap.String("event", ev.Type))
		return err
	}
	return nil
}
