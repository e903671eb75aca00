package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/estudai/estudai-api/internal/config"
)

// Handler processes one decoded task. A nil return acknowledges the
// message; a non-nil return also acknowledges, because task failures are
// recorded on the study row rather than redelivered.
type Handler func(ctx context.Context, task Task) error

// Consumer reads tasks from the durable queue and dispatches them to a
// handler, one at a time.
type Consumer struct {
	cfg    config.QueueConfig
	logger *slog.Logger
}

// NewConsumer creates a Consumer for the configured broker.
// If logger is nil, a default logger will be used.
func NewConsumer(cfg config.QueueConfig, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "queue_consumer")),
	}
}

// Run consumes tasks until ctx is cancelled or the broker connection
// drops. Callers are expected to invoke Run in a reconnect loop.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	conn, err := amqp.DialConfig(brokerAddr(c.cfg), amqp.Config{
		Dial: amqp.DefaultDial(time.Duration(c.cfg.DialTimeoutSeconds) * time.Second),
	})
	if err != nil {
		return &UnavailableError{Host: c.cfg.Host, Err: err}
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return &UnavailableError{Host: c.cfg.Host, Err: err}
	}
	defer ch.Close()

	if _, err := declareTaskQueue(ch, c.cfg.QueueName); err != nil {
		return &UnavailableError{Host: c.cfg.Host, Err: err}
	}

	// One unacked message at a time: a slow AI call must not starve
	// other workers of the backlog.
	if err := ch.Qos(1, 0, false); err != nil {
		return &UnavailableError{Host: c.cfg.Host, Err: err}
	}

	deliveries, err := ch.Consume(
		c.cfg.QueueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return &UnavailableError{Host: c.cfg.Host, Err: err}
	}

	c.logger.Info("consuming tasks", slog.String("queue", c.cfg.QueueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return &UnavailableError{Host: c.cfg.Host, Err: fmt.Errorf("delivery channel closed")}
			}
			c.dispatch(ctx, delivery, handler)
		}
	}
}

// dispatch decodes and handles one delivery. Malformed messages are
// rejected without requeue; redelivering them could never succeed.
func (c *Consumer) dispatch(ctx context.Context, delivery amqp.Delivery, handler Handler) {
	task, err := DecodeTask(delivery.Body)
	if err != nil {
		c.logger.Error("dropping undecodable task",
			slog.String("error", err.Error()))
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			c.logger.Error("failed to nack message", slog.String("error", nackErr.Error()))
		}
		return
	}

	if err := handler(ctx, task); err != nil {
		c.logger.Error("task handler failed",
			slog.Int64("estudo_id", task.EstudoID),
			slog.String("error", err.Error()))
	}

	if err := delivery.Ack(false); err != nil {
		c.logger.Error("failed to ack message",
			slog.Int64("estudo_id", task.EstudoID),
			slog.String("error", err.Error()))
	}
}
