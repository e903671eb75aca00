package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/estudai/estudai-api/internal/config"
)

// Producer publishes processing tasks to the durable task queue. Each
// publish dials a fresh connection so a broker restart between uploads
// never leaves the producer holding a dead channel.
type Producer struct {
	cfg    config.QueueConfig
	logger *slog.Logger
}

// NewProducer creates a Producer for the configured broker.
// If logger is nil, a default logger will be used.
func NewProducer(cfg config.QueueConfig, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "queue_producer")),
	}
}

// Publish sends one task to the queue. It declares the durable queue,
// publishes a persistent message through the default exchange with the
// queue name as routing key, and closes the connection before returning.
// Broker failures are reported as ErrUnavailable so callers can
// compensate.
func (p *Producer) Publish(ctx context.Context, task Task) error {
	body, err := task.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	conn, err := amqp.DialConfig(brokerAddr(p.cfg), amqp.Config{
		Dial: amqp.DefaultDial(time.Duration(p.cfg.DialTimeoutSeconds) * time.Second),
	})
	if err != nil {
		return &UnavailableError{Host: p.cfg.Host, Err: err}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			p.logger.Warn("failed to close broker connection",
				slog.String("error", err.Error()))
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		return &UnavailableError{Host: p.cfg.Host, Err: err}
	}
	defer ch.Close()

	if _, err := declareTaskQueue(ch, p.cfg.QueueName); err != nil {
		return &UnavailableError{Host: p.cfg.Host, Err: err}
	}

	err = ch.PublishWithContext(ctx,
		"",              // default exchange
		p.cfg.QueueName, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return &UnavailableError{Host: p.cfg.Host, Err: err}
	}

	p.logger.Info("task published",
		slog.Int64("estudo_id", task.EstudoID),
		slog.String("queue", p.cfg.QueueName))
	return nil
}

// declareTaskQueue declares the durable task queue. Declaration is
// idempotent; producer and consumer both declare so either side can
// start first.
func declareTaskQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
}
