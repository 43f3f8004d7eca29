package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher publishes session ids to the durable intake queue.
type Publisher struct {
	conn   *amqp091.Connection
	queue  string
	logger zerolog.Logger
}

// PublisherConfig configures the AMQP publisher.
type PublisherConfig struct {
	URL           string
	Queue         string
	RetryAttempts int
	RetryDelay    time.Duration
	Logger        zerolog.Logger
}

// NewPublisher connects to RabbitMQ and declares the durable intake queue.
func NewPublisher(ctx context.Context, cfg PublisherConfig) (*Publisher, error) {
	conn, err := DialWithRetry(ctx, ConnectionOptions{
		URL:           cfg.URL,
		RetryAttempts: cfg.RetryAttempts,
		Delay:         cfg.RetryDelay,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if _, err := declareIntakeQueue(ch, cfg.Queue); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		queue:  cfg.Queue,
		logger: cfg.Logger,
	}, nil
}

// Publish sends a session id to the intake queue. The body is the id as a
// JSON string, the wire format the consumer expects.
func (p *Publisher) Publish(ctx context.Context, sessionID uuid.UUID) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(sessionID.String())
	if err != nil {
		return fmt.Errorf("failed to marshal session id: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish session %s: %w", sessionID, err)
	}

	p.logger.Debug().
		Str("session_id", sessionID.String()).
		Str("queue", p.queue).
		Msg("session id published")
	return nil
}

// Close closes the AMQP connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}

// declareIntakeQueue declares the durable intake queue shared by publisher
// and consumer.
func declareIntakeQueue(ch *amqp091.Channel, name string) (amqp091.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return amqp091.Queue{}, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return q, nil
}
