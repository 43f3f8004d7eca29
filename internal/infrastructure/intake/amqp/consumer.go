package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Consumer consumes session ids from the durable intake queue into a
// bounded in-memory buffer that the dispatcher drains one id per tick.
type Consumer struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger zerolog.Logger

	buffer chan uuid.UUID
	done   chan struct{}
	wg     sync.WaitGroup
}

// ConsumerConfig configures the AMQP consumer.
type ConsumerConfig struct {
	URL           string
	Queue         string
	BufferSize    int
	RetryAttempts int
	RetryDelay    time.Duration
	Logger        zerolog.Logger
}

// NewConsumer connects to RabbitMQ, declares the durable intake queue and
// starts consuming into the buffer.
func NewConsumer(ctx context.Context, cfg ConsumerConfig) (*Consumer, error) {
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

	q, err := declareIntakeQueue(ch, cfg.Queue)
	if err != nil {
		conn.Close()
		return nil, err
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to consume from queue %s: %w", q.Name, err)
	}

	c := &Consumer{
		conn:   conn,
		ch:     ch,
		logger: cfg.Logger,
		buffer: make(chan uuid.UUID, cfg.BufferSize),
		done:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.receive(deliveries)

	c.logger.Info().Str("queue", q.Name).Msg("intake consumer started")
	return c, nil
}

// receive moves deliveries into the buffer, acking only once buffered so a
// crash before that point re-delivers the id.
func (c *Consumer) receive(deliveries <-chan amqp091.Delivery) {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}

			sessionID, err := parseSessionID(delivery.Body)
			if err != nil {
				c.logger.Warn().Err(err).Msg("discarding malformed intake message")
				_ = delivery.Ack(false)
				continue
			}

			select {
			case c.buffer <- sessionID:
				_ = delivery.Ack(false)
			case <-c.done:
				_ = delivery.Nack(false, true)
				return
			}
		}
	}
}

// TryPop pops one buffered session id without blocking.
func (c *Consumer) TryPop() (uuid.UUID, bool) {
	select {
	case id := <-c.buffer:
		return id, true
	default:
		return uuid.Nil, false
	}
}

// Close stops the consumer and closes the AMQP connection.
func (c *Consumer) Close() error {
	close(c.done)
	c.wg.Wait()
	_ = c.ch.Close()
	return c.conn.Close()
}

// parseSessionID decodes the wire format: a JSON string carrying the uuid.
func parseSessionID(body []byte) (uuid.UUID, error) {
	var raw string
	if err := json.Unmarshal(body, &raw); err != nil {
		return uuid.Nil, fmt.Errorf("invalid intake payload: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", raw, err)
	}
	return id, nil
}
