// Package amqp provides the RabbitMQ intake transport.
package amqp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// maxDialBackoff caps the exponential backoff between dial attempts.
const maxDialBackoff = 60 * time.Second

// ConnectionOptions configures the retrying dialer.
type ConnectionOptions struct {
	URL           string
	RetryAttempts int
	Delay         time.Duration
	Logger        zerolog.Logger
}

// DialWithRetry connects to RabbitMQ with exponential backoff. It respects
// context cancellation for graceful shutdown.
func DialWithRetry(ctx context.Context, opts ConnectionOptions) (*amqp091.Connection, error) {
	var lastErr error

	for attempt := 1; attempt <= opts.RetryAttempts; attempt++ {
		conn, err := amqp091.Dial(opts.URL)
		if err == nil {
			if attempt > 1 {
				opts.Logger.Info().Int("attempt", attempt).Msg("rabbitmq connected")
			}
			return conn, nil
		}
		lastErr = err

		sleep := opts.Delay * time.Duration(math.Pow(2, float64(attempt-1)))
		if sleep > maxDialBackoff {
			sleep = maxDialBackoff
		}

		opts.Logger.Warn().
			Int("attempt", attempt).
			Dur("sleep", sleep).
			Err(err).
			Msg("rabbitmq dial failed")

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("dial cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("failed to connect to rabbitmq after %d attempts: %w",
		opts.RetryAttempts, lastErr)
}
