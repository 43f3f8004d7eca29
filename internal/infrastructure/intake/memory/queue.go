// Package memory provides an in-process intake queue. It backs the memory
// intake profile and tests; production deployments use the amqp transport.
package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DefaultBufferSize is the default intake buffer capacity.
const DefaultBufferSize = 256

// Queue is a bounded in-memory intake queue implementing both
// intake.Publisher and intake.Source.
type Queue struct {
	ids chan uuid.UUID
}

// NewQueue creates an in-memory intake queue with the given buffer size.
func NewQueue(bufferSize int) *Queue {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Queue{
		ids: make(chan uuid.UUID, bufferSize),
	}
}

// Publish enqueues a session id without blocking. A full queue is an error
// so the caller can surface the loss.
func (q *Queue) Publish(_ context.Context, sessionID uuid.UUID) error {
	select {
	case q.ids <- sessionID:
		return nil
	default:
		return fmt.Errorf("intake queue full, dropping session %s", sessionID)
	}
}

// TryPop pops one pending session id without blocking.
func (q *Queue) TryPop() (uuid.UUID, bool) {
	select {
	case id := <-q.ids:
		return id, true
	default:
		return uuid.Nil, false
	}
}

// Pending returns the number of ids waiting in the queue.
func (q *Queue) Pending() int {
	return len(q.ids)
}

// Close is a no-op for the in-memory queue.
func (q *Queue) Close() error {
	return nil
}
