// Package intake defines the transport that delivers new session ids to the
// routing core.
//
// Delivery is at-least-once: the dispatcher re-validates session status
// before acting, so a duplicate id is a no-op.
package intake

import (
	"context"

	"github.com/google/uuid"
)

// Type represents the intake transport type.
type Type string

// Supported intake types.
const (
	TypeAMQP   Type = "amqp"
	TypeMemory Type = "memory"
)

// Publisher delivers newly created session ids to the intake queue.
type Publisher interface {
	// Publish enqueues a session id for dispatching.
	Publish(ctx context.Context, sessionID uuid.UUID) error

	// Close releases the publisher's resources.
	Close() error
}

// Source is the consuming side of the intake queue.
type Source interface {
	// TryPop pops one pending session id without blocking. It reports false
	// when nothing is pending.
	TryPop() (uuid.UUID, bool)

	// Close releases the source's resources.
	Close() error
}
