// Package sessionstore defines the keyed session store interface.
//
// The store is the only shared persistence in the routing core. All four
// coordinator loops plus the poll heartbeat read and write it concurrently,
// so implementations must be safe for concurrent use. No multi-key
// transactional guarantees are assumed; callers serialize their own
// multi-step updates.
package sessionstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// Type represents the session store backend type.
type Type string

// Supported store types.
const (
	TypeRedis   Type = "redis"
	TypeMongoDB Type = "mongodb"
)

// Store is an abstract keyed store of chat sessions.
type Store interface {
	// Add inserts a new session. It returns errors.ErrSessionExists when the
	// id is already present.
	Add(ctx context.Context, session *models.ChatSession) error

	// Get fetches a session by id. It returns (nil, nil) when the session is
	// absent.
	Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error)

	// Update upserts a session by id.
	Update(ctx context.Context, session *models.ChatSession) error

	// GetAll returns a snapshot of all sessions.
	GetAll(ctx context.Context) ([]*models.ChatSession, error)

	// Ping checks the store connection.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}
