// Package redis provides the Redis session store implementation.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainerrors "github.com/supporthub/chat-routing-service/internal/domain/errors"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "chatsession:"

// scanBatchSize is the SCAN page size used by GetAll.
const scanBatchSize = 100

// Config holds Redis connection configuration.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Store implements sessionstore.Store backed by Redis. Sessions are stored
// as JSON values without a TTL; their lifecycle is managed explicitly by the
// coordinator.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis session store and verifies the connection.
func NewStore(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Add inserts a new session, failing when the id is already present.
func (s *Store) Add(ctx context.Context, session *models.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to add session %s: %w", session.ID, err)
	}
	if !ok {
		return domainerrors.ErrSessionExists
	}
	return nil
}

// Get fetches a session by id. Returns (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var session models.ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Update upserts a session by id.
func (s *Store) Update(ctx context.Context, session *models.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.ID, err)
	}
	return nil
}

// GetAll returns a snapshot of all sessions via SCAN.
func (s *Store) GetAll(ctx context.Context) ([]*models.ChatSession, error) {
	var sessions []*models.ChatSession
	var cursor uint64

	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan session keys: %w", err)
		}

		if len(keys) > 0 {
			values, err := s.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("failed to fetch sessions: %w", err)
			}
			for _, value := range values {
				raw, ok := value.(string)
				if !ok {
					// Key deleted between SCAN and MGET.
					continue
				}
				var session models.ChatSession
				if err := json.Unmarshal([]byte(raw), &session); err != nil {
					return nil, fmt.Errorf("failed to unmarshal session: %w", err)
				}
				sessions = append(sessions, &session)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return sessions, nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close(_ context.Context) error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}
