// Package chat provides session creation and the poll heartbeat. Both are
// thin collaborators of the routing core: creation publishes the new id to
// the intake transport, polling refreshes the liveness clock the reaper
// watches.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supporthub/chat-routing-service/internal/core/intake"
	"github.com/supporthub/chat-routing-service/internal/core/sessionstore"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
	"github.com/supporthub/chat-routing-service/internal/pkg/metrics"
	"github.com/supporthub/chat-routing-service/internal/services/matcher"
)

// Service handles chat session intake and polling.
type Service interface {
	// CreateSession creates a queued session and publishes its id, or
	// reports busy without creating anything when no agent is available.
	CreateSession(ctx context.Context) (*models.ChatSession, bool, error)

	// Poll refreshes a session's liveness clock and returns its current
	// state. Returns (nil, nil) when the session does not exist.
	Poll(ctx context.Context, sessionID uuid.UUID) (*models.ChatSession, error)
}

// Config holds the configuration for the chat service.
type Config struct {
	Store     sessionstore.Store
	Publisher intake.Publisher
	Matcher   *matcher.Matcher
	Metrics   *metrics.Recorder
	Logger    zerolog.Logger

	// Clock overrides the wall clock in tests.
	Clock func() time.Time
}

type service struct {
	store     sessionstore.Store
	publisher intake.Publisher
	matcher   *matcher.Matcher
	metrics   *metrics.Recorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a new chat service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Publisher == nil {
		return nil, fmt.Errorf("intake publisher is required")
	}
	if cfg.Matcher == nil {
		return nil, fmt.Errorf("matcher is required")
	}
	if cfg.Metrics == nil {
		return nil, fmt.Errorf("metrics recorder is required")
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &service{
		store:     cfg.Store,
		publisher: cfg.Publisher,
		matcher:   cfg.Matcher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       now,
	}, nil
}

// CreateSession creates a queued session unless every agent is busy. The
// availability probe here is advisory; the binding decision is made later by
// the dispatcher.
func (s *service) CreateSession(ctx context.Context) (*models.ChatSession, bool, error) {
	if _, found := s.matcher.TryGetAvailableAgent(); !found {
		return nil, true, nil
	}

	session := models.NewChatSession(s.now().UTC())
	if err := s.store.Add(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to persist session: %w", err)
	}

	if err := s.publisher.Publish(ctx, session.ID); err != nil {
		return nil, false, fmt.Errorf("failed to publish session id: %w", err)
	}

	s.metrics.SessionCreated()
	s.logger.Info().Str("session_id", session.ID.String()).Msg("chat session created")
	return session, false, nil
}

// Poll updates the session's last poll time, the sole liveness signal the
// reaper uses.
func (s *service) Poll(ctx context.Context, sessionID uuid.UUID) (*models.ChatSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	if session == nil {
		return nil, nil
	}

	session.LastPollTime = s.now().UTC()
	if err := s.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist poll time for session %s: %w", sessionID, err)
	}

	return session, nil
}
