package coordinator

import (
	"context"
	"fmt"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// dispatchTick pops at most one pending session id from the intake source
// and routes it to a matched agent's personal queue. The session stays
// queued; promotion happens in the drainer.
//
// An id that fails to match is dropped: there is no re-queue, so such a
// session is never retried by this core. That starvation gap is inherited
// behavior, kept deliberately rather than patched.
func (c *Coordinator) dispatchTick(ctx context.Context) error {
	sessionID, ok := c.source.TryPop()
	if !ok {
		return nil
	}

	session, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	if session == nil || session.Status != models.StatusQueued {
		// Duplicate or stale delivery; at-least-once transport makes this a
		// no-op.
		c.logger.Debug().Str("session_id", sessionID.String()).Msg("discarding non-queued intake id")
		return nil
	}

	agent, found := c.matcher.TryGetAvailableAgent()
	if !found {
		c.metrics.DispatchUnmatched()
		c.logger.Warn().Str("session_id", sessionID.String()).Msg("no agent available, session dropped")
		return nil
	}

	if !agent.EnqueuePending(sessionID) {
		c.metrics.DispatchUnmatched()
		c.logger.Warn().
			Str("session_id", sessionID.String()).
			Str("agent", agent.Name).
			Msg("agent personal queue full, session dropped")
		return nil
	}

	c.metrics.SessionDispatched()
	c.logger.Info().
		Str("session_id", sessionID.String()).
		Str("agent", agent.Name).
		Msg("session queued to agent")
	return nil
}
