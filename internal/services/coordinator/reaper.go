package coordinator

import (
	"context"
	"fmt"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// reapTick retires sessions whose clients stopped polling. The poll
// heartbeat is the sole liveness signal; a session whose last poll is older
// than the inactivity threshold goes inactive and, if assigned, its agent
// slot is freed. No other compensating action is taken.
func (c *Coordinator) reapTick(ctx context.Context) error {
	sessions, err := c.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		if session.Status != models.StatusQueued && session.Status != models.StatusAssigned {
			continue
		}
		if err := c.reapSession(ctx, session.ID.String(), session); err != nil {
			// One session must not abort the scan of the rest.
			c.logger.Error().Err(err).Str("session_id", session.ID.String()).Msg("failed to reap session")
		}
	}
	return nil
}

func (c *Coordinator) reapSession(ctx context.Context, key string, stale *models.ChatSession) error {
	if c.now().Sub(stale.LastPollTime) <= c.inactivityThreshold {
		return nil
	}

	unlock := c.lockSession(stale.ID)
	defer unlock()

	// Re-fetch under the lock: the drainer may have assigned it, or a late
	// poll may have refreshed it, since the snapshot was taken.
	session, err := c.store.Get(ctx, stale.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil || session.Status.IsTerminal() {
		return nil
	}
	if c.now().Sub(session.LastPollTime) <= c.inactivityThreshold {
		return nil
	}

	session.Status = models.StatusInactive
	if err := c.store.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to persist inactive status: %w", err)
	}

	if session.AssignedAgentID != nil {
		agent, ok := c.roster.AgentByID(*session.AssignedAgentID)
		if !ok {
			c.logger.Warn().
				Str("session_id", key).
				Str("agent_id", session.AssignedAgentID.String()).
				Msg("assigned agent not found while clearing inactive session")
		} else {
			agent.Release(session.ID)
			c.metrics.SetAgentActiveChats(agent.Name, agent.ActiveCount())
		}
	}

	c.metrics.SessionReaped()
	c.logger.Info().Str("session_id", key).Msg("session marked inactive, client stopped polling")
	return nil
}
