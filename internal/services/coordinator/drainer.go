package coordinator

import (
	"context"
	"fmt"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// drainTick promotes queued sessions into active assignments. Every agent
// is visited, overflow included: office-hours gating applies to matching,
// not to draining work queued earlier. Each agent takes at most one new
// assignment per tick, a deliberate fairness bound.
func (c *Coordinator) drainTick(ctx context.Context) error {
	for _, agent := range c.roster.AllAgents() {
		if err := c.drainAgent(ctx, agent); err != nil {
			// One agent must not stall the rest of the tick.
			c.logger.Error().Err(err).Str("agent", agent.Name).Msg("failed to drain agent queue")
		}
	}
	return nil
}

func (c *Coordinator) drainAgent(ctx context.Context, agent *models.Agent) error {
	if !agent.CanHandleMoreChats() {
		return nil
	}

	sessionID, ok := agent.TryDequeuePending()
	if !ok {
		return nil
	}

	unlock := c.lockSession(sessionID)
	defer unlock()

	session, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	if session == nil || session.Status != models.StatusQueued {
		// Retired by the reaper, or a duplicate delivery already assigned.
		c.logger.Debug().Str("session_id", sessionID.String()).Msg("skipping non-queued session")
		return nil
	}

	// TryAssign re-checks shift and capacity under the agent's lock; the
	// capacity observed before the pop may have changed.
	if !agent.TryAssign(sessionID) {
		c.logger.Warn().
			Str("session_id", sessionID.String()).
			Str("agent", agent.Name).
			Msg("agent no longer eligible, session dropped from personal queue")
		return nil
	}

	session.Assign(agent.ID, agent.Name, c.now())
	if err := c.store.Update(ctx, session); err != nil {
		agent.Release(sessionID)
		return fmt.Errorf("failed to persist assignment of session %s: %w", sessionID, err)
	}

	c.metrics.SessionAssigned()
	c.metrics.SetAgentActiveChats(agent.Name, agent.ActiveCount())
	c.logger.Info().
		Str("session_id", sessionID.String()).
		Str("agent", agent.Name).
		Int("active_chats", agent.ActiveCount()).
		Msg("session assigned")
	return nil
}
