package coordinator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// shiftTick recomputes each regular agent's shift state from the current
// hour and force-disconnects the chats of agents whose shift just ended.
// Overflow agents are never shift-gated.
func (c *Coordinator) shiftTick(ctx context.Context) error {
	hour := c.now().UTC().Hour()

	for _, team := range c.roster.Teams() {
		onShift := team.Shift.Contains(hour)
		for _, agent := range team.Agents {
			if err := c.superviseAgent(ctx, agent, onShift); err != nil {
				c.logger.Error().Err(err).Str("agent", agent.Name).Msg("failed to supervise agent shift")
			}
		}
	}
	return nil
}

func (c *Coordinator) superviseAgent(ctx context.Context, agent *models.Agent, onShift bool) error {
	wasOnShift := agent.SetOnShift(onShift)
	if onShift || !wasOnShift {
		return nil
	}
	if agent.ActiveCount() == 0 {
		return nil
	}

	c.logger.Info().Str("agent", agent.Name).Msg("shift ended, disconnecting active chats")

	for _, sessionID := range agent.DrainActive() {
		if err := c.disconnectSession(ctx, sessionID); err != nil {
			c.logger.Error().Err(err).
				Str("session_id", sessionID.String()).
				Str("agent", agent.Name).
				Msg("failed to disconnect chat")
		}
	}
	c.metrics.SetAgentActiveChats(agent.Name, 0)
	return nil
}

func (c *Coordinator) disconnectSession(ctx context.Context, sessionID uuid.UUID) error {
	unlock := c.lockSession(sessionID)
	defer unlock()

	session, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil {
		c.logger.Warn().Str("session_id", sessionID.String()).Msg("session not found during disconnection")
		return nil
	}
	if session.Status.IsTerminal() {
		return nil
	}

	session.Status = models.StatusDisconnected
	if err := c.store.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to persist disconnected status: %w", err)
	}

	c.metrics.SessionDisconnected()
	c.logger.Info().Str("session_id", sessionID.String()).Msg("chat disconnected")
	return nil
}
