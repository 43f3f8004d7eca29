package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supporthub/chat-routing-service/internal/api/dto"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
	"github.com/supporthub/chat-routing-service/internal/services/roster"
)

// RosterHandler exposes a read-only view of the agent roster.
type RosterHandler struct {
	roster *roster.Roster
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(r *roster.Roster) *RosterHandler {
	return &RosterHandler{
		roster: r,
	}
}

// GetRoster handles GET /roster.
// @Summary Get the agent roster
// @Description Returns the teams, the overflow pool and current per-agent load
// @Tags Roster
// @Produce json
// @Success 200 {object} dto.RosterResponse "Roster"
// @Router /roster [get]
func (h *RosterHandler) GetRoster(c *gin.Context) {
	officeHours := h.roster.OfficeHours()

	response := dto.RosterResponse{
		OfficeHours: dto.WindowResponse{Start: officeHours.Start, End: officeHours.End},
		Overflow:    teamResponse(h.roster.Overflow(), false),
	}
	for _, team := range h.roster.Teams() {
		response.Teams = append(response.Teams, teamResponse(team, true))
	}

	c.JSON(http.StatusOK, response)
}

func teamResponse(team *models.Team, withShift bool) dto.TeamResponse {
	response := dto.TeamResponse{
		Name:           team.Name,
		Capacity:       team.Capacity(),
		MaxQueueLength: team.MaxQueueLength(),
	}
	if withShift {
		response.Shift = &dto.WindowResponse{Start: team.Shift.Start, End: team.Shift.End}
	}
	for _, agent := range team.Agents {
		response.Agents = append(response.Agents, dto.AgentResponse{
			ID:             agent.ID.String(),
			Name:           agent.Name,
			Seniority:      agent.Seniority.String(),
			MaxConcurrency: agent.MaxConcurrency,
			ActiveChats:    agent.ActiveCount(),
			PendingChats:   agent.PendingLen(),
			OnShift:        agent.IsOnShift(),
		})
	}
	return response
}
