// Package roster holds the static agent roster: shift-windowed teams plus
// the overflow pool. The roster is loaded once at startup from immutable
// configuration; agent entities live for the process lifetime.
package roster

import (
	"github.com/google/uuid"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// Roster is the fixed set of teams and the overflow pool.
type Roster struct {
	teams        []*models.Team
	overflow     *models.Team
	officeHours  models.ShiftWindow
	baseCapacity int
	agentsByID   map[uuid.UUID]*models.Agent
}

// Teams returns the regular teams in configured order.
func (r *Roster) Teams() []*models.Team {
	return r.teams
}

// Overflow returns the overflow pool.
func (r *Roster) Overflow() *models.Team {
	return r.overflow
}

// OfficeHours returns the window gating overflow eligibility. It is distinct
// from any team's shift window.
func (r *Roster) OfficeHours() models.ShiftWindow {
	return r.officeHours
}

// BaseCapacity returns the base concurrency used to derive agent caps.
func (r *Roster) BaseCapacity() int {
	return r.baseCapacity
}

// ActiveTeam returns the regular team whose shift window contains the hour.
// Validation guarantees exactly one team covers any hour.
func (r *Roster) ActiveTeam(hour int) *models.Team {
	for _, team := range r.teams {
		if team.Shift.Contains(hour) {
			return team
		}
	}
	return nil
}

// IsOfficeHours reports whether the hour falls inside office hours.
func (r *Roster) IsOfficeHours(hour int) bool {
	return r.officeHours.Contains(hour)
}

// RegularAgents returns all agents of the regular teams in roster order.
func (r *Roster) RegularAgents() []*models.Agent {
	var agents []*models.Agent
	for _, team := range r.teams {
		agents = append(agents, team.Agents...)
	}
	return agents
}

// AllAgents returns the regular agents followed by the overflow agents.
// Overflow is included unconditionally; office-hours gating applies only to
// matching, not to draining already-queued work.
func (r *Roster) AllAgents() []*models.Agent {
	agents := r.RegularAgents()
	return append(agents, r.overflow.Agents...)
}

// AgentByID looks up any agent, overflow included.
func (r *Roster) AgentByID(id uuid.UUID) (*models.Agent, bool) {
	agent, ok := r.agentsByID[id]
	return agent, ok
}

// TeamOf returns the regular team an agent belongs to, or nil for overflow
// agents.
func (r *Roster) TeamOf(agentID uuid.UUID) *models.Team {
	for _, team := range r.teams {
		for _, agent := range team.Agents {
			if agent.ID == agentID {
				return team
			}
		}
	}
	return nil
}
