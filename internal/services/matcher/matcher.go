// Package matcher implements the agent-selection policy.
package matcher

import (
	"time"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
	"github.com/supporthub/chat-routing-service/internal/services/roster"
)

// Matcher selects one eligible agent for a new session. It is a read-only
// decision function: callers mutate state.
type Matcher struct {
	roster *roster.Roster
	now    func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithClock overrides the wall clock, used by tests to pin the hour.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		m.now = now
	}
}

// New creates a Matcher over the roster.
func New(r *roster.Roster, opts ...Option) *Matcher {
	m := &Matcher{
		roster: r,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TryGetAvailableAgent returns an eligible agent for a new chat, or false
// when none is available.
//
// The pool is the active team's agents with spare on-shift capacity. Only
// when that pool is empty AND the current time is inside office hours is it
// extended with available overflow agents; outside office hours an idle
// overflow agent is never offered. The least senior eligible agent wins,
// roster order breaking ties.
func (m *Matcher) TryGetAvailableAgent() (*models.Agent, bool) {
	hour := m.now().UTC().Hour()

	activeTeam := m.roster.ActiveTeam(hour)
	if activeTeam == nil {
		return nil, false
	}

	pool := activeTeam.AvailableAgents()
	if len(pool) == 0 && m.roster.IsOfficeHours(hour) {
		pool = append(pool, m.roster.Overflow().AvailableAgents()...)
	}
	if len(pool) == 0 {
		return nil, false
	}

	best := pool[0]
	for _, agent := range pool[1:] {
		if agent.Seniority < best.Seniority {
			best = agent
		}
	}
	return best, true
}
