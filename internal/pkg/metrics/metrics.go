// Package metrics provides Prometheus metrics for the routing core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records routing metrics, exposed via /metrics.
type Recorder struct {
	sessionsCreated      prometheus.Counter
	sessionsDispatched   prometheus.Counter
	dispatchUnmatched    prometheus.Counter
	sessionsAssigned     prometheus.Counter
	sessionsReaped       prometheus.Counter
	sessionsDisconnected prometheus.Counter
	agentActiveChats     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all metrics registered on reg. The
// server registers on prometheus.DefaultRegisterer; tests pass a fresh
// registry to avoid duplicate-collector panics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_sessions_created_total",
			Help: "Total number of chat sessions created by the intake surface",
		}),
		sessionsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_sessions_dispatched_total",
			Help: "Total number of session ids routed to an agent's personal queue",
		}),
		dispatchUnmatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_dispatch_unmatched_total",
			Help: "Total number of session ids dropped because no agent matched",
		}),
		sessionsAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_sessions_assigned_total",
			Help: "Total number of sessions promoted to an active assignment",
		}),
		sessionsReaped: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_sessions_reaped_total",
			Help: "Total number of sessions retired for missed poll heartbeats",
		}),
		sessionsDisconnected: factory.NewCounter(prometheus.CounterOpts{
			Name: "chat_sessions_disconnected_total",
			Help: "Total number of sessions disconnected at shift end",
		}),
		agentActiveChats: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chat_agent_active_chats",
			Help: "Current number of active chats per agent",
		}, []string{"agent"}),
	}
}

// SessionCreated increments the created counter.
func (r *Recorder) SessionCreated() { r.sessionsCreated.Inc() }

// SessionDispatched increments the dispatched counter.
func (r *Recorder) SessionDispatched() { r.sessionsDispatched.Inc() }

// DispatchUnmatched increments the unmatched-drop counter.
func (r *Recorder) DispatchUnmatched() { r.dispatchUnmatched.Inc() }

// SessionAssigned increments the assigned counter.
func (r *Recorder) SessionAssigned() { r.sessionsAssigned.Inc() }

// SessionReaped increments the reaped counter.
func (r *Recorder) SessionReaped() { r.sessionsReaped.Inc() }

// SessionDisconnected increments the disconnected counter.
func (r *Recorder) SessionDisconnected() { r.sessionsDisconnected.Inc() }

// SetAgentActiveChats records the current load of an agent.
func (r *Recorder) SetAgentActiveChats(agentName string, count int) {
	r.agentActiveChats.WithLabelValues(agentName).Set(float64(count))
}
