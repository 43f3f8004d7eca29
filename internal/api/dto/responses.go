// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Session statuses as reported to polling clients.
const (
	SessionStatusAvailable = "available"
	SessionStatusBusy      = "busy"
	SessionStatusPending   = "pending"
	SessionStatusAssigned  = "assigned"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// CreateSessionResponse represents the response for creating a session.
type CreateSessionResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// PollResponse represents the response for a session poll.
type PollResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Agent   string `json:"agent,omitempty"`
}

// WindowResponse represents a daily hour window.
type WindowResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AgentResponse represents an agent in the roster view.
type AgentResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Seniority      string `json:"seniority"`
	MaxConcurrency int    `json:"maxConcurrency"`
	ActiveChats    int    `json:"activeChats"`
	PendingChats   int    `json:"pendingChats"`
	OnShift        bool   `json:"onShift"`
}

// TeamResponse represents a team in the roster view.
type TeamResponse struct {
	Name           string          `json:"name"`
	Shift          *WindowResponse `json:"shift,omitempty"`
	Capacity       int             `json:"capacity"`
	MaxQueueLength int             `json:"maxQueueLength"`
	Agents         []AgentResponse `json:"agents"`
}

// RosterResponse represents the full roster view.
type RosterResponse struct {
	OfficeHours WindowResponse `json:"officeHours"`
	Teams       []TeamResponse `json:"teams"`
	Overflow    TeamResponse   `json:"overflow"`
}
