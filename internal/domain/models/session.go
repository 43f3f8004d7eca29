// Package models contains domain models for the Chat Routing Service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession represents one chat request progressing from queued to a
// terminal state. Sessions are created by the intake surface, mutated by the
// coordinator loops and the poll heartbeat, and never reused once terminal.
type ChatSession struct {
	ID              uuid.UUID  `json:"id" bson:"_id"`
	RequestTime     time.Time  `json:"requestTime" bson:"requestTime"`
	AssignmentTime  *time.Time `json:"assignmentTime,omitempty" bson:"assignmentTime,omitempty"`
	AssignedAgentID *uuid.UUID `json:"assignedAgentId,omitempty" bson:"assignedAgentId,omitempty"`
	// AssignedAgentName is informational only, kept for client display.
	AssignedAgentName string     `json:"assignedAgentName,omitempty" bson:"assignedAgentName,omitempty"`
	LastPollTime      time.Time  `json:"lastPollTime" bson:"lastPollTime"`
	Status            ChatStatus `json:"status" bson:"status"`
}

// NewChatSession creates a queued session with the request and poll clocks
// initialized to now.
func NewChatSession(now time.Time) *ChatSession {
	return &ChatSession{
		ID:           uuid.New(),
		RequestTime:  now,
		LastPollTime: now,
		Status:       StatusQueued,
	}
}

// Assign records the assignment of the session to an agent. The last
// assignee is retained informationally after a terminal transition.
func (s *ChatSession) Assign(agentID uuid.UUID, agentName string, at time.Time) {
	s.AssignedAgentID = &agentID
	s.AssignedAgentName = agentName
	s.AssignmentTime = &at
	s.Status = StatusAssigned
}
