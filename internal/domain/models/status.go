package models

// ChatStatus represents the lifecycle state of a chat session.
type ChatStatus string

// Chat session statuses.
const (
	// StatusQueued means the session is waiting to be assigned to an agent.
	StatusQueued ChatStatus = "queued"
	// StatusAssigned means the session has been assigned to a specific agent.
	StatusAssigned ChatStatus = "assigned"
	// StatusInactive means the client stopped polling and the session was retired.
	StatusInactive ChatStatus = "inactive"
	// StatusDisconnected means the session was force-closed when the agent's shift ended.
	StatusDisconnected ChatStatus = "disconnected"
)

// IsTerminal reports whether the status is a final state. Terminal sessions
// are never reused.
func (s ChatStatus) IsTerminal() bool {
	return s == StatusInactive || s == StatusDisconnected
}

// String returns the string representation of the status.
func (s ChatStatus) String() string {
	return string(s)
}
