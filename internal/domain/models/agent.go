package models

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// DefaultPendingQueueSize is the buffer size of an agent's personal queue.
const DefaultPendingQueueSize = 32

// Agent is a support representative with a seniority-derived concurrency
// cap. Its mutable state (active chats, shift flag) is shared between the
// coordinator loops and is guarded by a per-agent mutex so that the capacity
// check and the assignment happen atomically.
type Agent struct {
	ID             uuid.UUID
	Name           string
	Seniority      Seniority
	MaxConcurrency int

	mu          sync.Mutex
	activeChats map[uuid.UUID]struct{}
	onShift     bool

	// pending is the agent's personal FIFO of session ids awaiting
	// promotion. Single producer (dispatcher), single consumer (drainer).
	pending chan uuid.UUID
}

// NewAgent creates an agent with MaxConcurrency derived from the base
// capacity and the seniority efficiency factor.
func NewAgent(name string, seniority Seniority, baseCapacity int) *Agent {
	return &Agent{
		ID:             uuid.New(),
		Name:           name,
		Seniority:      seniority,
		MaxConcurrency: int(math.Floor(float64(baseCapacity) * seniority.Efficiency())),
		activeChats:    make(map[uuid.UUID]struct{}),
		onShift:        true,
		pending:        make(chan uuid.UUID, DefaultPendingQueueSize),
	}
}

// CanHandleMoreChats reports whether the agent is on shift with spare
// capacity.
func (a *Agent) CanHandleMoreChats() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canHandleMoreChatsLocked()
}

func (a *Agent) canHandleMoreChatsLocked() bool {
	return a.onShift && len(a.activeChats) < a.MaxConcurrency
}

// TryAssign atomically re-checks shift and capacity and, on success, adds
// the session to the agent's active chats. The caller must not add sessions
// any other way, or the concurrency cap can be exceeded.
func (a *Agent) TryAssign(sessionID uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.canHandleMoreChatsLocked() {
		return false
	}
	a.activeChats[sessionID] = struct{}{}
	return true
}

// Release removes a session from the agent's active chats, freeing a
// capacity slot. It reports whether the session was present.
func (a *Agent) Release(sessionID uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.activeChats[sessionID]; !ok {
		return false
	}
	delete(a.activeChats, sessionID)
	return true
}

// DrainActive clears the agent's active chats and returns the removed ids.
func (a *Agent) DrainActive() []uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(a.activeChats))
	for id := range a.activeChats {
		ids = append(ids, id)
	}
	a.activeChats = make(map[uuid.UUID]struct{})
	return ids
}

// ActiveCount returns the number of active chats.
func (a *Agent) ActiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.activeChats)
}

// HasActiveChat reports whether the session is in the agent's active set.
func (a *Agent) HasActiveChat(sessionID uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.activeChats[sessionID]
	return ok
}

// IsOnShift reports whether the agent is currently on shift.
func (a *Agent) IsOnShift() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.onShift
}

// SetOnShift updates the shift flag and returns the previous value.
func (a *Agent) SetOnShift(onShift bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	was := a.onShift
	a.onShift = onShift
	return was
}

// EnqueuePending pushes a session id onto the personal queue without
// blocking. A full queue drops the id, which matches the dispatcher's
// no-retry contract.
func (a *Agent) EnqueuePending(sessionID uuid.UUID) bool {
	select {
	case a.pending <- sessionID:
		return true
	default:
		return false
	}
}

// TryDequeuePending pops one session id from the personal queue without
// blocking.
func (a *Agent) TryDequeuePending() (uuid.UUID, bool) {
	select {
	case id := <-a.pending:
		return id, true
	default:
		return uuid.Nil, false
	}
}

// PendingLen returns the number of session ids waiting in the personal
// queue.
func (a *Agent) PendingLen() int {
	return len(a.pending)
}
