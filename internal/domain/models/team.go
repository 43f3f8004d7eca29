package models

// ShiftWindow is a daily hour range on a 24h clock. End may be smaller than
// Start for windows that wrap midnight. The range is half-open: Start is
// included, End is not.
type ShiftWindow struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Contains reports whether the hour falls inside the window.
func (w ShiftWindow) Contains(hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	// Wraps midnight, e.g. 22-6.
	return hour >= w.Start || hour < w.End
}

// Hours returns the window length in hours.
func (w ShiftWindow) Hours() int {
	if w.Start <= w.End {
		return w.End - w.Start
	}
	return 24 - w.Start + w.End
}

// Team is a group of agents active during a fixed daily shift window. The
// overflow pool is a Team with a zero-valued Shift; it is never shift-gated
// and is only offered by the matcher during office hours.
type Team struct {
	Name   string
	Shift  ShiftWindow
	Agents []*Agent
}

// Capacity is the sum of the agents' concurrency caps.
func (t *Team) Capacity() int {
	total := 0
	for _, agent := range t.Agents {
		total += agent.MaxConcurrency
	}
	return total
}

// MaxQueueLength is the informational backlog bound derived from capacity.
func (t *Team) MaxQueueLength() int {
	return int(float64(t.Capacity()) * 1.5)
}

// AvailableAgents returns the agents that can take another chat, in roster
// order.
func (t *Team) AvailableAgents() []*Agent {
	var available []*Agent
	for _, agent := range t.Agents {
		if agent.CanHandleMoreChats() {
			available = append(available, agent)
		}
	}
	return available
}
