// Package kill defers death application to a single point at phase end.
//
// Resolution order decides what counts as blocked or healed; this manager
// decides when death becomes observable. Kills queued mid-phase are applied
// atomically by Apply, so a later-evaluated protection cannot retroactively
// save an already-dead player and multiple killers hitting the same victim
// cannot double-apply the death.
package kill

// Manager collects kill intents during a phase.
type Manager struct {
	queued map[string]struct{}
	order  []string
}

// NewManager creates an empty kill queue.
func NewManager() *Manager {
	return &Manager{queued: make(map[string]struct{})}
}

// Kill queues an intended death. Queuing the same victim twice is a no-op.
func (m *Manager) Kill(playerID string) {
	if _, ok := m.queued[playerID]; ok {
		return
	}
	m.queued[playerID] = struct{}{}
	m.order = append(m.order, playerID)
}

// Queued reports whether the player is already marked for death this phase.
func (m *Manager) Queued(playerID string) bool {
	_, ok := m.queued[playerID]
	return ok
}

// Apply commits all queued deaths in queue order, invoking die exactly once
// per victim, then clears the queue. It returns the number of deaths applied.
func (m *Manager) Apply(die func(playerID string)) int {
	applied := 0
	for _, id := range m.order {
		die(id)
		applied++
	}
	m.queued = make(map[string]struct{})
	m.order = nil
	return applied
}
