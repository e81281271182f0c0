package engine

import (
	"github.com/louisbranch/omerta/internal/engine/role"
)

// cancelActivity wipes everything the player set up this phase: action
// slots, the protections they granted, their faction kill vote and their
// night destination. It reports whether anything was undone.
func (m *Match) cancelActivity(p *Player) bool {
	removed := len(p.Role.Targets()) > 0
	p.Role.ClearAll()
	m.relations.ClearSource(p.ID)
	if ballot, _ := m.factionBallot(p); ballot != nil {
		if ballot.Remove(p.ID) {
			removed = true
		}
	}
	if p.PlaceToGo != "" {
		p.PlaceToGo = ""
		removed = true
	}
	return removed
}

// cancelActivityAgainst wipes only the player's activity aimed at target.
// It reports whether anything was undone.
func (m *Match) cancelActivityAgainst(p *Player, targetID string) bool {
	removed := p.Role.ClearTarget(targetID)
	m.relations.ClearSourceIfTarget(p.ID, targetID)
	if ballot, _ := m.factionBallot(p); ballot != nil {
		if choice, ok := ballot.ChoiceOf(p.ID); ok && choice == targetID {
			if ballot.Remove(p.ID) {
				removed = true
			}
		}
	}
	return removed
}

// hasActivityAgainst reports whether any of the player's current activity
// points at target: an action slot or a faction kill vote.
func (m *Match) hasActivityAgainst(p *Player, targetID string) bool {
	for action, t := range p.Role.Targets() {
		if action == role.ActionDestroy {
			continue
		}
		if t == targetID {
			return true
		}
	}
	if ballot, _ := m.factionBallot(p); ballot != nil {
		if choice, ok := ballot.ChoiceOf(p.ID); ok && choice == targetID {
			return true
		}
	}
	return false
}
