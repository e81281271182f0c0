package engine

import (
	"github.com/louisbranch/omerta/internal/engine/item"
	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/event"
	"github.com/louisbranch/omerta/internal/storage"
)

// Player is a participant bound to the match for its lifetime.
type Player struct {
	ID      string
	Name    string
	Ordinal int // 1-based roster position, the targeting handle
	Alive   bool

	// Role is the mutable role state; the identity inside never changes
	// after assignment.
	Role *role.State
	// OriginalRole keeps the assigned role for end-game scoring, since
	// effects can change a player's state but never their attribution.
	OriginalRole role.ID

	// Score is the in-match point total.
	Score int64
	// Skipped marks a pass for the current phase.
	Skipped bool
	// PlaceToGo is tonight's destination for non-mafia players.
	PlaceToGo string
	// DelayedDeath counts nights until an infection kills; nil when healthy.
	DelayedDeath *int

	Items []*item.Instance

	// Record is the persistent career line, loaded at registration.
	Record storage.PlayerRecord
}

// AddPoints awards a configured point entry to the player.
func (p *Player) AddPoints(award int64) {
	p.Score += award
}

// Item returns the player's owned instance of an item kind, if any.
func (p *Player) Item(id item.ID) *item.Instance {
	for _, inst := range p.Items {
		if inst.Spec.ID == id {
			return inst
		}
	}
	return nil
}

// Ref builds the event payload reference for the player.
func (p *Player) Ref() event.PlayerRef {
	return event.PlayerRef{
		ID:      p.ID,
		Name:    p.Name,
		Ordinal: p.Ordinal,
		Alive:   p.Alive,
	}
}
