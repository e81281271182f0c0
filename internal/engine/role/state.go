package role

import (
	"github.com/louisbranch/omerta/internal/errors"
)

// State is the per-player mutable role state. The role identity is fixed at
// assignment; only the action slots and role counters change over the match.
type State struct {
	ID ID

	// slots holds the phase-scoped action targets. A slot locks on first
	// write and is cleared at phase end.
	slots map[Action]string

	// last remembers the previous phase's targets for no-repeat rules.
	last map[Action]string

	// CursesLeft is the warlock's remaining curse budget.
	CursesLeft int
	// DeviceTimer counts nights until the demoman's device is armed.
	DeviceTimer int
	// PlaceToDestroy is the demoman's chosen place. Unlike slots it
	// survives phase ends until the device goes off.
	PlaceToDestroy string
	// WasAttacked marks a highlander that survived an attack this night.
	WasAttacked bool
}

// NewState builds the initial role state for an assignment.
func NewState(id ID) *State {
	caps := Capabilities(id)
	return &State{
		ID:          id,
		slots:       make(map[Action]string),
		last:        make(map[Action]string),
		CursesLeft:  caps.Curses,
		DeviceTimer: caps.DeviceNights,
	}
}

// Set records an action target. The first choice wins: a second write fails
// with SlotAlreadySet and the original stands. No-repeat roles may not pick
// the target they chose the previous phase.
func (s *State) Set(action Action, target string) error {
	if _, ok := s.slots[action]; ok {
		return errors.New(errors.CodeSlotAlreadySet, "action already chosen this phase")
	}
	if Capabilities(s.ID).NoRepeatNight && s.last[action] == target && target != "" {
		return errors.New(errors.CodeActionNotAllowed, "cannot choose the same target twice in a row")
	}
	s.slots[action] = target
	return nil
}

// Get returns the recorded target for an action slot.
func (s *State) Get(action Action) (string, bool) {
	target, ok := s.slots[action]
	return target, ok
}

// Clear unconditionally empties an action slot.
func (s *State) Clear(action Action) {
	delete(s.slots, action)
}

// ClearAll empties every slot, e.g. when the holder is blocked.
func (s *State) ClearAll() {
	s.slots = make(map[Action]string)
}

// ClearTarget empties only slots aimed at the given target. It reports
// whether anything was cleared.
func (s *State) ClearTarget(target string) bool {
	cleared := false
	for action, t := range s.slots {
		if t == target {
			delete(s.slots, action)
			cleared = true
		}
	}
	return cleared
}

// Targets returns a copy of the filled slots.
func (s *State) Targets() map[Action]string {
	out := make(map[Action]string, len(s.slots))
	for action, target := range s.slots {
		out[action] = target
	}
	return out
}

// EndPhase rolls the current slots into the no-repeat memory and resets them
// for the next phase. Slots left empty this phase keep their old memory, so a
// blocked doctor still cannot re-heal last night's patient.
func (s *State) EndPhase() {
	for action, target := range s.slots {
		s.last[action] = target
	}
	s.slots = make(map[Action]string)
	s.WasAttacked = false
}

// NightActionDone reports whether the role's required night slot is filled.
// Roles without a required night action are always done.
func (s *State) NightActionDone() bool {
	caps := Capabilities(s.ID)
	if !caps.NightActionRequired {
		return true
	}
	_, ok := s.slots[caps.NightAction]
	return ok
}
