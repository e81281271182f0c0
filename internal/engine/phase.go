package engine

import "fmt"

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCollecting
	PhaseMorning
	PhaseDay
	PhaseEvening
	PhaseNight
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCollecting:
		return "collecting"
	case PhaseMorning:
		return "morning"
	case PhaseDay:
		return "day"
	case PhaseEvening:
		return "evening"
	case PhaseNight:
		return "night"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}
