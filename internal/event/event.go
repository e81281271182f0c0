// Package event defines the structured events the engine emits.
//
// The engine never formats user-facing text. Each event carries the data a
// dispatcher needs to render a templated, localized message: a kind, the
// match it belongs to, an audience, and a typed payload.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the event type.
type Kind string

const (
	KindMatchStarted     Kind = "match.started"
	KindMatchStopped     Kind = "match.stopped"
	KindCountdown        Kind = "collecting.countdown"
	KindPlayerJoined     Kind = "player.joined"
	KindPlayerLeft       Kind = "player.left"
	KindRolesAssigned    Kind = "roles.assigned"
	KindRoleNotice       Kind = "role.notice"
	KindPhaseStarted     Kind = "phase.started"
	KindStatusSnapshot   Kind = "status.snapshot"
	KindVoteRecorded     Kind = "vote.recorded"
	KindVoteCanceled     Kind = "vote.canceled"
	KindTurnSkipped      Kind = "turn.skipped"
	KindActionAccepted   Kind = "action.accepted"
	KindNightAction      Kind = "night.action"
	KindCheckResult      Kind = "check.result"
	KindBlockAnnounced   Kind = "block.announced"
	KindHealSaved        Kind = "heal.saved"
	KindKillAnnounced    Kind = "kill.announced"
	KindAttackRepelled   Kind = "attack.repelled"
	KindBlastAnnounced   Kind = "blast.announced"
	KindCurseBackfired   Kind = "curse.backfired"
	KindJustifyAnnounced Kind = "justify.announced"
	KindNoChoice         Kind = "resolution.no_choice"
	KindNoActivity       Kind = "resolution.no_activity"
	KindItemBought       Kind = "item.bought"
	KindWinDeclared      Kind = "win.declared"
)

// Audience scopes delivery of an event.
type Audience struct {
	// PlayerID restricts the event to a single participant when set.
	PlayerID string `json:"player_id,omitempty"`
	// Team restricts the event to a faction channel when set.
	Team string `json:"team,omitempty"`
}

// Public reports whether the event is for the shared game channel.
func (a Audience) Public() bool {
	return a.PlayerID == "" && a.Team == ""
}

// Event is a single engine output.
type Event struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Audience  Audience  `json:"audience"`
	Payload   any       `json:"payload,omitempty"`
}

// New builds an event envelope with a fresh id.
func New(matchID string, kind Kind, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// To returns a copy of the event scoped to a single participant.
func (e Event) To(playerID string) Event {
	e.Audience = Audience{PlayerID: playerID}
	return e
}

// ToTeam returns a copy of the event scoped to a faction channel.
func (e Event) ToTeam(team string) Event {
	e.Audience = Audience{Team: team}
	return e
}

// Sink receives events as the engine produces them.
//
// Emit is called from the match loop; implementations must not block for long
// and must not call back into the engine.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) { f(e) }
