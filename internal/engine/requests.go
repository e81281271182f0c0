package engine

import (
	"context"
	"strconv"

	"github.com/louisbranch/omerta/internal/engine/item"
	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/engine/vote"
	"github.com/louisbranch/omerta/internal/errors"
	"github.com/louisbranch/omerta/internal/event"
)

// Status is the public snapshot of the match.
type Status struct {
	MatchID         string            `json:"match_id"`
	Phase           string            `json:"phase"`
	DeadlineSeconds int               `json:"deadline_seconds"`
	Players         []event.PlayerRef `json:"players"`
}

// RequestStart opens player collecting. The match must be idle.
func (m *Match) RequestStart(ctx context.Context) error {
	return m.do(func() error {
		if m.phase != PhaseIdle {
			return errors.New(errors.CodeMatchAlreadyRunning, "a match is already in progress")
		}
		m.startCollecting()
		return nil
	})
}

// RequestStop aborts the match in any phase and returns it to idle.
func (m *Match) RequestStop(ctx context.Context) error {
	return m.do(func() error {
		if m.phase == PhaseIdle {
			return errors.New(errors.CodeMatchNotRunning, "no match in progress")
		}
		m.emit(m.newEvent(event.KindMatchStopped, nil))
		m.reset()
		return nil
	})
}

// AdvanceCollecting ends player collecting early. It fails below the
// minimum player threshold.
func (m *Match) AdvanceCollecting(ctx context.Context) error {
	return m.do(func() error {
		if m.phase != PhaseCollecting {
			return errors.New(errors.CodeInvalidPhaseForAction, "match is not collecting players")
		}
		if len(m.players) < m.settings.MinPlayers {
			return errors.WithMetadata(errors.CodeInsufficientPlayers, "not enough players to start",
				map[string]string{"min": strconv.Itoa(m.settings.MinPlayers), "have": strconv.Itoa(len(m.players))})
		}
		m.finishCollecting()
		return nil
	})
}

// Join registers a participant during collecting.
func (m *Match) Join(ctx context.Context, id, name string) error {
	return m.do(func() error {
		if m.phase != PhaseCollecting {
			return errors.New(errors.CodeInvalidPhaseForAction, "match is not collecting players")
		}
		if _, ok := m.byID[id]; ok {
			return errors.New(errors.CodeAlreadyJoined, "player already joined")
		}
		p := &Player{
			ID:    id,
			Name:  name,
			Alive: true,
		}
		p.Record = m.loadRecord(ctx, id, name)
		p.Ordinal = len(m.players) + 1
		m.players = append(m.players, p)
		m.byID[id] = p
		m.emit(m.newEvent(event.KindPlayerJoined, event.RosterPayload{
			Player: p.Ref(),
			Count:  len(m.players),
		}))
		return nil
	})
}

// Leave withdraws a participant during collecting. Once roles are dealt the
// roster is immutable.
func (m *Match) Leave(ctx context.Context, id string) error {
	return m.do(func() error {
		if m.phase != PhaseCollecting {
			return errors.New(errors.CodeInvalidPhaseForAction, "match is not collecting players")
		}
		p, ok := m.byID[id]
		if !ok {
			return errors.New(errors.CodeNotJoined, "player has not joined")
		}
		delete(m.byID, id)
		for i, q := range m.players {
			if q.ID == id {
				m.players = append(m.players[:i], m.players[i+1:]...)
				break
			}
		}
		for i, q := range m.players {
			q.Ordinal = i + 1
		}
		m.emit(m.newEvent(event.KindPlayerLeft, event.RosterPayload{
			Player: p.Ref(),
			Count:  len(m.players),
		}))
		return nil
	})
}

// SubmitVote records a targeted vote: the communal execution vote during the
// day, or a faction kill vote at night for faction-ballot roles.
func (m *Match) SubmitVote(ctx context.Context, voterID string, targetOrdinal int) error {
	return m.do(func() error {
		voter, err := m.livingPlayer(voterID)
		if err != nil {
			return err
		}
		target := m.playerByOrdinal(targetOrdinal)
		if target == nil {
			return errors.New(errors.CodeUnknownTarget, "no living player with that number")
		}
		if target.ID == voter.ID {
			return errors.New(errors.CodeSelfTargetingForbidden, "cannot vote against yourself")
		}

		switch m.phase {
		case PhaseDay:
			if err := m.dayVote.Add(voter.ID, target.ID); err != nil {
				return err
			}
			m.emit(m.newEvent(event.KindVoteRecorded, event.VotePayload{
				Voter:  voter.Ref(),
				Target: target.Ref(),
				Count:  m.dayVote.CountFor(target.ID),
			}))
		case PhaseNight:
			ballot, team := m.factionBallot(voter)
			if ballot == nil {
				return errors.New(errors.CodeActionNotAllowed, "role has no vote at night")
			}
			if err := ballot.Add(voter.ID, target.ID); err != nil {
				return err
			}
			m.emit(m.newEvent(event.KindVoteRecorded, event.VotePayload{
				Voter:  voter.Ref(),
				Target: target.Ref(),
				Count:  ballot.CountFor(target.ID),
			}).ToTeam(team.String()))
		default:
			return errors.New(errors.CodeInvalidPhaseForAction, "no vote is open in this phase")
		}

		m.maybeAdvance()
		return nil
	})
}

// SubmitVerdict records an evening yes/no vote on the day leader. The
// accused does not get a say in their own case.
func (m *Match) SubmitVerdict(ctx context.Context, voterID string, verdict bool) error {
	return m.do(func() error {
		if m.phase != PhaseEvening {
			return errors.New(errors.CodeInvalidPhaseForAction, "no verdict is open in this phase")
		}
		voter, err := m.livingPlayer(voterID)
		if err != nil {
			return err
		}
		if result := m.dayVote.GetResult(); result.HasOneLeader && result.Leader() == voter.ID {
			return errors.New(errors.CodeSelfTargetingForbidden, "cannot vote on your own case")
		}
		if err := m.eveningVote.Add(voter.ID, verdict); err != nil {
			return err
		}
		v := verdict
		m.emit(m.newEvent(event.KindVoteRecorded, event.VotePayload{
			Voter:   voter.Ref(),
			Verdict: &v,
		}))
		m.maybeAdvance()
		return nil
	})
}

// SubmitRoleAction records a role's action slot for the current phase. The
// target ordinal addresses a living player, or a place for place-scoped
// actions (destroy, go).
func (m *Match) SubmitRoleAction(ctx context.Context, playerID string, action role.Action, targetOrdinal int) error {
	return m.do(func() error {
		p, err := m.livingPlayer(playerID)
		if err != nil {
			return err
		}
		caps := role.Capabilities(p.Role.ID)

		switch action {
		case role.ActionGo:
			return m.submitGo(p, targetOrdinal)
		case role.ActionDestroy:
			return m.submitDestroy(p, caps, targetOrdinal)
		}

		switch m.phase {
		case PhaseNight:
			if caps.NightAction != action {
				return errors.New(errors.CodeActionNotAllowed, "role cannot take that action at night")
			}
		case PhaseDay:
			if caps.DayAction != action {
				return errors.New(errors.CodeActionNotAllowed, "role cannot take that action during the day")
			}
		default:
			return errors.New(errors.CodeInvalidPhaseForAction, "no role actions in this phase")
		}

		target := m.playerByOrdinal(targetOrdinal)
		if target == nil {
			return errors.New(errors.CodeUnknownTarget, "no living player with that number")
		}
		if target.ID == p.ID && action != role.ActionHeal {
			return errors.New(errors.CodeSelfTargetingForbidden, "cannot target yourself")
		}
		if action == role.ActionCurse && p.Role.CursesLeft <= 0 {
			return errors.New(errors.CodeActionNotAllowed, "no curses left")
		}

		if err := p.Role.Set(action, target.ID); err != nil {
			return err
		}

		// Protections register the moment they are chosen. Resolution can
		// still cancel them by clearing the actor's activity.
		switch action {
		case role.ActionHeal:
			m.relations.SetHealed(target.ID, p.ID)
		case role.ActionJustify:
			m.relations.SetJustified(target.ID, p.ID)
		}

		m.emit(m.newEvent(event.KindActionAccepted, event.ActionPayload{
			Actor:  p.Ref(),
			Action: string(action),
		}).To(p.ID))
		m.maybeAdvance()
		return nil
	})
}

// SubmitSkip passes the player's turn for the current phase.
func (m *Match) SubmitSkip(ctx context.Context, playerID string) error {
	return m.do(func() error {
		switch m.phase {
		case PhaseDay, PhaseEvening, PhaseNight:
		default:
			return errors.New(errors.CodeInvalidPhaseForAction, "nothing to skip in this phase")
		}
		p, err := m.livingPlayer(playerID)
		if err != nil {
			return err
		}
		p.Skipped = true
		m.emit(m.newEvent(event.KindTurnSkipped, event.ActionPayload{Actor: p.Ref()}).To(p.ID))
		m.maybeAdvance()
		return nil
	})
}

// SubmitCancel withdraws the player's activity for the current phase: votes,
// verdicts, action slots and the protections hanging off them. A target
// ordinal of 0 cancels everything; a positive ordinal cancels only activity
// aimed at that player.
func (m *Match) SubmitCancel(ctx context.Context, playerID string, targetOrdinal int) error {
	return m.do(func() error {
		p, err := m.livingPlayer(playerID)
		if err != nil {
			return err
		}
		switch m.phase {
		case PhaseDay, PhaseEvening, PhaseNight:
		default:
			return errors.New(errors.CodeInvalidPhaseForAction, "nothing to cancel in this phase")
		}

		removed := false
		if targetOrdinal > 0 {
			target := m.playerByOrdinal(targetOrdinal)
			if target == nil {
				return errors.New(errors.CodeUnknownTarget, "no living player with that number")
			}
			if m.phase == PhaseDay {
				if choice, ok := m.dayVote.ChoiceOf(p.ID); ok && choice == target.ID {
					removed = m.dayVote.Remove(p.ID)
				}
			}
			if m.cancelActivityAgainst(p, target.ID) {
				removed = true
			}
		} else {
			switch m.phase {
			case PhaseDay:
				removed = m.dayVote.Remove(p.ID)
			case PhaseEvening:
				removed = m.eveningVote.Remove(p.ID)
			}
			if m.cancelActivity(p) {
				removed = true
			}
			if p.Skipped {
				p.Skipped = false
				removed = true
			}
		}
		if !removed {
			return errors.New(errors.CodeNoVoteToCancel, "no vote to cancel")
		}
		m.emit(m.newEvent(event.KindVoteCanceled, event.VotePayload{Voter: p.Ref()}).To(p.ID))
		return nil
	})
}

// BuyItem purchases a shop item with the player's persistent points.
func (m *Match) BuyItem(ctx context.Context, playerID string, itemOrdinal int) error {
	return m.do(func() error {
		p, err := m.livingPlayer(playerID)
		if err != nil {
			return err
		}
		spec, ok := item.ByOrdinal(itemOrdinal)
		if !ok {
			return errors.New(errors.CodeUnknownItem, "no item with that number")
		}
		if p.Item(spec.ID) != nil {
			return errors.New(errors.CodeItemAlreadyOwned, "item already owned")
		}
		if p.Record.TotalPoints < spec.Cost {
			return errors.New(errors.CodeNotEnoughPoints, "not enough points")
		}
		p.Record.TotalPoints -= spec.Cost
		p.Items = append(p.Items, item.NewInstance(spec))
		m.emit(m.newEvent(event.KindItemBought, event.ItemPayload{
			Buyer: p.Ref(),
			Item:  string(spec.ID),
			Cost:  spec.Cost,
		}).To(p.ID))
		return nil
	})
}

// Snapshot returns the public match status.
func (m *Match) Snapshot(ctx context.Context) (Status, error) {
	var status Status
	err := m.do(func() error {
		status = Status{
			MatchID: m.id,
			Phase:   m.phase.String(),
			Players: make([]event.PlayerRef, 0, len(m.players)),
		}
		if m.phase != PhaseIdle {
			if remaining := m.deadline.Sub(m.now()); remaining > 0 {
				status.DeadlineSeconds = int(remaining.Seconds())
			}
		}
		for _, p := range m.players {
			status.Players = append(status.Players, p.Ref())
		}
		return nil
	})
	return status, err
}

func (m *Match) submitGo(p *Player, placeOrdinal int) error {
	if m.phase != PhaseNight {
		return errors.New(errors.CodeInvalidPhaseForAction, "places close outside the night")
	}
	if p.Role.ID.Team() == role.TeamMafia {
		return errors.New(errors.CodeActionNotAllowed, "role cannot go to a place")
	}
	place, ok := placeByOrdinal(placeOrdinal)
	if !ok {
		return errors.New(errors.CodeUnknownPlace, "no place with that number")
	}
	if p.PlaceToGo != "" {
		return errors.New(errors.CodeSlotAlreadySet, "destination already chosen tonight")
	}
	p.PlaceToGo = place
	m.emit(m.newEvent(event.KindActionAccepted, event.ActionPayload{
		Actor:  p.Ref(),
		Action: string(role.ActionGo),
	}).To(p.ID))
	return nil
}

func (m *Match) submitDestroy(p *Player, caps role.Caps, placeOrdinal int) error {
	if m.phase != PhaseNight {
		return errors.New(errors.CodeInvalidPhaseForAction, "no role actions in this phase")
	}
	if caps.NightAction != role.ActionDestroy {
		return errors.New(errors.CodeActionNotAllowed, "role cannot destroy a place")
	}
	place, ok := placeByOrdinal(placeOrdinal)
	if !ok {
		return errors.New(errors.CodeUnknownPlace, "no place with that number")
	}
	if p.Role.PlaceToDestroy != "" {
		return errors.New(errors.CodeSlotAlreadySet, "a place is already wired")
	}
	p.Role.PlaceToDestroy = place
	m.emit(m.newEvent(event.KindActionAccepted, event.ActionPayload{
		Actor:  p.Ref(),
		Action: string(role.ActionDestroy),
	}).To(p.ID))
	m.maybeAdvance()
	return nil
}

// livingPlayer resolves a participant id to a living player, with the
// rejection taxonomy the request API shares.
func (m *Match) livingPlayer(id string) (*Player, error) {
	if m.phase == PhaseIdle || m.phase == PhaseCollecting {
		return nil, errors.New(errors.CodeInvalidPhaseForAction, "match has not started")
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New(errors.CodeNotJoined, "player is not in this match")
	}
	if !p.Alive {
		return nil, errors.New(errors.CodePlayerDead, "dead players cannot act")
	}
	return p, nil
}

// factionBallot returns the night ballot the player votes in, if their role
// carries a faction vote.
func (m *Match) factionBallot(p *Player) (*vote.Ballot, role.Team) {
	if !role.Capabilities(p.Role.ID).FactionVote {
		return nil, role.TeamNone
	}
	switch p.Role.ID.Team() {
	case role.TeamMafia:
		return m.mafiaVote, role.TeamMafia
	case role.TeamYakuza:
		return m.yakuzaVote, role.TeamYakuza
	}
	return nil, role.TeamNone
}
