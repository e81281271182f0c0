package engine

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/omerta/internal/engine/order"
	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/engine/score"
	"github.com/louisbranch/omerta/internal/engine/vote"
	"github.com/louisbranch/omerta/internal/engine/win"
	"github.com/louisbranch/omerta/internal/event"
)

// endEvening settles the communal execution: the day leader hangs unless
// the evening verdict failed, a judge pardoned them, or the condemned turns
// out to be the elder, whose own victim dies in their place.
func (m *Match) endEvening() {
	_, span := m.tracer.Start(m.ctx, "engine.resolve_evening",
		oteltrace.WithAttributes(attribute.String("match.id", m.id)))
	defer span.End()

	result := m.dayVote.GetResult()
	verdict := m.eveningVote.GetResult()
	confirmed := m.settings.EveningTime == 0 || (verdict.Majority != nil && *verdict.Majority)

	switch {
	case result.IsEmpty:
		m.emit(m.newEvent(event.KindNoActivity, nil))
	case !result.HasOneLeader || !confirmed:
		m.emit(m.newEvent(event.KindNoChoice, nil))
	default:
		m.executeLeader(m.byID[result.Leader()], result)
	}

	m.applyKills()
	m.clearActivity()
	if m.checkWin() {
		return
	}
	m.pause()
	m.startNight()
}

// executeLeader applies the day-vote outcome to the condemned player. Day
// roles get a chance to replace the execution first, in priority order.
func (m *Match) executeLeader(leader *Player, result vote.Result) {
	points := m.settings.Points

	entries := make([]order.Entry, 0, len(m.players))
	for _, p := range m.players {
		entries = append(entries, order.Entry{PlayerID: p.ID, Role: p.Role.ID, Alive: p.Alive})
	}
	for _, id := range order.Day(entries) {
		if m.resolveDayRole(m.byID[id], leader) {
			return
		}
	}

	// Everyone who backed the execution scores by their own allegiance.
	pointsByTeam := map[role.Team]int64{}
	if leader.Role.ID == role.Commissioner {
		pointsByTeam[role.TeamCivil] += points.Get(score.CivilDayKillCom)
		pointsByTeam[role.TeamMafia] += points.Get(score.MafKillCom)
		pointsByTeam[role.TeamYakuza] += points.Get(score.MafKillCom)
	}
	switch leader.Role.ID.Team() {
	case role.TeamCivil:
		pointsByTeam[role.TeamCivil] += points.Get(score.CivilKillCivil)
		pointsByTeam[role.TeamMafia] += points.Get(score.MafKill)
		pointsByTeam[role.TeamYakuza] += points.Get(score.MafKill)
	case role.TeamMafia:
		pointsByTeam[role.TeamCivil] += points.Get(score.CivilKillMaf)
		pointsByTeam[role.TeamYakuza] += points.Get(score.MafKillOpposite)
	case role.TeamYakuza:
		pointsByTeam[role.TeamCivil] += points.Get(score.CivilKillMaf)
		pointsByTeam[role.TeamMafia] += points.Get(score.MafKillOpposite)
	}
	for _, p := range m.players {
		if result.VotedForLeader(p.ID) {
			p.AddPoints(pointsByTeam[p.Role.ID.Team()])
		}
	}
	m.kills.Kill(leader.ID)
	m.emit(m.newEvent(event.KindKillAnnounced, event.TargetPayload{
		Target: leader.Ref(),
		Cause:  "day_vote",
	}))
}

// resolveDayRole gives one privileged day role its chance to overturn the
// execution. It reports whether the communal outcome was replaced.
func (m *Match) resolveDayRole(p *Player, leader *Player) bool {
	points := m.settings.Points

	switch p.Role.ID {
	case role.Judge:
		judgeID, ok := m.relations.JustifiedBy(leader.ID)
		if !ok || judgeID != p.ID {
			return false
		}
		m.emit(m.newEvent(event.KindJustifyAnnounced, event.TargetPayload{
			Target: leader.Ref(),
			Cause:  role.Judge.String(),
		}))
		if leader.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.JudgeJustifyCom))
		}
		switch leader.Role.ID.Team() {
		case role.TeamCivil:
			p.AddPoints(points.Get(score.JudgeJustifyCivil))
		case role.TeamMafia, role.TeamYakuza:
			p.AddPoints(points.Get(score.JudgeJustifyMaf))
		}
		m.pause()
		return true

	case role.Elder:
		if p.ID != leader.ID {
			return false
		}
		m.emit(m.newEvent(event.KindAttackRepelled, event.TargetPayload{
			Target: leader.Ref(),
			Cause:  role.Elder.String(),
		}))
		targetID, ok := leader.Role.Get(role.ActionImprison)
		if !ok {
			return true
		}
		target := m.byID[targetID]
		if target.Role.ID == role.Commissioner {
			leader.AddPoints(points.Get(score.CivilDayKillCom))
		}
		switch target.Role.ID.Team() {
		case role.TeamCivil:
			leader.AddPoints(points.Get(score.CivilKillCivil))
		case role.TeamMafia, role.TeamYakuza:
			leader.AddPoints(points.Get(score.CivilKillMaf))
		}
		m.pause()
		m.kills.Kill(target.ID)
		m.emit(m.newEvent(event.KindKillAnnounced, event.TargetPayload{
			Target: target.Ref(),
			Cause:  role.Elder.String(),
		}))
		return true
	}
	return false
}

// checkWin evaluates the victory conditions for the current phase and, when
// the match is over, declares the outcome. It reports whether it did.
func (m *Match) checkWin() bool {
	players := make([]win.Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, win.Player{
			ID:        p.ID,
			Alive:     p.Alive,
			Team:      p.Role.ID.Team(),
			Detective: p.Role.ID == role.Commissioner,
		})
	}
	outcome := win.Evaluate(players, m.phase == PhaseNight)
	if !outcome.Finished {
		return false
	}
	m.declareWin(outcome.Winner)
	return true
}

// declareWin scores the ending, announces the scoreboard, persists every
// career record and returns the match to idle. The winning team is
// attributed by original role, so a converted player still wins with the
// side they were dealt.
func (m *Match) declareWin(winner role.Team) {
	points := m.settings.Points
	draw := winner == role.TeamNone

	for _, p := range m.players {
		if p.Alive {
			switch {
			case winner == p.Role.ID.Team():
				p.AddPoints(points.Get(score.WinAndSurvive))
			case draw, p.Role.ID.Team() == role.TeamNeutral:
				p.AddPoints(points.Get(score.Draw))
				p.Record.Draws++
			}
			p.AddPoints(points.Get(score.Survive))
			p.Record.Survivals++
		}
		if winner == p.OriginalRole.Team() {
			p.AddPoints(points.Get(score.Win))
			p.Record.Wins++
		}
		p.Record.Games++
		p.Record.TotalPoints += p.Score
		p.Record.RecalculateDerivedRating()
	}

	payload := event.WinPayload{
		WinningTeam: winner.String(),
		Draw:        draw,
	}
	for _, p := range m.players {
		payload.Scoreboard = append(payload.Scoreboard, event.ScoreLine{
			Player:       p.Ref(),
			OriginalRole: p.OriginalRole.String(),
			MatchPoints:  p.Score,
			TotalPoints:  p.Record.TotalPoints,
			Survived:     p.Alive,
		})
	}
	m.emit(m.newEvent(event.KindWinDeclared, payload))

	if m.store != nil {
		for _, p := range m.players {
			if err := m.store.SavePlayerRecord(context.Background(), p.Record); err != nil {
				log.Printf("engine: save player record %s: %v", p.ID, err)
			}
		}
	}

	m.reset()
}
