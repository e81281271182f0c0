package engine

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/engine/vote"
	"github.com/louisbranch/omerta/internal/errors"
	"github.com/louisbranch/omerta/internal/event"
	"github.com/louisbranch/omerta/internal/storage"
)

// startCollecting opens the roster and arms the countdown ticks.
func (m *Match) startCollecting() {
	m.phase = PhaseCollecting
	interval := m.settings.CollectingTime
	if m.settings.CountdownInterval < interval {
		interval = m.settings.CountdownInterval
	}
	m.collectingRemaining = m.settings.CollectingTime - interval
	m.emit(m.newEvent(event.KindMatchStarted, event.CountdownPayload{
		RemainingSeconds: int(m.settings.CollectingTime.Seconds()),
		MinPlayers:       m.settings.MinPlayers,
	}))
	m.armTimer(interval)
}

// tickCollecting either broadcasts remaining time or closes the roster.
func (m *Match) tickCollecting() {
	if m.collectingRemaining > 0 {
		m.emit(m.newEvent(event.KindCountdown, event.CountdownPayload{
			RemainingSeconds: int(m.collectingRemaining.Seconds()),
			PlayerCount:      len(m.players),
			MinPlayers:       m.settings.MinPlayers,
		}))
		interval := m.collectingRemaining
		if m.settings.CountdownInterval < interval {
			interval = m.settings.CountdownInterval
		}
		m.collectingRemaining -= interval
		m.armTimer(interval)
		return
	}
	m.finishCollecting()
}

// finishCollecting deals roles and enters the first cycle, or aborts the
// match when too few players joined.
func (m *Match) finishCollecting() {
	if len(m.players) < m.settings.MinPlayers {
		m.emit(m.newEvent(event.KindMatchStopped, event.CountdownPayload{
			PlayerCount: len(m.players),
			MinPlayers:  m.settings.MinPlayers,
		}))
		m.reset()
		return
	}

	m.assignRoles()
	m.emit(m.newEvent(event.KindRolesAssigned, event.CountdownPayload{
		PlayerCount: len(m.players),
	}))
	m.sendRoleNotices()

	if m.settings.StartFromNight {
		m.startNight()
	} else {
		m.startMorning()
	}
}

// sendRoleNotices delivers each player their private role card; faction
// members additionally learn their teammates.
func (m *Match) sendRoleNotices() {
	for _, p := range m.players {
		notice := event.RoleNoticePayload{
			Role: p.Role.ID.String(),
			Team: p.Role.ID.Team().String(),
		}
		team := p.Role.ID.Team()
		if team == role.TeamMafia || team == role.TeamYakuza {
			for _, q := range m.players {
				if q.ID != p.ID && q.Role.ID.Team() == team {
					notice.Teammates = append(notice.Teammates, q.Ref())
				}
			}
		}
		m.emit(m.newEvent(event.KindRoleNotice, notice).To(p.ID))
	}
}

func (m *Match) startMorning() {
	m.phase = PhaseMorning
	m.emitPhase(m.settings.MorningTime)
	m.armTimer(m.settings.MorningTime)
}

func (m *Match) endMorning() {
	m.startDay()
}

func (m *Match) startDay() {
	m.phase = PhaseDay
	m.dayVote = vote.New()
	for _, p := range m.players {
		p.Skipped = false
	}
	m.emitPhase(m.settings.DayTime)
	m.emitSnapshot()
	m.armTimer(m.settings.DayTime)
}

func (m *Match) endDay() {
	m.pause()
	m.startEvening()
}

// startEvening opens the verdict vote on the day leader. With no single
// leader there is nothing to confirm and resolution runs immediately.
func (m *Match) startEvening() {
	m.phase = PhaseEvening
	m.eveningVote = vote.NewBool()
	result := m.dayVote.GetResult()
	if result.HasOneLeader {
		for _, p := range m.players {
			p.Skipped = false
		}
		m.emit(m.newEvent(event.KindPhaseStarted, event.PhasePayload{
			Phase:            m.phase.String(),
			DeadlineSeconds:  int(m.settings.EveningTime.Seconds()),
			EveningHasTarget: true,
		}))
		m.armTimer(m.settings.EveningTime)
		return
	}
	m.emitPhase(0)
	m.armTimer(0)
}

func (m *Match) startNight() {
	m.phase = PhaseNight
	m.mafiaVote = vote.New()
	m.yakuzaVote = vote.New()
	for _, p := range m.players {
		p.Skipped = false
		p.PlaceToGo = ""
		if p.Alive && p.Role.ID == role.Demoman && p.Role.DeviceTimer > 0 {
			p.Role.DeviceTimer--
		}
	}
	m.emitPhase(m.settings.NightTime)
	m.emitSnapshot()
	m.armTimer(m.settings.NightTime)
}

func (m *Match) emitPhase(d time.Duration) {
	m.emit(m.newEvent(event.KindPhaseStarted, event.PhasePayload{
		Phase:           m.phase.String(),
		DeadlineSeconds: int(d.Seconds()),
	}))
}

func (m *Match) emitSnapshot() {
	payload := event.SnapshotPayload{Phase: m.phase.String()}
	for _, p := range m.alivePlayers() {
		payload.Players = append(payload.Players, p.Ref())
	}
	m.emit(m.newEvent(event.KindStatusSnapshot, payload))
}

// maybeAdvance ends the phase early once every living player is done. An
// armed demoman device holds the night open until the deadline.
func (m *Match) maybeAdvance() {
	switch m.phase {
	case PhaseDay, PhaseEvening, PhaseNight:
	default:
		return
	}
	var dayLeader string
	if m.phase == PhaseEvening {
		if result := m.dayVote.GetResult(); result.HasOneLeader {
			dayLeader = result.Leader()
		}
	}
	for _, p := range m.alivePlayers() {
		if m.phase == PhaseNight && p.Role.ID == role.Demoman && p.Role.DeviceTimer == 0 {
			return
		}
		if p.ID == dayLeader {
			continue
		}
		if !m.playerReady(p) {
			return
		}
	}
	m.armTimer(0)
}

func (m *Match) playerReady(p *Player) bool {
	if p.Skipped {
		return true
	}
	switch m.phase {
	case PhaseDay:
		return m.dayVote.Voted(p.ID)
	case PhaseEvening:
		return m.eveningVote.Voted(p.ID)
	case PhaseNight:
		if ballot, _ := m.factionBallot(p); ballot != nil {
			return ballot.Voted(p.ID)
		}
		return p.Role.NightActionDone()
	}
	return true
}

// loadRecord pulls the player's career line from the store, best effort. A
// missing or failing store yields a fresh record.
func (m *Match) loadRecord(ctx context.Context, id, name string) storage.PlayerRecord {
	fresh := storage.PlayerRecord{ID: id, Name: name}
	if m.store == nil {
		return fresh
	}
	record, err := m.store.LoadPlayerRecord(ctx, id)
	if err != nil {
		if !errors.IsCode(err, errors.CodeNotFound) {
			log.Printf("engine: load player record %s: %v", id, err)
		}
		return fresh
	}
	record.Name = name
	return record
}
