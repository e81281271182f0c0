package engine

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/omerta/internal/engine/item"
	"github.com/louisbranch/omerta/internal/engine/kill"
	"github.com/louisbranch/omerta/internal/engine/order"
	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/engine/score"
	"github.com/louisbranch/omerta/internal/engine/vote"
	"github.com/louisbranch/omerta/internal/event"
)

// killContext parameterizes the shared night-kill pipeline. The award
// callbacks fire for the branch that actually happened; a repelled or
// healed attack earns the attacker nothing.
type killContext struct {
	cause     string
	healAward func(doctor, target *Player)
	killAward func(target *Player)
}

// tryNightKill runs an attack through the protection pipeline: highlander
// immunity first, then the healed-by relation, then death. It reports
// whether the target was queued to die.
func (m *Match) tryNightKill(target *Player, kc killContext) bool {
	if target.Role.ID == role.Highlander {
		target.Role.WasAttacked = true
		m.emit(m.newEvent(event.KindAttackRepelled, event.TargetPayload{
			Target: target.Ref(),
			Cause:  kc.cause,
		}))
		return false
	}
	if doctorID, ok := m.relations.HealedBy(target.ID); ok {
		if doctor, found := m.byID[doctorID]; found && kc.healAward != nil {
			kc.healAward(doctor, target)
		}
		m.emit(m.newEvent(event.KindHealSaved, event.TargetPayload{
			Target: target.Ref(),
			Cause:  kc.cause,
		}))
		return false
	}
	if kc.killAward != nil {
		kc.killAward(target)
	}
	m.kills.Kill(target.ID)
	m.emit(m.newEvent(event.KindKillAnnounced, event.TargetPayload{
		Target: target.Ref(),
		Cause:  kc.cause,
	}))
	return true
}

// healAwardByTeam is the standard doctor reward for saving a target from a
// town-aligned attacker: saving an innocent pays, saving a crook costs.
func (m *Match) healAwardByTeam(doctor, target *Player) {
	switch target.Role.ID.Team() {
	case role.TeamCivil:
		doctor.AddPoints(m.settings.Points.Get(score.DocHealCivil))
		if target.Role.ID == role.Commissioner {
			doctor.AddPoints(m.settings.Points.Get(score.DocHealCom))
		}
	case role.TeamMafia, role.TeamYakuza:
		doctor.AddPoints(m.settings.Points.Get(score.DocHealMaf))
	}
}

// endNight resolves all night activity in priority order, applies the kill
// queue and either declares the outcome or opens the morning.
func (m *Match) endNight() {
	_, span := m.tracer.Start(m.ctx, "engine.resolve_night",
		oteltrace.WithAttributes(attribute.String("match.id", m.id)))
	defer span.End()

	m.useItems()

	entries := make([]order.Entry, 0, len(m.players))
	for _, p := range m.players {
		entries = append(entries, order.Entry{PlayerID: p.ID, Role: p.Role.ID, Alive: p.Alive})
	}
	for _, id := range order.Night(entries) {
		m.resolveNightRole(m.byID[id])
	}

	m.resolveFactionBallot(m.mafiaVote, role.TeamMafia, role.Mafioso)
	m.pause()
	m.resolveFactionBallot(m.yakuzaVote, role.TeamYakuza, role.Yakuza)
	m.pause()

	for _, p := range m.players {
		m.resolveHighlander(p)
		m.resolveWarlock(p)
		m.resolveDelayedDeath(p)
	}

	m.applyKills()
	m.clearActivity()
	if m.checkWin() {
		return
	}
	m.pause()
	m.startMorning()
}

// useItems fires every still-active owned item before anything resolves.
func (m *Match) useItems() {
	for _, p := range m.alivePlayers() {
		mask := p.Item(item.Mask)
		if mask == nil || !mask.Use() {
			continue
		}
		for _, other := range m.players {
			if other.ID != p.ID {
				m.cancelActivityAgainst(other, p.ID)
			}
		}
	}
}

func (m *Match) resolveNightRole(p *Player) {
	points := m.settings.Points

	switch p.Role.ID {
	case role.Ninja:
		for _, other := range m.players {
			if other.ID != p.ID {
				m.cancelActivityAgainst(other, p.ID)
			}
		}

	case role.Hoodlum:
		targetID, ok := p.Role.Get(role.ActionBlock)
		if !ok {
			return
		}
		target := m.byID[targetID]
		m.cancelActivity(target)
		if target.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.HoodlumBlockCom))
		} else if target.Role.ID.Team() == role.TeamMafia {
			p.AddPoints(points.Get(score.HoodlumBlockMaf))
		}
		m.emit(m.newEvent(event.KindBlockAnnounced, event.TargetPayload{
			Target: target.Ref(),
			Cause:  role.Hoodlum.String(),
		}))
		m.pause()

	case role.Wench:
		targetID, ok := p.Role.Get(role.ActionVisit)
		if !ok {
			return
		}
		target := m.byID[targetID]
		m.cancelActivity(target)
		if target.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.WenchBlockCom))
		} else if team := target.Role.ID.Team(); team == role.TeamMafia || team == role.TeamYakuza {
			p.AddPoints(points.Get(score.WenchBlockMaf))
		}
		if m.rand.Intn(100) < m.settings.InfectionChance && target.DelayedDeath == nil {
			countdown := 1
			target.DelayedDeath = &countdown
		}
		m.emit(m.newEvent(event.KindBlockAnnounced, event.TargetPayload{
			Target: target.Ref(),
			Cause:  role.Wench.String(),
		}))
		m.pause()

	case role.Homeless:
		targetID, ok := p.Role.Get(role.ActionCheck)
		if !ok {
			return
		}
		target := m.byID[targetID]
		m.emit(m.newEvent(event.KindCheckResult, event.CheckPayload{
			Target: target.Ref(),
			Role:   target.Role.ID.String(),
			Team:   target.Role.ID.Team().String(),
		}).To(p.ID))
		m.emit(m.newEvent(event.KindNightAction, event.NightActionPayload{
			Role: role.Homeless.String(),
		}))
		if team := target.Role.ID.Team(); team == role.TeamMafia || team == role.TeamYakuza {
			p.AddPoints(points.Get(score.ComKillMaf))
		}
		m.pause()

	case role.Commissioner:
		m.resolveCommissioner(p)
		m.pause()

	case role.Sheriff:
		targetID, ok := p.Role.Get(role.ActionKill)
		if !ok {
			return
		}
		m.tryNightKill(m.byID[targetID], killContext{
			cause:     role.Sheriff.String(),
			healAward: m.healAwardByTeam,
			killAward: func(target *Player) {
				switch target.Role.ID.Team() {
				case role.TeamCivil:
					p.AddPoints(points.Get(score.ComKillCivil))
					if target.Role.ID == role.Commissioner {
						p.AddPoints(points.Get(score.SheriffKillCom))
					}
				case role.TeamMafia, role.TeamYakuza:
					p.AddPoints(points.Get(score.ComKillMaf))
				}
			},
		})
		m.pause()

	case role.Killer:
		targetID, ok := p.Role.Get(role.ActionKill)
		if !ok {
			return
		}
		m.tryNightKill(m.byID[targetID], killContext{
			cause:     role.Killer.String(),
			healAward: m.healAwardByTeam,
			killAward: func(target *Player) {
				p.AddPoints(points.Get(score.MafKill))
				if target.Role.ID == role.Commissioner {
					p.AddPoints(points.Get(score.MafKillCom))
				}
			},
		})
		m.pause()

	case role.Lawyer:
		targetID, ok := p.Role.Get(role.ActionCheck)
		if !ok {
			return
		}
		target := m.byID[targetID]
		m.emit(m.newEvent(event.KindCheckResult, event.CheckPayload{
			Target: target.Ref(),
			Role:   target.Role.ID.String(),
			Team:   target.Role.ID.Team().String(),
		}).ToTeam(role.TeamMafia.String()))
		if target.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.LawyerCheckCom))
		}
		m.pause()

	case role.Demoman:
		m.resolveBlast(p)

	case role.Maniac:
		targetID, ok := p.Role.Get(role.ActionKill)
		if !ok {
			return
		}
		m.tryNightKill(m.byID[targetID], killContext{
			cause:     role.Maniac.String(),
			healAward: m.healAwardByTeam,
			killAward: func(*Player) {
				p.AddPoints(points.Get(score.NeutralKill))
			},
		})
		m.pause()

	case role.RobinHood:
		targetID, ok := p.Role.Get(role.ActionKill)
		if !ok {
			return
		}
		target := m.byID[targetID]
		if target.Role.ID == role.Citizen {
			// An honest pauper is off limits.
			m.emit(m.newEvent(event.KindAttackRepelled, event.TargetPayload{
				Target: target.Ref(),
				Cause:  role.RobinHood.String(),
			}))
			m.pause()
			return
		}
		m.tryNightKill(target, killContext{
			cause:     role.RobinHood.String(),
			healAward: m.healAwardByTeam,
			killAward: func(*Player) {
				p.AddPoints(points.Get(score.NeutralKill))
			},
		})
		m.pause()

	case role.Citizen, role.Judge, role.Elder, role.Mafioso, role.Yakuza,
		role.Doctor, role.Warlock, role.Highlander:
		// No individual night dispatch: faction ballots, heal relations,
		// curses and retaliation resolve in the passes that follow.

	default:
		panic(fmt.Sprintf("engine: no night resolution for role %s", p.Role.ID))
	}
}

// resolveCommissioner handles the detective check: innocents read clean,
// crooks and killers are shot on the spot unless a doctor got there first.
// RobinHood fools the check entirely.
func (m *Match) resolveCommissioner(p *Player) {
	targetID, ok := p.Role.Get(role.ActionCheck)
	if !ok {
		m.emit(m.newEvent(event.KindNoActivity, event.NightActionPayload{
			Role: role.Commissioner.String(),
		}))
		return
	}
	target := m.byID[targetID]
	m.emit(m.newEvent(event.KindCheckResult, event.CheckPayload{
		Target: target.Ref(),
		Role:   target.Role.ID.String(),
		Team:   target.Role.ID.Team().String(),
	}).To(p.ID))

	team := target.Role.ID.Team()
	if team == role.TeamCivil || target.Role.ID == role.RobinHood {
		m.emit(m.newEvent(event.KindNightAction, event.NightActionPayload{
			Role: role.Commissioner.String(),
		}))
		return
	}

	points := m.settings.Points
	m.tryNightKill(target, killContext{
		cause: role.Commissioner.String(),
		healAward: func(doctor, _ *Player) {
			doctor.AddPoints(points.Get(score.DocHealMaf))
		},
		killAward: func(*Player) {
			p.AddPoints(points.Get(score.ComKillMaf))
		},
	})
}

// resolveBlast detonates an armed device: every non-mafia player who went
// to the wired place tonight dies, protections notwithstanding.
func (m *Match) resolveBlast(p *Player) {
	if p.Role.DeviceTimer != 0 || p.Role.PlaceToDestroy == "" {
		return
	}
	place := p.Role.PlaceToDestroy
	points := m.settings.Points
	var victims []event.PlayerRef
	for _, target := range m.players {
		if !target.Alive || target.Role.ID.Team() == role.TeamMafia || target.PlaceToGo != place {
			continue
		}
		victims = append(victims, target.Ref())
		m.kills.Kill(target.ID)
		p.AddPoints(points.Get(score.MafKill))
		if target.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.MafKillCom))
		}
	}
	// The device is spent either way.
	p.Role.PlaceToDestroy = ""
	p.Role.DeviceTimer = -1
	m.emit(m.newEvent(event.KindBlastAnnounced, event.BlastPayload{
		Place:   place,
		Victims: victims,
	}))
	m.pause()
}

// resolveFactionBallot settles one faction's communal night kill. Every
// member who backed the chosen victim shares the reward.
func (m *Match) resolveFactionBallot(ballot *vote.Ballot, team role.Team, member role.ID) {
	result := ballot.GetResult()
	if result.IsEmpty {
		for _, p := range m.alivePlayers() {
			if p.Role.ID == member {
				m.emit(m.newEvent(event.KindNoActivity, event.NightActionPayload{
					Role: member.String(),
				}))
				break
			}
		}
		return
	}
	if !result.HasOneLeader {
		m.emit(m.newEvent(event.KindNoChoice, event.NightActionPayload{
			Role: member.String(),
		}))
		return
	}

	target := m.byID[result.Leader()]
	points := m.settings.Points
	m.tryNightKill(target, killContext{
		cause: team.String(),
		healAward: func(doctor, target *Player) {
			doctor.AddPoints(points.Get(score.DocHealCivil))
			if target.Role.ID == role.Commissioner {
				doctor.AddPoints(points.Get(score.DocHealCom))
			}
		},
		killAward: func(target *Player) {
			var bonus score.Key
			if target.Role.ID == role.Commissioner {
				bonus = score.MafKillCom
			} else if target.Role.ID.Team() != team && target.Role.ID.Team() != role.TeamCivil &&
				target.Role.ID.Team() != role.TeamNeutral {
				bonus = score.MafKillOpposite
			}
			for _, p := range m.players {
				if p.Role.ID.Team() != team || !result.VotedForLeader(p.ID) {
					continue
				}
				p.AddPoints(points.Get(score.MafKill))
				if bonus != "" {
					p.AddPoints(points.Get(bonus))
				}
			}
		},
	})
}

// resolveHighlander fires the retaliation strike: an attacked highlander
// with a marked target kills it outright, past every protection.
func (m *Match) resolveHighlander(p *Player) {
	if p.Role.ID != role.Highlander || !p.Role.WasAttacked {
		return
	}
	targetID, ok := p.Role.Get(role.ActionKill)
	if !ok {
		return
	}
	target := m.byID[targetID]
	points := m.settings.Points
	switch target.Role.ID.Team() {
	case role.TeamCivil:
		p.AddPoints(points.Get(score.ComKillCivil))
		if target.Role.ID == role.Commissioner {
			p.AddPoints(points.Get(score.SheriffKillCom))
		}
	case role.TeamMafia, role.TeamYakuza:
		p.AddPoints(points.Get(score.ComKillMaf))
	}
	m.kills.Kill(target.ID)
	m.emit(m.newEvent(event.KindKillAnnounced, event.TargetPayload{
		Target: target.Ref(),
		Cause:  role.Highlander.String(),
	}))
}

// resolveWarlock punishes everyone who acted against the cursed target.
// Each crime faction loses one random member instead of all of them, and an
// unattacked highlander shrugs the curse off.
func (m *Match) resolveWarlock(p *Player) {
	if p.Role.ID != role.Warlock {
		return
	}
	cursedID, ok := p.Role.Get(role.ActionCurse)
	if !ok {
		return
	}
	p.Role.CursesLeft--

	var victims []event.PlayerRef
	var mafiosi, yakuza []*Player
	points := m.settings.Points
	condemn := func(target *Player) {
		victims = append(victims, target.Ref())
		m.kills.Kill(target.ID)
		p.AddPoints(points.Get(score.NeutralKill))
	}

	for _, target := range m.players {
		if !target.Alive || target.ID == p.ID || !m.hasActivityAgainst(target, cursedID) {
			continue
		}
		switch {
		case target.Role.ID == role.Mafioso:
			mafiosi = append(mafiosi, target)
		case target.Role.ID == role.Yakuza:
			yakuza = append(yakuza, target)
		case target.Role.ID == role.Highlander && !target.Role.WasAttacked:
		default:
			condemn(target)
		}
	}
	if len(mafiosi) > 0 {
		condemn(mafiosi[m.rand.Intn(len(mafiosi))])
	}
	if len(yakuza) > 0 {
		condemn(yakuza[m.rand.Intn(len(yakuza))])
	}

	if len(victims) > 0 {
		m.emit(m.newEvent(event.KindCurseBackfired, event.CursePayload{Victims: victims}))
		m.pause()
	}
}

// resolveDelayedDeath advances an infection countdown and kills when it
// runs out.
func (m *Match) resolveDelayedDeath(p *Player) {
	if !p.Alive || p.DelayedDeath == nil {
		return
	}
	if *p.DelayedDeath > 0 {
		*p.DelayedDeath--
		return
	}
	p.DelayedDeath = nil
	m.kills.Kill(p.ID)
	m.emit(m.newEvent(event.KindKillAnnounced, event.TargetPayload{
		Target: p.Ref(),
		Cause:  "infection",
	}))
}

func (m *Match) applyKills() int {
	return m.kills.Apply(func(id string) {
		if p, ok := m.byID[id]; ok {
			p.Alive = false
		}
	})
}

// clearActivity rolls every player's phase state over: slots become
// no-repeat memory, destinations and skips reset, protections drop.
func (m *Match) clearActivity() {
	for _, p := range m.players {
		p.Role.EndPhase()
		p.PlaceToGo = ""
		p.Skipped = false
	}
	m.relations = kill.NewRelations()
}
