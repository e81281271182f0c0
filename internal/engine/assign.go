package engine

import (
	"github.com/louisbranch/omerta/internal/engine/role"
)

// assignRoles deals the configured role pool across the roster in one shot.
// Each crime faction receives MafPercent of the roster, never less than one
// member; enabled faction specials fill quota slots before plain members so
// every faction keeps at least one ballot voter. Remaining players receive
// the enabled town and neutral specials, then Citizen.
func (m *Match) assignRoles() {
	shuffled := make([]*Player, len(m.players))
	copy(shuffled, m.players)
	m.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	factionQuota := len(m.players) * m.settings.MafPercent / 100
	if factionQuota < 1 {
		factionQuota = 1
	}

	next := 0
	take := func() *Player {
		p := shuffled[next]
		next++
		return p
	}

	deal := func(p *Player, id role.ID) {
		p.Role = role.NewState(id)
		p.OriginalRole = id
	}

	dealFaction := func(team role.Team, member role.ID) {
		specials := 0
		for _, id := range m.settings.SpecialRoles {
			if id.Team() != team || specials >= factionQuota-1 {
				continue
			}
			deal(take(), id)
			specials++
		}
		for i := specials; i < factionQuota; i++ {
			deal(take(), member)
		}
	}

	dealFaction(role.TeamMafia, role.Mafioso)
	if m.settings.YakuzaEnabled {
		dealFaction(role.TeamYakuza, role.Yakuza)
	}

	for _, id := range m.settings.SpecialRoles {
		if id.Team() != role.TeamCivil && id.Team() != role.TeamNeutral {
			continue
		}
		if next >= len(shuffled) {
			break
		}
		deal(take(), id)
	}

	for next < len(shuffled) {
		deal(take(), role.Citizen)
	}
}
