// Package role defines the closed set of game roles and their capabilities.
//
// A role is an identity tag plus a capability table entry. Resolution code
// dispatches exhaustively over the tag; adding a role without extending the
// table or the resolution switch is a programming error and fails loudly.
package role

import "fmt"

// Team is a role's affiliation.
type Team int

const (
	TeamNone Team = iota
	TeamCivil
	TeamMafia
	TeamYakuza
	TeamNeutral
)

// String returns the wire name of the team.
func (t Team) String() string {
	switch t {
	case TeamNone:
		return "none"
	case TeamCivil:
		return "civil"
	case TeamMafia:
		return "mafia"
	case TeamYakuza:
		return "yakuza"
	case TeamNeutral:
		return "neutral"
	}
	return fmt.Sprintf("team(%d)", int(t))
}

// ID identifies a role variant.
type ID int

const (
	Citizen ID = iota
	Commissioner
	Doctor
	Sheriff
	Highlander
	Judge
	Elder
	Homeless
	Wench
	Warlock
	Mafioso
	Lawyer
	Hoodlum
	Killer
	Ninja
	Demoman
	Yakuza
	Maniac
	RobinHood
)

// All lists every role variant. Resolution and registry checks iterate this
// slice, so it must stay in sync with the ID constants.
var All = []ID{
	Citizen, Commissioner, Doctor, Sheriff, Highlander, Judge, Elder,
	Homeless, Wench, Warlock, Mafioso, Lawyer, Hoodlum, Killer, Ninja,
	Demoman, Yakuza, Maniac, RobinHood,
}

// String returns the wire name of the role.
func (id ID) String() string {
	switch id {
	case Citizen:
		return "citizen"
	case Commissioner:
		return "commissioner"
	case Doctor:
		return "doctor"
	case Sheriff:
		return "sheriff"
	case Highlander:
		return "highlander"
	case Judge:
		return "judge"
	case Elder:
		return "elder"
	case Homeless:
		return "homeless"
	case Wench:
		return "wench"
	case Warlock:
		return "warlock"
	case Mafioso:
		return "mafioso"
	case Lawyer:
		return "lawyer"
	case Hoodlum:
		return "hoodlum"
	case Killer:
		return "killer"
	case Ninja:
		return "ninja"
	case Demoman:
		return "demoman"
	case Yakuza:
		return "yakuza"
	case Maniac:
		return "maniac"
	case RobinHood:
		return "robinhood"
	}
	return fmt.Sprintf("role(%d)", int(id))
}

// Parse maps a wire name back to a role ID.
func Parse(name string) (ID, bool) {
	for _, id := range All {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}

// Team returns the role's affiliation from the capability table.
func (id ID) Team() Team {
	return Capabilities(id).Team
}
