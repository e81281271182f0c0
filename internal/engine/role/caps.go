package role

import "fmt"

// Action names a phase-scoped action slot.
type Action string

const (
	// ActionKill is a single-target night kill (sheriff, killer, maniac,
	// robinhood, highlander retaliation).
	ActionKill Action = "kill"
	// ActionHeal is the doctor's night protection.
	ActionHeal Action = "heal"
	// ActionCheck is an investigation (commissioner, homeless, lawyer).
	ActionCheck Action = "check"
	// ActionVisit is the wench's night visit; it blocks and may infect.
	ActionVisit Action = "visit"
	// ActionBlock is the hoodlum's night block.
	ActionBlock Action = "block"
	// ActionCurse is the warlock's limited-use night curse.
	ActionCurse Action = "curse"
	// ActionJustify is the judge's day pardon.
	ActionJustify Action = "justify"
	// ActionImprison is the elder's day execution override.
	ActionImprison Action = "imprison"
	// ActionDestroy is the demoman's place bombing; its target is a place,
	// not a player.
	ActionDestroy Action = "destroy"
	// ActionGo points a non-mafia player at a place for the night.
	ActionGo Action = "go"
)

// Caps is a role's capability table entry.
type Caps struct {
	Team Team
	// NightAction is the slot the role fills at night, if any.
	NightAction Action
	// DayAction is the slot the role fills during the day, if any.
	DayAction Action
	// NightActionRequired blocks night advancement until the slot is set
	// or the holder skips.
	NightActionRequired bool
	// NoRepeatNight forbids choosing the same target on consecutive nights.
	NoRepeatNight bool
	// FactionVote marks roles that vote in their faction's night ballot
	// instead of filling a personal kill slot.
	FactionVote bool
	// Curses is the warlock's per-match curse budget.
	Curses int
	// DeviceNights is how many nights the demoman's device needs to arm.
	DeviceNights int
}

var capsTable = map[ID]Caps{
	Citizen:      {Team: TeamCivil},
	Commissioner: {Team: TeamCivil, NightAction: ActionCheck, NightActionRequired: true},
	Doctor:       {Team: TeamCivil, NightAction: ActionHeal, NightActionRequired: true, NoRepeatNight: true},
	Sheriff:      {Team: TeamCivil, NightAction: ActionKill, NightActionRequired: true},
	Highlander:   {Team: TeamCivil, NightAction: ActionKill},
	Judge:        {Team: TeamCivil, DayAction: ActionJustify, NoRepeatNight: true},
	Elder:        {Team: TeamCivil, DayAction: ActionImprison},
	Homeless:     {Team: TeamCivil, NightAction: ActionCheck, NightActionRequired: true},
	Wench:        {Team: TeamCivil, NightAction: ActionVisit, NightActionRequired: true, NoRepeatNight: true},
	Warlock:      {Team: TeamCivil, NightAction: ActionCurse, Curses: 2},
	Mafioso:      {Team: TeamMafia, FactionVote: true},
	Lawyer:       {Team: TeamMafia, NightAction: ActionCheck, NightActionRequired: true},
	Hoodlum:      {Team: TeamYakuza, NightAction: ActionBlock, NightActionRequired: true, NoRepeatNight: true},
	Killer:       {Team: TeamMafia, NightAction: ActionKill, NightActionRequired: true},
	Ninja:        {Team: TeamMafia},
	Demoman:      {Team: TeamMafia, NightAction: ActionDestroy, DeviceNights: 2},
	Yakuza:       {Team: TeamYakuza, FactionVote: true},
	Maniac:       {Team: TeamNeutral, NightAction: ActionKill, NightActionRequired: true},
	RobinHood:    {Team: TeamNeutral, NightAction: ActionKill, NightActionRequired: true},
}

// Capabilities returns the capability entry for a role. It panics on an
// unregistered role: a variant missing from the table is a programming
// error, not a runtime condition.
func Capabilities(id ID) Caps {
	caps, ok := capsTable[id]
	if !ok {
		panic(fmt.Sprintf("role: no capability entry for %s", id))
	}
	return caps
}
