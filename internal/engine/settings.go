package engine

import (
	"time"

	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/engine/score"
)

// Settings is the per-match configuration: role pool, timings and points.
type Settings struct {
	MinPlayers int

	CollectingTime    time.Duration
	CountdownInterval time.Duration
	MorningTime       time.Duration
	DayTime           time.Duration
	EveningTime       time.Duration
	NightTime         time.Duration
	// PauseTime paces the dramatic beats during resolution.
	PauseTime time.Duration

	// StartFromNight begins the first cycle at night instead of morning.
	StartFromNight bool

	// MafPercent sizes each organized-crime faction as a share of the roster.
	MafPercent int
	// YakuzaEnabled adds the rival faction to the role pool.
	YakuzaEnabled bool
	// InfectionChance is the percent chance a wench visit infects.
	InfectionChance int

	// SpecialRoles is the deck of non-default roles dealt at assignment.
	SpecialRoles []role.ID

	Points score.Table
}

// DefaultSettings returns the standard game configuration.
func DefaultSettings() Settings {
	return Settings{
		MinPlayers:        6,
		CollectingTime:    3 * time.Minute,
		CountdownInterval: time.Minute,
		MorningTime:       20 * time.Second,
		DayTime:           2 * time.Minute,
		EveningTime:       time.Minute,
		NightTime:         90 * time.Second,
		PauseTime:         2 * time.Second,
		StartFromNight:    true,
		MafPercent:        25,
		YakuzaEnabled:     false,
		InfectionChance:   33,
		SpecialRoles: []role.ID{
			role.Commissioner,
			role.Doctor,
			role.Wench,
			role.Homeless,
			role.Lawyer,
		},
		Points: score.DefaultTable(),
	}
}
