// Package win evaluates team, solo and draw victory conditions after every
// phase resolution.
package win

import "github.com/louisbranch/omerta/internal/engine/role"

// Player is the roster view the evaluator needs.
type Player struct {
	ID    string
	Alive bool
	Team  role.Team
	// Detective marks commissioner-like roles for the two-survivor day rule.
	Detective bool
}

// Outcome is the evaluation result. Winner is TeamNone for a draw.
type Outcome struct {
	Finished bool
	Winner   role.Team
}

// Evaluate checks the win conditions in order; the first match wins.
// night selects the two-survivor rule variant.
func Evaluate(players []Player, night bool) Outcome {
	// A single team (or no one at all) holds every living player.
	for _, team := range []role.Team{role.TeamNone, role.TeamNeutral, role.TeamMafia, role.TeamYakuza, role.TeamCivil} {
		if holdsAllAlive(players, team) {
			return Outcome{Finished: true, Winner: team}
		}
	}

	// A single non-neutral team remains once neutral survivors are excluded.
	for _, team := range []role.Team{role.TeamMafia, role.TeamYakuza, role.TeamCivil} {
		if onlyTeamAndNeutralsAlive(players, team) {
			return Outcome{Finished: true, Winner: team}
		}
	}

	// Two survivors: a night standoff is a draw, and in daylight a lone
	// detective facing their killer is a draw too.
	if countAlive(players) == 2 {
		if night {
			return Outcome{Finished: true, Winner: role.TeamNone}
		}
		for _, p := range players {
			if p.Alive && p.Detective {
				return Outcome{Finished: true, Winner: role.TeamNone}
			}
		}
	}

	return Outcome{}
}

func holdsAllAlive(players []Player, team role.Team) bool {
	for _, p := range players {
		if p.Alive && p.Team != team {
			return false
		}
	}
	return true
}

func onlyTeamAndNeutralsAlive(players []Player, team role.Team) bool {
	for _, p := range players {
		if p.Alive && p.Team != team && p.Team != role.TeamNeutral {
			return false
		}
	}
	return true
}

func countAlive(players []Player) int {
	n := 0
	for _, p := range players {
		if p.Alive {
			n++
		}
	}
	return n
}
