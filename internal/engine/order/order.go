// Package order fixes the sequence in which living players are checked for
// activity during phase resolution.
//
// Later-listed roles must not act before earlier ones: blocks resolve before
// the blocked role's action is evaluated, and a countered role earns neither
// its kill nor its points. Roles without a listed priority sort last and
// keep their roster order relative to each other.
package order

import (
	"sort"

	"github.com/louisbranch/omerta/internal/engine/role"
)

var nightPriority = []role.ID{
	role.Ninja,
	role.Hoodlum,
	role.Wench,
	role.Maniac,
	role.RobinHood,
	role.Homeless,
	role.Commissioner,
	role.Sheriff,
	role.Killer,
	role.Lawyer,
	role.Doctor,
	role.Demoman,
}

var dayPriority = []role.ID{
	role.Judge,
	role.Elder,
}

func indexOf(priorities []role.ID, id role.ID) int {
	for i, p := range priorities {
		if p == id {
			return i
		}
	}
	return len(priorities)
}

// Entry pairs a player id with its role for ordering.
type Entry struct {
	PlayerID string
	Role     role.ID
	Alive    bool
}

func sortByPriority(entries []Entry, priorities []role.ID) []string {
	alive := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	sort.SliceStable(alive, func(i, j int) bool {
		return indexOf(priorities, alive[i].Role) < indexOf(priorities, alive[j].Role)
	})
	ids := make([]string, len(alive))
	for i, e := range alive {
		ids[i] = e.PlayerID
	}
	return ids
}

// Night returns living player ids in night resolution order.
func Night(entries []Entry) []string {
	return sortByPriority(entries, nightPriority)
}

// Day returns living player ids in day resolution order.
func Day(entries []Entry) []string {
	return sortByPriority(entries, dayPriority)
}
