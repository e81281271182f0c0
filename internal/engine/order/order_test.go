package order

import (
	"reflect"
	"testing"

	"github.com/louisbranch/omerta/internal/engine/role"
)

func TestNight_PriorityAndStability(t *testing.T) {
	entries := []Entry{
		{PlayerID: "p1", Role: role.Doctor, Alive: true},
		{PlayerID: "p2", Role: role.Citizen, Alive: true},
		{PlayerID: "p3", Role: role.Hoodlum, Alive: true},
		{PlayerID: "p4", Role: role.Mafioso, Alive: true},
		{PlayerID: "p5", Role: role.Ninja, Alive: true},
		{PlayerID: "p6", Role: role.Citizen, Alive: true},
	}
	got := Night(entries)
	// Ninja before hoodlum before doctor; unlisted roles (citizen, mafioso)
	// last, in roster order.
	want := []string{"p5", "p3", "p1", "p2", "p4", "p6"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("night order = %v, want %v", got, want)
	}
}

func TestNight_ExcludesDead(t *testing.T) {
	entries := []Entry{
		{PlayerID: "p1", Role: role.Ninja, Alive: false},
		{PlayerID: "p2", Role: role.Doctor, Alive: true},
	}
	got := Night(entries)
	if !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("night order = %v, dead players must be excluded", got)
	}
}

func TestDay_JudgeBeforeElder(t *testing.T) {
	entries := []Entry{
		{PlayerID: "p1", Role: role.Elder, Alive: true},
		{PlayerID: "p2", Role: role.Citizen, Alive: true},
		{PlayerID: "p3", Role: role.Judge, Alive: true},
	}
	got := Day(entries)
	want := []string{"p3", "p1", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("day order = %v, want %v", got, want)
	}
}
