package kill

import "testing"

func TestManagerKill_IdempotentPerPhase(t *testing.T) {
	m := NewManager()
	m.Kill("p1")
	m.Kill("p1")
	m.Kill("p2")

	var deaths []string
	applied := m.Apply(func(id string) { deaths = append(deaths, id) })
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	if len(deaths) != 2 || deaths[0] != "p1" || deaths[1] != "p2" {
		t.Fatalf("deaths = %v, want [p1 p2] exactly once each", deaths)
	}
}

func TestManagerApply_ClearsQueue(t *testing.T) {
	m := NewManager()
	m.Kill("p1")
	m.Apply(func(string) {})
	if m.Queued("p1") {
		t.Fatal("victim still queued after Apply")
	}
	if n := m.Apply(func(string) { t.Fatal("die called on empty queue") }); n != 0 {
		t.Fatalf("second Apply applied %d deaths", n)
	}
}

func TestRelations_MutualClearing(t *testing.T) {
	r := NewRelations()
	r.SetHealed("patient", "doc")
	r.SetJustified("accused", "judge")

	if doc, ok := r.HealedBy("patient"); !ok || doc != "doc" {
		t.Fatalf("healed-by = %q/%v, want doc", doc, ok)
	}

	r.ClearSource("doc")
	if _, ok := r.HealedBy("patient"); ok {
		t.Fatal("healed-by survives canceling the doctor's activity")
	}
	if _, ok := r.JustifiedBy("accused"); !ok {
		t.Fatal("unrelated justify relation was cleared")
	}
}

func TestRelations_ScopedClearing(t *testing.T) {
	r := NewRelations()
	r.SetHealed("p1", "doc")

	r.ClearSourceIfTarget("doc", "p2")
	if _, ok := r.HealedBy("p1"); !ok {
		t.Fatal("scoped clear removed a relation with a different target")
	}

	r.ClearSourceIfTarget("doc", "p1")
	if _, ok := r.HealedBy("p1"); ok {
		t.Fatal("scoped clear kept the matching relation")
	}
}
