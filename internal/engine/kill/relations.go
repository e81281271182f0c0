package kill

// Relations tracks the protection back-references of the current phase as a
// relation table (target -> source) instead of mutable cross-pointers, so
// cancellation from either side is a single removal.
type Relations struct {
	healedBy    map[string]string // target id -> doctor id
	justifiedBy map[string]string // target id -> judge id
}

// NewRelations creates empty relation tables.
func NewRelations() *Relations {
	return &Relations{
		healedBy:    make(map[string]string),
		justifiedBy: make(map[string]string),
	}
}

// SetHealed links a target to the doctor protecting them this phase.
func (r *Relations) SetHealed(target, doctor string) {
	r.healedBy[target] = doctor
}

// HealedBy returns the doctor protecting target this phase, if any.
func (r *Relations) HealedBy(target string) (string, bool) {
	doctor, ok := r.healedBy[target]
	return doctor, ok
}

// SetJustified links a target to the judge pardoning them this phase.
func (r *Relations) SetJustified(target, judge string) {
	r.justifiedBy[target] = judge
}

// JustifiedBy returns the judge pardoning target this phase, if any.
func (r *Relations) JustifiedBy(target string) (string, bool) {
	judge, ok := r.justifiedBy[target]
	return judge, ok
}

// ClearSource removes every relation sourced from the given player, e.g.
// when a doctor's activity is canceled the patient's healed-by link must go
// with it.
func (r *Relations) ClearSource(source string) {
	for target, s := range r.healedBy {
		if s == source {
			delete(r.healedBy, target)
		}
	}
	for target, s := range r.justifiedBy {
		if s == source {
			delete(r.justifiedBy, target)
		}
	}
}

// ClearSourceIfTarget removes relations sourced from source only where they
// point at target. Used for scoped cancellation ("cancel only if target is X").
func (r *Relations) ClearSourceIfTarget(source, target string) {
	if r.healedBy[target] == source {
		delete(r.healedBy, target)
	}
	if r.justifiedBy[target] == source {
		delete(r.justifiedBy, target)
	}
}

// Reset empties all relation tables at phase end.
func (r *Relations) Reset() {
	r.healedBy = make(map[string]string)
	r.justifiedBy = make(map[string]string)
}
