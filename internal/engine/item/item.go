// Package item defines the one-shot purchasable effects.
package item

// ID identifies an item kind.
type ID string

const (
	// Mask cancels every activity targeting its owner for one night.
	Mask ID = "mask"
)

// Spec is a catalog entry.
type Spec struct {
	ID   ID
	Cost int64
}

// Catalog lists the items available for purchase, in shop ordinal order.
var Catalog = []Spec{
	{ID: Mask, Cost: 20},
}

// ByOrdinal returns the catalog entry for a 1-based shop ordinal.
func ByOrdinal(ordinal int) (Spec, bool) {
	if ordinal < 1 || ordinal > len(Catalog) {
		return Spec{}, false
	}
	return Catalog[ordinal-1], true
}

// ByID returns the catalog entry for an item id.
func ByID(id ID) (Spec, bool) {
	for _, spec := range Catalog {
		if spec.ID == id {
			return spec, true
		}
	}
	return Spec{}, false
}

// Instance is an owned item. It stays active until used once.
type Instance struct {
	Spec   Spec
	Active bool
}

// NewInstance creates an active owned copy of a catalog entry.
func NewInstance(spec Spec) *Instance {
	return &Instance{Spec: spec, Active: true}
}

// Use deactivates the instance. It reports whether the item was still
// active; a spent item has no further effect.
func (i *Instance) Use() bool {
	if !i.Active {
		return false
	}
	i.Active = false
	return true
}
