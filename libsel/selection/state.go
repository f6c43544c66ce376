package selection

import (
	"github.com/surfsel/surfsel/surfsel"
)

// State holds the mutable bookkeeping of a single region grow run.
//
// A State is built fresh for every command and discarded when the command completes.
type State struct {
	Selected        *PolySet // polygons committed to the grown region
	Preselection    *PolySet // polygons accepted in the current layer, not yet committed
	EdgeOfSelection *PolySet // the previous layer's frontier
	FailedPairs     PairSet  // pairs a validator has rejected

	seedMaterials map[string]struct{}
}

// NewState seeds a State with the polygons currently selected in the host.
//
// The seed itself is the first frontier, so Preselection starts as a copy of Selected.
func NewState(seeds []surfsel.Polygon) *State {
	st := &State{
		Selected:        NewPolySet(seeds...),
		EdgeOfSelection: NewPolySet(),
		FailedPairs:     NewPairSet(),
		seedMaterials:   make(map[string]struct{}, 4),
	}
	st.Preselection = st.Selected.Clone()

	for _, poly := range seeds {
		st.seedMaterials[poly.MaterialTag()] = struct{}{}
	}
	return st
}

// HasSeedMaterial returns true if tag was assigned to any polygon of the initial seed.
func (st *State) HasSeedMaterial(tag string) bool {
	_, has := st.seedMaterials[tag]
	return has
}

// SeedMaterials returns the set of material tags observed across the initial seed.
func (st *State) SeedMaterials() map[string]struct{} {
	return st.seedMaterials
}

// IsClaimed returns true if poly is in Selected, Preselection, or EdgeOfSelection.
func (st *State) IsClaimed(poly surfsel.Polygon) bool {
	id := poly.ID()
	return st.Selected.Has(id) || st.Preselection.Has(id) || st.EdgeOfSelection.Has(id)
}

// AdvanceFrontier makes the current Preselection the new EdgeOfSelection, commits it to
// Selected, and clears Preselection.  Returns the size of the new frontier.
func (st *State) AdvanceFrontier() int {
	st.EdgeOfSelection = st.Preselection
	st.Selected.Merge(st.EdgeOfSelection)
	st.Preselection = NewPolySet()
	return st.EdgeOfSelection.Len()
}

// Rim returns the polygons of Selected having at least one neighbour outside Selected.
func (st *State) Rim() []surfsel.Polygon {
	var rim []surfsel.Polygon
	for _, poly := range st.Selected.Polygons() {
		for _, nb := range poly.Neighbours() {
			if !st.Selected.Contains(nb) {
				rim = append(rim, poly)
				break
			}
		}
	}
	return rim
}
