package grow

import (
	"github.com/plan-systems/klog"
	"github.com/surfsel/surfsel/libsel/selection"
	"github.com/surfsel/surfsel/surfsel"
)

type Engine struct {
	opts  Opts
	host  surfsel.Host
	state *selection.State
}

// State exposes the selection bookkeeping of this engine.
func (eng *Engine) State() *selection.State {
	return eng.state
}

// ExpandOnce adds a single breadth-first layer around the current selection.
//
// Every neighbour of a selected polygon that v accepts lands in Preselection and is selected on the host.
// Preselection is not merged into Selected: it remains the one-shot result of this call.
func (eng *Engine) ExpandOnce(v surfsel.Validator) []surfsel.Polygon {
	st := eng.state

	// The seed copy in Preselection is only the first frontier of a fill
	st.Preselection.Clear()

	for _, poly := range st.Selected.Polygons() {
		for _, nb := range poly.Neighbours() {
			if st.Selected.Contains(nb) || st.Preselection.Contains(nb) {
				continue
			}
			if !v.Evaluate(poly, nb) {
				continue
			}
			st.Preselection.Add(nb)
		}
	}

	layer := st.Preselection.Polygons()
	eng.selectOnHost(layer)

	klog.V(2).Infof("expand once: %d selected, %d added", st.Selected.Len(), len(layer))
	return layer
}

// ExpandFill repeats layer expansion until no neighbour qualifies or Opts.MaxLayers is reached.
//
// Each layer's frontier is committed to Selected before the next layer is scanned, and
// rejected (frontier, neighbour) pairs are remembered so they are never evaluated twice.
func (eng *Engine) ExpandFill(v surfsel.Validator) FillResult {
	st := eng.state
	res := FillResult{}

	for st.AdvanceFrontier() > 0 {
		if res.Layers >= eng.opts.MaxLayers {
			res.Capped = true
			klog.Warningf("expand fill: safe limit of %d layers reached (%d polygons in frontier)", eng.opts.MaxLayers, st.EdgeOfSelection.Len())
			break
		}
		res.Layers++

		for _, poly := range st.EdgeOfSelection.Polygons() {
			for _, nb := range poly.Neighbours() {
				if st.IsClaimed(nb) || st.FailedPairs.Contains(poly, nb) {
					continue
				}
				if v.Evaluate(poly, nb) {
					st.Preselection.Add(nb)
				} else {
					st.FailedPairs.TryAdd(poly, nb)
				}
			}
		}

		layer := st.Preselection.Polygons()
		eng.selectOnHost(layer)
		res.Added = append(res.Added, layer...)

		klog.V(2).Infof("expand fill: layer %d, frontier %d, added %d", res.Layers, st.EdgeOfSelection.Len(), len(layer))
	}

	return res
}

// ContractOnce removes every rim polygon having at least one outside neighbour that v rejects.
//
// Interior polygons (no neighbours outside Selected) are never removed.
func (eng *Engine) ContractOnce(v surfsel.Validator) []surfsel.Polygon {
	st := eng.state
	rim := st.Rim()

	var removed []surfsel.Polygon
	for _, poly := range rim {
		for _, nb := range poly.Neighbours() {
			if st.Selected.Contains(nb) {
				continue
			}
			if !v.Evaluate(poly, nb) {
				removed = append(removed, poly)
				break
			}
		}
	}

	for _, poly := range removed {
		st.Selected.Remove(poly)
		st.Preselection.Remove(poly)
		eng.host.Deselect(poly)
	}

	klog.V(2).Infof("contract once: rim %d, removed %d", len(rim), len(removed))
	return removed
}

func (eng *Engine) selectOnHost(polys []surfsel.Polygon) {
	for _, poly := range polys {
		eng.host.Select(poly)
	}
}
