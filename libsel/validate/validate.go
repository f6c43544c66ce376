package validate

import (
	"github.com/golang/geo/s1"
	"github.com/surfsel/surfsel/libsel/angle"
	"github.com/surfsel/surfsel/libsel/selection"
	"github.com/surfsel/surfsel/surfsel"
)

// AngleOnly accepts a neighbour whose normal is within Threshold of the polygon it was discovered from.
type AngleOnly struct {
	Threshold s1.Angle
}

func (v AngleOnly) Evaluate(from, to surfsel.Polygon) bool {
	return angle.WithinThreshold(from.Normal(), to.Normal(), v.Threshold)
}

// SameMaterial is AngleOnly restricted to neighbours sharing the material tag of the polygon they were discovered from.
type SameMaterial struct {
	Threshold s1.Angle
}

func (v SameMaterial) Evaluate(from, to surfsel.Polygon) bool {
	if from.MaterialTag() != to.MaterialTag() {
		return false
	}
	return angle.WithinThreshold(from.Normal(), to.Normal(), v.Threshold)
}

// MaterialThrough is AngleOnly restricted to neighbours carrying any material tag found in the initial seed.
type MaterialThrough struct {
	Threshold s1.Angle
	Materials map[string]struct{}
}

func (v MaterialThrough) Evaluate(from, to surfsel.Polygon) bool {
	if _, ok := v.Materials[to.MaterialTag()]; !ok {
		return false
	}
	return angle.WithinThreshold(from.Normal(), to.Normal(), v.Threshold)
}

// Func adapts an ordinary function to a surfsel.Validator.
type Func func(from, to surfsel.Polygon) bool

func (fn Func) Evaluate(from, to surfsel.Polygon) bool {
	return fn(from, to)
}

// For returns the validator for the given rule.  MaterialThrough draws its materials from the seed of st.
func For(rule surfsel.Rule, threshold s1.Angle, st *selection.State) surfsel.Validator {
	switch rule {
	case surfsel.Rule_SameMaterial:
		return SameMaterial{Threshold: threshold}
	case surfsel.Rule_MaterialThrough:
		return MaterialThrough{
			Threshold: threshold,
			Materials: st.SeedMaterials(),
		}
	default:
		return AngleOnly{Threshold: threshold}
	}
}
