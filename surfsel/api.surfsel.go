package surfsel

import (
	"github.com/golang/geo/r3"
)

const (

	// DefaultMaxLayers caps the number of layers a fill may traverse.
	DefaultMaxLayers = 500

	// ThresholdValueName is the user value holding the threshold angle (radians).
	ThresholdValueName = "h3d_sba_thresholdAngle"
)

// PolyID uniquely and stably identifies a polygon within its host.
type PolyID uint64

// Polygon is a mesh face as seen by the region grow engine.
//
// Polygons are owned by the host; the engine only holds references and never edits topology.
type Polygon interface {
	ID() PolyID

	// Index orders polygons; it is only used to canonize polygon pairs.
	Index() int

	// Normal is the direction the polygon faces.
	Normal() r3.Vector

	// MaterialTag identifies the surface material assigned to this polygon.
	MaterialTag() string

	// Neighbours returns the polygons sharing an edge with this polygon.
	Neighbours() []Polygon
}

// Host applies selection mutations decided by the engine.
type Host interface {
	Select(poly Polygon)
	Deselect(poly Polygon)
}

// SelectionSource enumerates the polygons currently selected in a host, in host order.
type SelectionSource interface {
	SelectedPolygons() []Polygon
}

// Scene is a host that can both enumerate and mutate its polygon selection.
type Scene interface {
	Host
	SelectionSource
}

// Validator decides if a neighbour polygon may join a region, given the polygon it was discovered from.
type Validator interface {
	Evaluate(from, to Polygon) bool
}

// Op is a core region operation.
type Op byte

const (
	Op_ExpandFill Op = iota
	Op_ExpandOnce
	Op_ContractOnce
	Op_SetThreshold // host-side edit; runs no traversal
)

func (op Op) String() string {
	switch op {
	case Op_ExpandFill:
		return "expand-fill"
	case Op_ExpandOnce:
		return "expand-once"
	case Op_ContractOnce:
		return "contract-once"
	case Op_SetThreshold:
		return "set-threshold"
	}
	return "?"
}

// Rule names an acceptance predicate from the validator library.
type Rule byte

const (
	Rule_AngleOnly Rule = iota
	Rule_SameMaterial
	Rule_MaterialThrough
)

func (rule Rule) String() string {
	switch rule {
	case Rule_AngleOnly:
		return "angle"
	case Rule_SameMaterial:
		return "same-material"
	case Rule_MaterialThrough:
		return "material-through"
	}
	return "?"
}

// Command is a parsed command line selector: one core op plus the validator rule it runs with.
type Command struct {
	Selector  string  // selector as given
	Op        Op      // which operation to perform
	Rule      Rule    // which validator to use
	Threshold float64 // if non-zero, overwrites the stored threshold (radians) before running; must be positive and finite
}
