package mesh

import (
	"github.com/golang/geo/r3"
	"github.com/surfsel/surfsel/surfsel"
)

// Mesh is an in-memory polygon mesh that plays the role of a host scene:
// it owns polygons and their adjacency, and carries the selection marks the engine mutates.
type Mesh struct {
	Name     string
	polys    []*Polygon
	byID     map[surfsel.PolyID]*Polygon
	selected map[surfsel.PolyID]struct{}
}

// Polygon is a face of a Mesh.
type Polygon struct {
	id         surfsel.PolyID
	index      int
	normal     r3.Vector
	material   string
	neighbours []surfsel.Polygon
}

// PolyDef specifies a polygon to add to a Mesh.
type PolyDef struct {
	ID       surfsel.PolyID
	Index    int // if < 0, the polygon's position in the mesh is used
	Normal   r3.Vector
	Material string
	Selected bool
}

// Format of a mesh description:
//
//	# comment
//	mesh <name | "name">
//	poly <id> [index <int >= 0>] normal (<x>, <y>, <z>) [material "<tag>"] [adj <id>*] [selected]
//
// Adjacency is symmetric: listing b as a neighbour of a also makes a a neighbour of b.
type meshExpr struct {
	Name  *string     `("mesh" (@Ident | @String))?`
	Polys []*polyExpr `@@*`
}

type polyExpr struct {
	ID       uint64     `"poly" @Number`
	Index    *int       `("index" @Number)?`
	Normal   vectorExpr `"normal" @@`
	Material *string    `("material" @String)?`
	Adj      []uint64   `("adj" @Number*)?`
	Selected bool       `@"selected"?`
}

type vectorExpr struct {
	X float64 `"(" @Number ","?`
	Y float64 `    @Number ","?`
	Z float64 `    @Number ")"`
}
