package mesh

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/surfsel/surfsel/surfsel"
)

func New(name string) *Mesh {
	return &Mesh{
		Name:     name,
		byID:     make(map[surfsel.PolyID]*Polygon),
		selected: make(map[surfsel.PolyID]struct{}),
	}
}

// Add adds a polygon with no neighbours to this Mesh.
func (m *Mesh) Add(def PolyDef) (*Polygon, error) {
	if _, exists := m.byID[def.ID]; exists {
		return nil, errors.Wrapf(surfsel.ErrBadMesh, "duplicate polygon id %d", def.ID)
	}
	index := def.Index
	if index < 0 {
		index = len(m.polys)
	}
	poly := &Polygon{
		id:       def.ID,
		index:    index,
		normal:   def.Normal,
		material: def.Material,
	}
	m.polys = append(m.polys, poly)
	m.byID[poly.id] = poly
	if def.Selected {
		m.selected[poly.id] = struct{}{}
	}
	return poly, nil
}

// Link makes polygons a and b neighbours of each other.  Linking a polygon to itself has no effect.
func (m *Mesh) Link(a, b surfsel.PolyID) error {
	pa := m.byID[a]
	pb := m.byID[b]
	if pa == nil || pb == nil {
		return errors.Wrapf(surfsel.ErrBadMesh, "link %d-%d references an unknown polygon", a, b)
	}
	if pa == pb {
		return nil
	}
	pa.addNeighbour(pb)
	pb.addNeighbour(pa)
	return nil
}

func (poly *Polygon) addNeighbour(nb *Polygon) {
	for _, existing := range poly.neighbours {
		if existing.ID() == nb.id {
			return
		}
	}
	poly.neighbours = append(poly.neighbours, nb)
}

// Polygon returns the polygon having the given id, or nil if not found.
func (m *Mesh) Polygon(id surfsel.PolyID) *Polygon {
	return m.byID[id]
}

// Polygons returns all polygons in the order they were added.
func (m *Mesh) Polygons() []surfsel.Polygon {
	polys := make([]surfsel.Polygon, len(m.polys))
	for i, poly := range m.polys {
		polys[i] = poly
	}
	return polys
}

func (m *Mesh) NumPolygons() int {
	return len(m.polys)
}

func (m *Mesh) Select(poly surfsel.Polygon) {
	if _, owned := m.byID[poly.ID()]; owned {
		m.selected[poly.ID()] = struct{}{}
	}
}

func (m *Mesh) Deselect(poly surfsel.Polygon) {
	delete(m.selected, poly.ID())
}

// SelectIDs marks the given polygons as selected, ignoring unknown ids.
func (m *Mesh) SelectIDs(ids ...surfsel.PolyID) {
	for _, id := range ids {
		if poly := m.byID[id]; poly != nil {
			m.Select(poly)
		}
	}
}

func (m *Mesh) ClearSelection() {
	for id := range m.selected {
		delete(m.selected, id)
	}
}

func (m *Mesh) IsSelected(id surfsel.PolyID) bool {
	_, selected := m.selected[id]
	return selected
}

// SelectedPolygons returns the selected polygons in mesh order.
func (m *Mesh) SelectedPolygons() []surfsel.Polygon {
	var polys []surfsel.Polygon
	for _, poly := range m.polys {
		if m.IsSelected(poly.id) {
			polys = append(polys, poly)
		}
	}
	return polys
}

// SelectedIDs returns the ids of the selected polygons, sorted ascending.
func (m *Mesh) SelectedIDs() []surfsel.PolyID {
	ids := make([]surfsel.PolyID, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (poly *Polygon) ID() surfsel.PolyID {
	return poly.id
}

func (poly *Polygon) Index() int {
	return poly.index
}

func (poly *Polygon) Normal() r3.Vector {
	return poly.normal
}

func (poly *Polygon) MaterialTag() string {
	return poly.material
}

func (poly *Polygon) Neighbours() []surfsel.Polygon {
	return poly.neighbours
}

func (vec vectorExpr) vector() r3.Vector {
	return r3.Vector{X: vec.X, Y: vec.Y, Z: vec.Z}
}
