package mesh

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/surfsel/surfsel/surfsel"
)

// Cube returns a six face cube with ids 1..6 (+X, -X, +Y, -Y, +Z, -Z).
// Each face neighbours the four faces it is not opposite to.
func Cube(material string) *Mesh {
	m := New("cube")
	normals := []r3.Vector{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	for i, n := range normals {
		m.Add(PolyDef{
			ID:       surfsel.PolyID(i + 1),
			Index:    -1,
			Normal:   n,
			Material: material,
		})
	}
	for i := range normals {
		for j := i + 1; j < len(normals); j++ {
			if i/2 == j/2 {
				continue // opposite faces
			}
			m.Link(surfsel.PolyID(i+1), surfsel.PolyID(j+1))
		}
	}
	return m
}

// Grid returns a cols x rows grid of quads sharing one normal, with ids 1..cols*rows in row-major order.
func Grid(cols, rows int, normal r3.Vector, material string) *Mesh {
	m := New(fmt.Sprintf("grid%dx%d", cols, rows))
	id := func(c, r int) surfsel.PolyID {
		return surfsel.PolyID(r*cols + c + 1)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Add(PolyDef{
				ID:       id(c, r),
				Index:    -1,
				Normal:   normal,
				Material: material,
			})
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				m.Link(id(c, r), id(c+1, r))
			}
			if r+1 < rows {
				m.Link(id(c, r), id(c, r+1))
			}
		}
	}
	return m
}
