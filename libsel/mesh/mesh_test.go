package mesh

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfsel/surfsel/surfsel"
)

const strip = `
# three quads bending around a corner
mesh strip
poly 10 normal (0, 0, 1) material "wood" adj 11 selected
poly 11 normal (0 0 1) material "wood" adj 12
poly 12 index 7 normal (1, 0, -1.5e-1) material "steel"
`

func TestMeshParsing(t *testing.T) {
	m, err := ParseMesh(strip)
	require.NoError(t, err)

	assert.Equal(t, "strip", m.Name)
	require.Equal(t, 3, m.NumPolygons())

	p10 := m.Polygon(10)
	p11 := m.Polygon(11)
	p12 := m.Polygon(12)
	require.NotNil(t, p10)
	require.NotNil(t, p12)

	assert.Equal(t, 0, p10.Index())
	assert.Equal(t, 1, p11.Index())
	assert.Equal(t, 7, p12.Index())
	assert.Equal(t, "steel", p12.MaterialTag())
	assert.Equal(t, r3.Vector{X: 1, Y: 0, Z: -0.15}, p12.Normal())

	// adjacency is symmetric
	assert.Len(t, p10.Neighbours(), 1)
	assert.Len(t, p11.Neighbours(), 2)
	assert.Len(t, p12.Neighbours(), 1)
	assert.Equal(t, surfsel.PolyID(11), p12.Neighbours()[0].ID())

	assert.Equal(t, []surfsel.PolyID{10}, m.SelectedIDs())
}

func TestMeshRoundTrip(t *testing.T) {
	m, err := ParseMesh(strip)
	require.NoError(t, err)
	m.SelectIDs(12)

	m2, err := ParseMesh(m.String())
	require.NoError(t, err)
	assert.Equal(t, m.String(), m2.String())
	assert.Equal(t, []surfsel.PolyID{10, 12}, m2.SelectedIDs())
}

func TestMeshErrors(t *testing.T) {
	_, err := ParseMesh(`poly 1 normal (0, 0, 1) adj 2`)
	assert.ErrorIs(t, err, surfsel.ErrBadMesh)

	_, err = ParseMesh("poly 1 normal (0, 0, 1)\npoly 1 normal (0, 0, 1)")
	assert.ErrorIs(t, err, surfsel.ErrBadMesh)

	_, err = ParseMesh(`poly 1 normal (0, 0)`)
	assert.ErrorIs(t, err, surfsel.ErrBadMesh)

	_, err = ParseMesh(`poly 1 index -3 normal (0, 0, 1)`)
	assert.ErrorIs(t, err, surfsel.ErrBadMesh)
}

func TestMeshNames(t *testing.T) {
	for _, name := range []string{"strip", "left wing", "2nd-pass", `say "hi"`} {
		m := New(name)
		_, err := m.Add(PolyDef{ID: 1, Index: 4, Normal: r3.Vector{Z: 1}})
		require.NoError(t, err)

		m2, err := ParseMesh(m.String())
		require.NoError(t, err, name)
		assert.Equal(t, name, m2.Name)
		assert.Equal(t, 4, m2.Polygon(1).Index())
	}

	m, err := ParseMesh(`mesh "two words"` + "\npoly 1 normal (0, 0, 1)")
	require.NoError(t, err)
	assert.Equal(t, "two words", m.Name)
}

func TestShapes(t *testing.T) {
	cube := Cube("")
	require.Equal(t, 6, cube.NumPolygons())
	for _, face := range cube.Polygons() {
		assert.Len(t, face.Neighbours(), 4)
		for _, nb := range face.Neighbours() {
			assert.Equal(t, 0.0, face.Normal().Dot(nb.Normal()))
		}
	}

	grid := Grid(3, 2, r3.Vector{Z: 1}, "")
	require.Equal(t, 6, grid.NumPolygons())
	assert.Len(t, grid.Polygon(1).Neighbours(), 2)
	assert.Len(t, grid.Polygon(2).Neighbours(), 3)
}

func TestHostMarks(t *testing.T) {
	m := Cube("")
	m.Select(m.Polygon(3))
	m.SelectIDs(1, 99)
	assert.Equal(t, []surfsel.PolyID{1, 3}, m.SelectedIDs())

	sel := m.SelectedPolygons()
	require.Len(t, sel, 2)
	assert.Equal(t, surfsel.PolyID(1), sel[0].ID())

	m.Deselect(m.Polygon(1))
	assert.False(t, m.IsSelected(1))
	m.ClearSelection()
	assert.Empty(t, m.SelectedIDs())
}
