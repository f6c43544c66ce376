package pysel

import (
	"math"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfsel/surfsel/libsel/uservalue"
	"github.com/surfsel/surfsel/surfsel"
)

func newWorkspace(t *testing.T) *Workspace {
	values, err := uservalue.Open(uservalue.Opts{})
	require.NoError(t, err)
	ws := &Workspace{Values: values}
	t.Cleanup(ws.Close)
	return ws
}

func TestLoadMesh(t *testing.T) {
	obj, err := py_LoadMesh(nil, py.Tuple{py.String("poly 1 normal (0, 0, 1) adj 2 selected\npoly 2 normal (0, 0, 1)")})
	require.NoError(t, err)

	n, err := py_Mesh_NumPolys(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(2), n)

	sel, err := py_Mesh_Selected(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Tuple{py.Int(1)}, sel)

	_, err = py_LoadMesh(nil, py.Tuple{py.String("poly x")})
	assert.Error(t, err)
}

func TestWorkspaceRun(t *testing.T) {
	ws := newWorkspace(t)
	cube, err := py_Cube(nil, py.Tuple{py.String("paint")})
	require.NoError(t, err)

	_, err = py_Mesh_Select(cube, py.Tuple{py.Int(1)})
	require.NoError(t, err)

	// no threshold stored yet
	th, err := py_Workspace_Threshold(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, py.None, th)
	_, err = py_Workspace_Run(ws, py.Tuple{cube, py.String("fill")})
	assert.Error(t, err)

	changed, err := py_Workspace_Run(ws, py.Tuple{cube, py.String("once"), py.Float(1.6580627893946132)})
	require.NoError(t, err)
	assert.Len(t, changed, 4)

	th, err = py_Workspace_Threshold(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Float(1.6580627893946132), th)

	changed, err = py_Workspace_Run(ws, py.Tuple{cube})
	require.NoError(t, err)
	assert.Equal(t, py.Tuple{py.Int(2)}, changed)

	sel, err := py_Mesh_Selected(cube, nil)
	require.NoError(t, err)
	assert.Len(t, sel, 6)

	_, err = py_Workspace_Run(ws, py.Tuple{cube, py.String("sideways")})
	assert.Error(t, err)
}

func TestMeshSelect(t *testing.T) {
	grid, err := py_Grid(nil, py.Tuple{py.Int(3), py.Int(2)})
	require.NoError(t, err)

	_, err = py_Mesh_Select(grid, py.Tuple{py.Tuple{py.Int(2), py.Int(6)}})
	require.NoError(t, err)
	sel, _ := py_Mesh_Selected(grid, nil)
	assert.Equal(t, py.Tuple{py.Int(2), py.Int(6)}, sel)

	_, err = py_Mesh_Select(grid, py.Tuple{py.Int(7)})
	assert.Error(t, err)

	_, err = py_Mesh_Clear(grid, nil)
	require.NoError(t, err)
	sel, _ = py_Mesh_Selected(grid, nil)
	assert.Len(t, sel, 0)

	_, err = py_Grid(nil, py.Tuple{py.Int(0), py.Int(2)})
	assert.Error(t, err)
}

func TestRunRejectsBadThreshold(t *testing.T) {
	ws := newWorkspace(t)
	cube, err := py_Cube(nil, py.Tuple{py.String("")})
	require.NoError(t, err)
	_, err = py_Mesh_Select(cube, py.Tuple{py.Int(1)})
	require.NoError(t, err)

	_, err = py_Workspace_SetThreshold(ws, py.Tuple{py.Float(0.1)})
	require.NoError(t, err)

	for _, bad := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err = py_Workspace_Run(ws, py.Tuple{cube, py.String("fill"), py.Float(bad)})
		assert.Error(t, err, "%v", bad)

		_, err = py_Workspace_SetThreshold(ws, py.Tuple{py.Float(bad)})
		assert.Error(t, err, "%v", bad)
	}

	th, err := py_Workspace_Threshold(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Float(0.1), th)

	sel, err := py_Mesh_Selected(cube, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Tuple{py.Int(1)}, sel)
}

func TestWorkspaceMaxLayers(t *testing.T) {
	ws := newWorkspace(t)
	strip, err := py_Grid(nil, py.Tuple{py.Int(10), py.Int(1)})
	require.NoError(t, err)
	_, err = py_Mesh_Select(strip, py.Tuple{py.Int(1)})
	require.NoError(t, err)

	_, err = py_Workspace_SetMaxLayers(ws, py.Tuple{py.Int(2)})
	require.NoError(t, err)
	n, err := py_Workspace_MaxLayers(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(2), n)

	changed, err := py_Workspace_Run(ws, py.Tuple{strip, py.String("fill"), py.Float(0.1)})
	require.NoError(t, err)
	assert.Equal(t, py.Tuple{py.Int(2), py.Int(3)}, changed)
}

func TestSetMaxLayers(t *testing.T) {
	t.Cleanup(func() { SetMaxLayers(0) })

	SetMaxLayers(7)
	ws, err := openWorkspace("")
	require.NoError(t, err)
	defer ws.Close()
	assert.Equal(t, 7, ws.MaxLayers)

	SetMaxLayers(-1)
	ws2, err := openWorkspace("")
	require.NoError(t, err)
	defer ws2.Close()
	assert.Equal(t, surfsel.DefaultMaxLayers, ws2.MaxLayers)
}
