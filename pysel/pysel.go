package pysel

import (
	"strings"

	"github.com/go-python/gpython/py"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
	"github.com/surfsel/surfsel/libsel/angle"
	"github.com/surfsel/surfsel/libsel/command"
	"github.com/surfsel/surfsel/libsel/grow"
	"github.com/surfsel/surfsel/libsel/mesh"
	"github.com/surfsel/surfsel/libsel/uservalue"
	"github.com/surfsel/surfsel/surfsel"
)

var (
	LIB_VERSION = "v1.2026.1"

	// max layers given to each new Workspace
	gMaxLayers = surfsel.DefaultMaxLayers
)

// SetMaxLayers sets the fill layer cap of Workspaces created after this call (<= 0 restores the default).
func SetMaxLayers(maxLayers int) {
	if maxLayers <= 0 {
		maxLayers = surfsel.DefaultMaxLayers
	}
	gMaxLayers = maxLayers
}

var (
	pyMeshType      = py.NewType("Mesh", "a polygon mesh carrying selection marks")
	pyWorkspaceType = py.NewType("Workspace", "holds the user value store that commands read their threshold from")
)

const (
	kWorkspaceAttr = "_Workspace"
)

type pyMesh struct {
	*mesh.Mesh
}

func (m pyMesh) Type() *py.Type {
	return pyMeshType
}

func (m pyMesh) M__str__() (py.Object, error) {
	return py.String(m.String()), nil
}

func (m pyMesh) M__repr__() (py.Object, error) {
	return m.M__str__()
}

func getMesh(obj py.Object) (pyMesh, error) {
	m, ok := obj.(pyMesh)
	if !ok {
		return pyMesh{}, py.ExceptionNewf(py.TypeError, "expected Mesh object (got %v)", obj.Type().Name)
	}
	return m, nil
}

// Arg 1 (str): mesh description
func py_LoadMesh(module py.Object, args py.Tuple) (py.Object, error) {
	var text string
	err := py.LoadTuple(args, []interface{}{&text})
	if err != nil {
		return nil, err
	}
	m, err := mesh.ParseMesh(text)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyMesh{m}, nil
}

// Arg 1 (str, optional): material tag
func py_Cube(module py.Object, args py.Tuple) (py.Object, error) {
	var material string
	err := py.LoadTuple(args, []interface{}{&material})
	if err != nil {
		return nil, err
	}
	return pyMesh{mesh.Cube(material)}, nil
}

// Arg 1 (int): cols
// Arg 2 (int): rows
// Arg 3 (str, optional): material tag
func py_Grid(module py.Object, args py.Tuple) (py.Object, error) {
	var (
		cols, rows int
		material   string
	)
	err := py.LoadTuple(args, []interface{}{&cols, &rows, &material})
	if err != nil {
		return nil, err
	}
	if cols <= 0 || rows <= 0 {
		return nil, py.ExceptionNewf(py.ValueError, "grid must be at least 1x1 (got %dx%d)", cols, rows)
	}
	return pyMesh{mesh.Grid(cols, rows, r3.Vector{Z: 1}, material)}, nil
}

func py_Mesh_NumPolys(self py.Object, args py.Tuple) (py.Object, error) {
	m := self.(pyMesh)
	return py.Int(m.NumPolygons()), nil
}

func py_Mesh_Selected(self py.Object, args py.Tuple) (py.Object, error) {
	m := self.(pyMesh)
	return idTuple(m.SelectedIDs()), nil
}

// Args: one or more polygon ids, or a single tuple / list of ids
func py_Mesh_Select(self py.Object, args py.Tuple) (py.Object, error) {
	m := self.(pyMesh)
	ids, err := loadIDs(args)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if m.Polygon(id) == nil {
			return nil, py.ExceptionNewf(py.KeyError, "no polygon with id %d", id)
		}
	}
	m.SelectIDs(ids...)
	return py.None, nil
}

func py_Mesh_Clear(self py.Object, args py.Tuple) (py.Object, error) {
	m := self.(pyMesh)
	m.ClearSelection()
	return py.None, nil
}

func py_Mesh_Text(self py.Object, args py.Tuple) (py.Object, error) {
	return self.(pyMesh).M__str__()
}

// Workspace holds session resources shared by the commands of a script.
type Workspace struct {
	Values    *uservalue.Store
	MaxLayers int
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func (ws *Workspace) Close() {
	if ws.Values != nil {
		ws.Values.Close()
		ws.Values = nil
	}
}

func openWorkspace(pathname string) (*Workspace, error) {
	values, err := uservalue.Open(uservalue.Opts{
		DbPathName: pathname,
	})
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Values:    values,
		MaxLayers: gMaxLayers,
	}, nil
}

// Arg 1 (str, optional): user value db pathname (omit for in-memory)
func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		var pathname string
		err := py.LoadTuple(args, []interface{}{&pathname})
		if err != nil {
			return nil, err
		}
		ws, err := openWorkspace(pathname)
		if err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

// Arg 1 (float): threshold angle in radians
func py_Workspace_SetThreshold(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	var threshold float64
	err := py.LoadTuple(args, []interface{}{&threshold})
	if err != nil {
		return nil, err
	}
	if !angle.IsThreshold(threshold) {
		return nil, py.ExceptionNewf(py.ValueError, "threshold must be positive and finite (got %v)", threshold)
	}
	if err = ws.Values.SetThreshold(s1.Angle(threshold)); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func py_Workspace_Threshold(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	threshold, err := ws.Values.Threshold()
	if errors.Is(err, surfsel.ErrConfigurationMissing) {
		return py.None, nil
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Float(threshold.Radians()), nil
}

// Arg 1 (Mesh): mesh to run on
// Arg 2 (str, optional): command selector (default "fill")
// Arg 3 (float, optional): threshold in radians to store before running
//
// Returns the ids of the polygons that changed selection.
func py_Workspace_Run(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	if len(args) == 0 {
		return nil, py.ExceptionNewf(py.TypeError, "Run() expects a Mesh")
	}
	m, err := getMesh(args[0])
	if err != nil {
		return nil, err
	}

	var (
		selector  string
		threshold float64
	)
	err = py.LoadTuple(args[1:], []interface{}{&selector, &threshold})
	if err != nil {
		return nil, err
	}

	if len(args) > 2 && !angle.IsThreshold(threshold) {
		return nil, py.ExceptionNewf(py.ValueError, "threshold must be positive and finite (got %v)", threshold)
	}

	cmd, err := command.Parse([]string{selector})
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	cmd.Threshold = threshold

	rep, err := command.Execute(cmd, command.Env{
		Scene:  m.Mesh,
		Values: ws.Values,
		Opts: grow.Opts{
			MaxLayers: ws.MaxLayers,
		},
	})
	if errors.Is(err, surfsel.ErrConfigurationMissing) {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	changed := append(rep.Selected, rep.Deselected...)
	ids := make([]surfsel.PolyID, len(changed))
	for i, poly := range changed {
		ids[i] = poly.ID()
	}
	return idTuple(ids), nil
}

// Arg 1 (int): max layers a fill may traverse (<= 0 restores the default)
func py_Workspace_SetMaxLayers(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	var maxLayers int
	err := py.LoadTuple(args, []interface{}{&maxLayers})
	if err != nil {
		return nil, err
	}
	if maxLayers <= 0 {
		maxLayers = surfsel.DefaultMaxLayers
	}
	ws.MaxLayers = maxLayers
	return py.None, nil
}

func py_Workspace_MaxLayers(self py.Object, args py.Tuple) (py.Object, error) {
	return py.Int(self.(*Workspace).MaxLayers), nil
}

func idTuple(ids []surfsel.PolyID) py.Tuple {
	tuple := make(py.Tuple, len(ids))
	for i, id := range ids {
		tuple[i] = py.Int(id)
	}
	return tuple
}

func loadIDs(args py.Tuple) ([]surfsel.PolyID, error) {
	items := []py.Object(args)
	if len(args) == 1 {
		switch seq := args[0].(type) {
		case py.Tuple:
			items = seq
		case *py.List:
			items = seq.Items
		}
	}

	ids := make([]surfsel.PolyID, 0, len(items))
	for _, item := range items {
		id, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			return nil, py.ExceptionNewf(py.ValueError, "polygon id must be >= 0 (got %d)", id)
		}
		ids = append(ids, surfsel.PolyID(id))
	}
	return ids, nil
}

func selectorsDoc() string {
	return "command selectors: " + strings.Join(command.Selectors(), ", ")
}

func init() {

	/////////////////////////////////
	// Mesh
	{
		pyMeshType.Dict["NumPolys"] = py.MustNewMethod("NumPolys", py_Mesh_NumPolys, 0, "returns the number of polygons")
		pyMeshType.Dict["Selected"] = py.MustNewMethod("Selected", py_Mesh_Selected, 0, "returns the ids of the selected polygons")
		pyMeshType.Dict["Select"] = py.MustNewMethod("Select", py_Mesh_Select, 0, "marks the given polygon ids as selected")
		pyMeshType.Dict["Clear"] = py.MustNewMethod("Clear", py_Mesh_Clear, 0, "clears the selection")
		pyMeshType.Dict["Text"] = py.MustNewMethod("Text", py_Mesh_Text, 0, "exports this mesh as a mesh description")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["SetThreshold"] = py.MustNewMethod("SetThreshold", py_Workspace_SetThreshold, 0, "stores the threshold angle (radians)")
		pyWorkspaceType.Dict["Threshold"] = py.MustNewMethod("Threshold", py_Workspace_Threshold, 0, "returns the stored threshold angle (radians) or None")
		pyWorkspaceType.Dict["SetMaxLayers"] = py.MustNewMethod("SetMaxLayers", py_Workspace_SetMaxLayers, 0, "sets the max layers a fill may traverse")
		pyWorkspaceType.Dict["MaxLayers"] = py.MustNewMethod("MaxLayers", py_Workspace_MaxLayers, 0, "returns the max layers a fill may traverse")
		pyWorkspaceType.Dict["Run"] = py.MustNewMethod("Run", py_Workspace_Run, 0, selectorsDoc())
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("LoadMesh", py_LoadMesh, 0, "parses a mesh description"),
			py.MustNewMethod("Cube", py_Cube, 0, "returns a six face cube"),
			py.MustNewMethod("Grid", py_Grid, 0, "returns a flat grid of quads"),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"SAFE_LIMIT":  py.Int(surfsel.DefaultMaxLayers),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_surfsel",
				Doc:  "select polygons by normal angle threshold",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
