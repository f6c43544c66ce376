package grow

import (
	"github.com/surfsel/surfsel/libsel/selection"
	"github.com/surfsel/surfsel/surfsel"
)

// NewEngine seeds a region grow engine with the polygons currently selected in the host.
//
// An Engine serves exactly one command: build a new one for each invocation.
// If host is nil, the engine decides selections without applying them anywhere.
func NewEngine(seeds []surfsel.Polygon, host surfsel.Host, opts Opts) *Engine {
	if opts.MaxLayers <= 0 {
		opts.MaxLayers = surfsel.DefaultMaxLayers
	}
	if host == nil {
		host = nopHost{}
	}
	return &Engine{
		opts:  opts,
		host:  host,
		state: selection.NewState(seeds),
	}
}

// Opts specifies params for a region grow Engine
type Opts struct {
	MaxLayers int // max number of layers a fill may consume (0 denotes surfsel.DefaultMaxLayers)
}

// FillResult reports what an ExpandFill did.
type FillResult struct {
	Added  []surfsel.Polygon // polygons the host was told to select, in emission order
	Layers int               // number of frontier layers consumed
	Capped bool              // set if the fill stopped at Opts.MaxLayers with frontier remaining
}

type nopHost struct{}

func (nopHost) Select(surfsel.Polygon)   {}
func (nopHost) Deselect(surfsel.Polygon) {}
