package command

import (
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/surfsel/surfsel/libsel/angle"
	"github.com/surfsel/surfsel/libsel/grow"
	"github.com/surfsel/surfsel/libsel/uservalue"
	"github.com/surfsel/surfsel/libsel/validate"
	"github.com/surfsel/surfsel/surfsel"
)

type entry struct {
	op   surfsel.Op
	rule surfsel.Rule
}

var gSelectors = map[string]entry{
	"":                      {surfsel.Op_ExpandFill, surfsel.Rule_AngleOnly},
	"fill":                  {surfsel.Op_ExpandFill, surfsel.Rule_AngleOnly},
	"once":                  {surfsel.Op_ExpandOnce, surfsel.Rule_AngleOnly},
	"set":                   {surfsel.Op_SetThreshold, surfsel.Rule_AngleOnly},
	"fill-same-material":    {surfsel.Op_ExpandFill, surfsel.Rule_SameMaterial},
	"once-same-material":    {surfsel.Op_ExpandOnce, surfsel.Rule_SameMaterial},
	"fill-material-through": {surfsel.Op_ExpandFill, surfsel.Rule_MaterialThrough},
	"once-material-through": {surfsel.Op_ExpandOnce, surfsel.Rule_MaterialThrough},
	"contract":              {surfsel.Op_ContractOnce, surfsel.Rule_SameMaterial},
}

// Selectors returns the recognized selectors (excluding the empty default).
func Selectors() []string {
	return []string{
		"fill",
		"once",
		"set",
		"fill-same-material",
		"once-same-material",
		"fill-material-through",
		"once-material-through",
		"contract",
	}
}

// Parse maps positional args to a Command.
//
//	args[0]: selector (see Selectors); omitted or empty denotes "fill".
//	         A legacy run-once flag is also accepted: containing "true" runs once, "false" fills.
//	args[1]: optional threshold (radians) to store before running.
func Parse(args []string) (surfsel.Command, error) {
	cmd := surfsel.Command{}
	if len(args) > 0 {
		cmd.Selector = args[0]
	}

	sel := strings.ToLower(strings.TrimSpace(cmd.Selector))
	e, known := gSelectors[sel]
	if !known {
		switch {
		case strings.Contains(sel, "true"):
			e = gSelectors["once"]
		case strings.Contains(sel, "false"):
			e = gSelectors["fill"]
		default:
			return cmd, errors.Wrapf(surfsel.ErrUnknownCommand, "%q", cmd.Selector)
		}
	}
	cmd.Op = e.op
	cmd.Rule = e.rule

	if len(args) > 1 && cmd.Op != surfsel.Op_SetThreshold {
		threshold, err := strconv.ParseFloat(args[1], 64)
		if err != nil || !angle.IsThreshold(threshold) {
			return cmd, errors.Errorf("threshold %q is not a positive finite angle in radians", args[1])
		}
		cmd.Threshold = threshold
	}

	return cmd, nil
}

// Env is what a Command needs from its host.
type Env struct {
	Scene  surfsel.Scene      // enumerates seeds and applies selection mutations
	Values *uservalue.Store   // persisted threshold
	Prompt uservalue.Prompter // interactive threshold edit (nil abandons the edit)
	Opts   grow.Opts
}

// Report summarizes an executed Command.
type Report struct {
	Command    surfsel.Command
	Threshold  s1.Angle
	Selected   []surfsel.Polygon // polygons the host was told to select
	Deselected []surfsel.Polygon // polygons the host was told to deselect
	Layers     int               // layers consumed by a fill
	Capped     bool              // set if a fill hit the safe limit
}

// Execute runs cmd against env.
//
// A missing threshold fails with surfsel.ErrConfigurationMissing before anything is traversed.
func Execute(cmd surfsel.Command, env Env) (Report, error) {
	rep := Report{
		Command: cmd,
	}
	if env.Values == nil {
		return rep, errors.Wrap(surfsel.ErrConfigurationMissing, "no user value store")
	}

	if cmd.Op == surfsel.Op_SetThreshold {
		prompt := env.Prompt
		if prompt == nil {
			prompt = abandon{}
		}
		threshold, err := env.Values.EditThreshold(prompt)
		rep.Threshold = threshold
		return rep, err
	}

	if cmd.Threshold != 0 {
		if err := env.Values.SetThreshold(s1.Angle(cmd.Threshold)); err != nil {
			return rep, err
		}
	}

	threshold, err := env.Values.Threshold()
	if err != nil {
		return rep, err
	}
	rep.Threshold = threshold

	if env.Scene == nil {
		return rep, errors.New("no scene to select from")
	}

	klog.V(1).Infof("%v %v:  angle: %.4g  thresholdRad: %.6g", cmd.Op, cmd.Rule, threshold.Degrees(), threshold.Radians())

	eng := grow.NewEngine(env.Scene.SelectedPolygons(), env.Scene, env.Opts)
	v := validate.For(cmd.Rule, threshold, eng.State())

	switch cmd.Op {
	case surfsel.Op_ExpandOnce:
		rep.Selected = eng.ExpandOnce(v)
	case surfsel.Op_ExpandFill:
		res := eng.ExpandFill(v)
		rep.Selected = res.Added
		rep.Layers = res.Layers
		rep.Capped = res.Capped
	case surfsel.Op_ContractOnce:
		rep.Deselected = eng.ContractOnce(v)
	}

	return rep, nil
}

// abandon is the Prompter of a host with no interactive surface.
type abandon struct{}

func (abandon) PromptAngle(string, s1.Angle) (s1.Angle, error) {
	return 0, surfsel.ErrHostValueUnavailable
}
