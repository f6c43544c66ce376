package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/plan-systems/klog"
	"github.com/surfsel/surfsel/libsel/command"
	"github.com/surfsel/surfsel/libsel/grow"
	"github.com/surfsel/surfsel/libsel/mesh"
	"github.com/surfsel/surfsel/libsel/uservalue"
	"github.com/surfsel/surfsel/surfsel"
)

var (
	meshPath  = flag.String("mesh", "-", "mesh description to select on (\"-\" reads stdin)")
	outPath   = flag.String("out", "-", "where to write the resulting mesh (\"-\" writes stdout, empty skips)")
	dbPath    = flag.String("db", defaultDbPath(), "user value db pathname (empty for in-memory)")
	script    = flag.String("script", "", "runs the given gpython script (\"-\" starts a REPL)")
	maxLayers = flag.Int("max-layers", surfsel.DefaultMaxLayers, "max layers a fill may traverse")
	verbosity = flag.Int("verbose", 1, "log verbosity")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(*verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	var err error
	if len(*script) > 0 {
		opts := scriptOpts{
			Pathname:  *script,
			DbPath:    *dbPath,
			MaxLayers: *maxLayers,
		}
		if opts.Pathname == "-" {
			opts.Pathname = ""
		}
		err = go_gpython(opts)
	} else {
		err = runCommand(flag.Args())
	}

	if err != nil {
		klog.Error(err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] [selector [threshold]]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(out, "selectors: %s (default: fill)\n\n", strings.Join(command.Selectors(), ", "))
	flag.PrintDefaults()
}

func defaultDbPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "surfsel", "uservalues")
}

func runCommand(args []string) error {
	cmd, err := command.Parse(args)
	if err != nil {
		return err
	}

	if len(*dbPath) > 0 {
		os.MkdirAll(filepath.Dir(*dbPath), 0700)
	}
	values, err := uservalue.Open(uservalue.Opts{
		DbPathName: *dbPath,
	})
	if err != nil {
		return err
	}
	defer values.Close()

	env := command.Env{
		Values: values,
		Prompt: uservalue.LinePrompter{
			In:  os.Stdin,
			Out: os.Stderr,
		},
		Opts: grow.Opts{
			MaxLayers: *maxLayers,
		},
	}

	var m *mesh.Mesh
	if cmd.Op != surfsel.Op_SetThreshold {
		m, err = loadMesh(*meshPath)
		if err != nil {
			return err
		}
		env.Scene = m
	}

	klog.V(1).Info("Running...")
	rep, err := command.Execute(cmd, env)
	if err != nil {
		return err
	}
	if rep.Capped {
		klog.Warning("Safe limit reached.")
	}

	if m != nil {
		klog.Infof("%v: selected %d, deselected %d, layers %d", cmd.Op, len(rep.Selected), len(rep.Deselected), rep.Layers)
		if err = writeMesh(m, *outPath); err != nil {
			return err
		}
	}
	klog.V(1).Info("Done.")
	return nil
}

func loadMesh(pathname string) (*mesh.Mesh, error) {
	var in io.Reader = os.Stdin
	if pathname != "-" {
		file, err := os.Open(pathname)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}
	return mesh.ReadMesh(in)
}

func writeMesh(m *mesh.Mesh, pathname string) error {
	switch pathname {
	case "":
		return nil
	case "-":
		_, err := m.WriteTo(os.Stdout)
		return err
	}

	os.MkdirAll(filepath.Dir(pathname), 0700)
	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	_, err = m.WriteTo(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}
