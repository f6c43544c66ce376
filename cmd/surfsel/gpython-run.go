package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/surfsel/surfsel/pysel"

	_ "github.com/go-python/gpython/stdlib"
)

// REPL sessions start with the mesh helpers and a workspace in scope.
const replStartup = `
import _surfsel
from _surfsel import LoadMesh, Cube, Grid, GetWorkspace
ws = GetWorkspace(%q)
`

type scriptOpts struct {
	Pathname  string // script to run; empty starts a REPL
	DbPath    string // user value db a REPL workspace opens
	MaxLayers int
}

func go_gpython(opts scriptOpts) error {
	pysel.SetMaxLayers(opts.MaxLayers)
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(opts.Pathname) == 0 {
		var replCtx *repl.REPL
		replCtx, err = newREPL(ctx, opts.DbPath)
		if err == nil {
			cli.RunREPL(replCtx)
		}
	} else {
		err = runScript(ctx, opts.Pathname)
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}

func newREPL(ctx py.Context, dbPath string) (*repl.REPL, error) {
	replCtx := repl.New(ctx)
	_, err := py.RunSrc(ctx, fmt.Sprintf(replStartup, dbPath), "<startup>", replCtx.Module)
	if err != nil {
		return nil, err
	}
	return replCtx, nil
}

func runScript(ctx py.Context, pathname string) error {
	startTime := time.Now()
	fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err != nil {
		return err
	}

	fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
	return nil
}
