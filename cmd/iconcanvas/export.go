package main

import (
	"flag"
	"fmt"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/export"
)

// exportCmd builds a canvas from a script and saves it without a window.
type exportCmd struct {
	*root
	fs      *flag.FlagSet
	output  string
	density float64
	shadow  bool
	width   float64
	height  float64
	script  string
}

func (e *exportCmd) Program() string        { return e.root.subcommand("export") }
func (e *exportCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.output, "output", export.DefaultName, "output file; .png or .pdf")
	fs.Float64Var(&e.density, "density", 0, "pixels per canvas unit (default: export_density from the config)")
	fs.BoolVar(&e.shadow, "shadow", false, "add a drop shadow around the composition")
	fs.Float64Var(&e.width, "width", 800, "stage width in canvas units")
	fs.Float64Var(&e.height, "height", 600, "stage height in canvas units")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: e}
	}
	e.script = fs.Arg(0)
	if _, err := export.FormatFor(e.output); err != nil {
		return nil, &UsageError{of: e, msg: err.Error()}
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	cat, err := e.loadCatalog()
	if err != nil {
		return err
	}
	opts, err := e.sessionOptions(cat, sessionSettings{output: e.output, shadow: e.shadow, monitor: -1})
	if err != nil {
		return err
	}
	density := e.density
	if density <= 0 {
		density = e.root.density()
	}
	path := e.outputPath(e.output)
	opts = append(opts,
		editor.WithExportDensity(density),
		editor.WithExporter(e.exporter(path, density, e.shadow)))
	s := editor.New(opts...)
	s.Resize(e.width, e.height)
	in := &interpreter{session: s, stdout: e.stdout, density: density}
	if err := in.runFile(e.script); err != nil {
		return fmt.Errorf("%s: %w", e.script, err)
	}
	// Preview keeps the grid and rulers out of the file.
	s.SetPreview(true)
	return s.Save()
}
