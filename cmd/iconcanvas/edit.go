package main

import (
	"flag"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/ui"
)

type editCmd struct {
	*root
	fs      *flag.FlagSet
	width   int
	height  int
	output  string
	shadow  bool
	monitor int
	script  string
}

func (e *editCmd) Program() string        { return e.root.subcommand("edit") }
func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.IntVar(&e.width, "width", 1200, "initial window width in pixels")
	fs.IntVar(&e.height, "height", 800, "initial window height in pixels")
	fs.StringVar(&e.output, "output", "", "file written by save (default: save_dir/Your-Project-ImunoIcons.png)")
	fs.BoolVar(&e.shadow, "shadow", false, "add a drop shadow to saved images")
	fs.IntVar(&e.monitor, "monitor", -1, "monitor used by the screenshot button (-1 for all)")
	fs.StringVar(&e.script, "script", "", "script file run on the canvas before the window opens")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || e.width <= 0 || e.height <= 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	cat, err := e.loadCatalog()
	if err != nil {
		return err
	}
	sopts, err := e.sessionOptions(cat, sessionSettings{output: e.output, shadow: e.shadow, monitor: e.monitor})
	if err != nil {
		return err
	}
	app := ui.New([]ui.Option{
		ui.WithTitle(ui.ProgramTitle),
		ui.WithSize(e.width, e.height),
		ui.WithTheme(e.activeTheme),
		ui.WithCatalog(cat),
		ui.WithNotifier(e.notifier),
	}, sopts...)
	if e.script != "" {
		if err := e.preload(app.Session()); err != nil {
			return err
		}
	}
	app.Run()
	return nil
}

// preload runs a script on the window's session before the first frame.
// The stage gets the window size so positions match what is shown.
func (e *editCmd) preload(s *editor.Session) error {
	s.Resize(float64(e.width), float64(e.height))
	in := &interpreter{session: s, stdout: e.stdout, density: e.density()}
	return in.runFile(e.script)
}
