package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/iconcanvas/internal/catalog"
	"github.com/example/iconcanvas/internal/config"
	"github.com/example/iconcanvas/internal/notify"
	"github.com/example/iconcanvas/internal/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	config        *config.Config
	notifier      *notify.Notifier
	configPath    string
	catalogPath   string
	themeName     string
	verbose       bool
	exportAlerts  bool
	copyAlerts    bool
	captureAlerts bool
	activeTheme   *theme.Theme
	stdout        io.Writer
	stderr        io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("iconcanvas", flag.ExitOnError),
		program:  "iconcanvas",
		notifier: notify.New(notify.LoadPreferences()),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.StringVar(&r.configPath, "config", "", "path to an iconcanvas.rc file")
	r.fs.StringVar(&r.catalogPath, "catalog", "", "icon catalog file (default: the built in catalog)")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, light, dark, or a .theme file)")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log progress to stderr")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", false, "show a desktop notification after inserting a screenshot")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(r.program + " " + name)
}

// loadConfig reads the RC file and applies it under any flags given on
// the command line. Precedence: CLI > Env > Config > Default.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-export"] {
		r.exportAlerts = cfg.Notify.Export
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if !set["notify-capture"] {
		r.captureAlerts = cfg.Notify.Capture
	}
	if r.catalogPath == "" {
		r.catalogPath = cfg.Catalog
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	}
}

// loadTheme resolves the theme from the config sections first, then the
// theme loader (file, embedded, system).
func (r *root) loadTheme() {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		r.activeTheme = t
		return
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

// loadCatalog returns the configured icon catalog, or the built in one.
func (r *root) loadCatalog() (*catalog.Catalog, error) {
	if r.catalogPath != "" {
		return catalog.Load(r.catalogPath)
	}
	return catalog.Default()
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if !r.verbose {
		log.SetOutput(io.Discard)
	}
	r.loadConfig()
	r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "script":
		cmd, err = parseScriptCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "catalog":
		cmd, err = parseCatalogCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
