package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/export"
	"github.com/example/iconcanvas/internal/scene"
	"github.com/example/iconcanvas/internal/theme"
)

var errExit = errors.New("exit")

var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

type scriptCmd struct {
	*root
	fs        *flag.FlagSet
	file      string
	width     float64
	height    float64
	output    string
	shadow    bool
	keepGoing bool
	stdin     io.Reader
}

func (s *scriptCmd) Program() string        { return s.root.subcommand("script") }
func (s *scriptCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	s := &scriptCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(s)
	fs.Float64Var(&s.width, "width", 800, "stage width in canvas units")
	fs.Float64Var(&s.height, "height", 600, "stage height in canvas units")
	fs.StringVar(&s.output, "output", "", "file written by save")
	fs.BoolVar(&s.shadow, "shadow", false, "add a drop shadow to saved images")
	fs.BoolVar(&s.keepGoing, "k", false, "keep going after a failing command")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		s.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: s}
	}
	if s.width <= 0 || s.height <= 0 {
		return nil, &UsageError{of: s, msg: "width and height must be positive"}
	}
	return s, nil
}

func (s *scriptCmd) Run() error {
	cat, err := s.loadCatalog()
	if err != nil {
		return err
	}
	opts, err := s.sessionOptions(cat, sessionSettings{output: s.output, shadow: s.shadow, monitor: -1})
	if err != nil {
		return err
	}
	sess := editor.New(opts...)
	sess.Resize(s.width, s.height)
	in := &interpreter{session: sess, stdout: s.stdout, density: s.density(), keepGoing: s.keepGoing}
	if s.file != "" {
		return in.runFile(s.file)
	}
	if stdinIsTerminal() {
		fmt.Fprintln(s.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
		in.keepGoing = true
		in.prompt = func() { fmt.Fprint(s.stdout, "> ") }
		in.stderr = s.stderr
	}
	return in.run(s.stdin)
}

// interpreter executes canvas commands, one per line, against a session.
type interpreter struct {
	session   *editor.Session
	stdout    io.Writer
	stderr    io.Writer
	density   float64
	keepGoing bool
	prompt    func()
	aliases   map[string]string
	last      string
}

func (in *interpreter) runFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return in.run(f)
}

// run reads commands until EOF or exit. Without keepGoing the first
// failing command stops the run and is returned with its line number.
func (in *interpreter) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var firstErr error
	for lineNo := 1; ; lineNo++ {
		if in.prompt != nil {
			in.prompt()
		}
		if !scanner.Scan() {
			break
		}
		err := in.exec(scanner.Text())
		if errors.Is(err, errExit) {
			break
		}
		if err == nil {
			continue
		}
		err = fmt.Errorf("line %d: %w", lineNo, err)
		if !in.keepGoing {
			return err
		}
		if in.stderr != nil {
			fmt.Fprintln(in.stderr, err)
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if in.prompt != nil {
		return nil
	}
	return firstErr
}

// exec runs one line. Blank lines and # comments are skipped.
func (in *interpreter) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	name, args, alias := args[0], args[1:], ""
	if n := len(args); n >= 2 && args[n-2] == "as" {
		alias = args[n-1]
		args = args[:n-2]
	}
	for i, a := range args {
		args[i] = in.expand(a)
	}
	s := in.session

	var err error
	switch name {
	case "exit", "quit":
		return errExit
	case "help":
		in.help()
	case "resize":
		var v []float64
		if v, err = floats(args, 2); err == nil {
			s.Resize(v[0], v[1])
		}
	case "rect":
		err = in.addRect(args)
	case "arrow":
		err = in.addArrow(args)
	case "textbox":
		var v []float64
		if v, err = floats(args, 2); err == nil {
			err = s.AddNode(editor.NewTextBox(v[0], v[1]))
		}
	case "icon":
		err = in.addAsync(args, func(x, y float64, done func(error)) error {
			return s.AddIcon(args[0], x, y, done)
		})
	case "url":
		err = in.addAsync(args, func(x, y float64, done func(error)) error {
			s.AddNodeFromURL(x, y, args[0], done)
			return nil
		})
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("select: want an id or none")
		}
		if args[0] == "none" {
			s.Deselect()
		} else {
			err = s.Select(args[0])
		}
	case "move":
		var v []float64
		if v, err = floats(args, 2); err == nil {
			err = s.MoveSelected(v[0], v[1])
		}
	case "pointer":
		err = in.pointer(args)
	case "dblclick":
		var v []float64
		if v, err = floats(args, 2); err == nil {
			err = s.DoubleClick(v[0], v[1])
		}
	case "text":
		err = in.setText(args)
	case "crop-area":
		var v []float64
		if v, err = floats(args, 4); err == nil && !s.ProposeCrop(scene.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}) {
			err = fmt.Errorf("crop-area: rectangle rejected")
		}
	case "opacity":
		err = s.Do("opacity-change", args...)
	case "list":
		in.list()
	case "status":
		in.status()
	case "export":
		err = in.export(args)
	default:
		err = s.Do(name, args...)
	}
	if err != nil {
		return err
	}
	if sel := s.Selected(); sel != nil {
		in.last = sel.ID
		if alias != "" {
			in.alias(alias, sel.ID)
		}
	}
	return nil
}

// expand resolves $name aliases; $last is the most recent selection.
func (in *interpreter) expand(arg string) string {
	if !strings.HasPrefix(arg, "$") {
		return arg
	}
	if arg == "$last" {
		return in.last
	}
	if id, ok := in.aliases[arg[1:]]; ok {
		return id
	}
	return arg
}

func (in *interpreter) alias(name, id string) {
	if in.aliases == nil {
		in.aliases = map[string]string{}
	}
	in.aliases[name] = id
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d numbers, got %d arguments", n, len(args))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// addRect handles "rect X Y W H [#color]".
func (in *interpreter) addRect(args []string) error {
	v, err := floats(args, 4)
	if err != nil {
		return fmt.Errorf("rect: %w", err)
	}
	n := scene.NewNode(scene.KindRect)
	n.X, n.Y, n.Width, n.Height = v[0], v[1], v[2], v[3]
	n.Style = scene.Style{Fill: editor.TextBoxFill, Stroke: editor.TextBoxStroke, StrokeWidth: 1}
	if len(args) > 4 {
		c, err := theme.ParseColor(args[4])
		if err != nil {
			return fmt.Errorf("rect: %w", err)
		}
		n.Style.Fill = c
	}
	return in.session.AddNode(n)
}

// addArrow handles "arrow X0 Y0 X1 Y1".
func (in *interpreter) addArrow(args []string) error {
	v, err := floats(args, 4)
	if err != nil {
		return fmt.Errorf("arrow: %w", err)
	}
	n := editor.NewArrowNode(v[0], v[1])
	n.Arrow.Points = [4]float64{0, 0, v[2] - v[0], v[3] - v[1]}
	return in.session.AddNode(n)
}

// addAsync handles "icon ID X Y" and "url URL X Y". The script session
// runs work inline, so the node exists once this returns.
func (in *interpreter) addAsync(args []string, add func(x, y float64, done func(error)) error) error {
	if len(args) < 3 {
		return fmt.Errorf("want a name and a position")
	}
	v, err := floats(args[1:], 2)
	if err != nil {
		return err
	}
	var result error
	if err := add(v[0], v[1], func(err error) { result = err }); err != nil {
		return err
	}
	return result
}

// pointer handles "pointer down|move|up X Y" in stage pixels.
func (in *interpreter) pointer(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("pointer: want down|move|up X Y")
	}
	v, err := floats(args[1:], 2)
	if err != nil {
		return fmt.Errorf("pointer: %w", err)
	}
	s := in.session
	switch args[0] {
	case "down":
		s.PointerDown(v[0], v[1])
	case "move":
		s.PointerMove(v[0], v[1])
	case "up":
		s.PointerUp(v[0], v[1])
	default:
		return fmt.Errorf("pointer: unknown phase %q", args[0])
	}
	return nil
}

// setText handles "text ID VALUE...". A group id edits its first label.
func (in *interpreter) setText(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("text: want an id and a value")
	}
	n, err := in.session.Scene().Node(args[0])
	if err != nil {
		return err
	}
	id := ""
	n.Walk(func(c *scene.Node) {
		if id == "" && c.Text != nil {
			id = c.ID
		}
	})
	if id == "" {
		return fmt.Errorf("text %s: %w", args[0], editor.ErrNoText)
	}
	value := strings.ReplaceAll(strings.Join(args[1:], " "), `\n`, "\n")
	return in.session.SetText(id, value)
}

func (in *interpreter) list() {
	for _, n := range in.session.Scene().Nodes(scene.LayerContent) {
		flags := ""
		if n.Locked {
			flags += " locked"
		}
		if n.Favorite {
			flags += " favorite"
		}
		fmt.Fprintf(in.stdout, "%s\t%s\t%g,%g\t%gx%g\trot=%g\topacity=%d%%%s\n",
			n.ID, n.Kind, n.X, n.Y, n.Width*n.ScaleX, n.Height*n.ScaleY, n.Rotation, int(n.Opacity*100+0.5), flags)
	}
}

func (in *interpreter) status() {
	st := in.session.Status()
	fmt.Fprintf(in.stdout, "selected=%s zoom=%g undo=%v redo=%v cropping=%v grid=%v ruler=%v preview=%v\n",
		st.Selected, st.Zoom, st.CanUndo, st.CanRedo, st.Cropping, st.Grid, st.Ruler, st.Preview)
}

// export handles "export PATH [shadow]" at the configured density.
func (in *interpreter) export(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("export: want a path")
	}
	opts := export.Options{Density: in.density, Shadow: len(args) > 1 && args[1] == "shadow"}
	if err := export.WriteFile(args[0], in.session.RenderToImage(in.density), opts); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(in.stdout, "exported %s\n", args[0])
	return nil
}

func (in *interpreter) help() {
	fmt.Fprintln(in.stdout, "commands: resize, rect, arrow, textbox, icon, url, select, move, pointer, dblclick,")
	fmt.Fprintln(in.stdout, "  text, crop-area, opacity, list, status, export, exit")
	fmt.Fprintf(in.stdout, "actions: %s\n", strings.Join(editor.Actions, ", "))
}
