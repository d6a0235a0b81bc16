package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/iconcanvas/internal/capture"
	"github.com/example/iconcanvas/internal/config"
	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/scene"
	"github.com/example/iconcanvas/internal/theme"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &root{
		program:     "iconcanvas",
		config:      config.New(),
		activeTheme: theme.Default(),
		stdout:      &out,
		stderr:      io.Discard,
	}, &out
}

func newInterpreter(t *testing.T, r *root, out io.Writer) *interpreter {
	t.Helper()
	opts, err := r.sessionOptions(nil, sessionSettings{monitor: -1})
	if err != nil {
		t.Fatalf("session options: %v", err)
	}
	s := editor.New(opts...)
	s.Resize(800, 600)
	return &interpreter{session: s, stdout: out, density: 1}
}

func TestScriptBuildsCanvas(t *testing.T) {
	r, out := testRoot(t)
	in := newInterpreter(t, r, out)
	script := `# two nodes
rect 10 10 100 50 #ff0000 as box
textbox 200 200 as label
text $label Hello\nWorld
select $box
opacity 50
list
`
	if err := in.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	nodes := in.session.Scene().Nodes(scene.LayerContent)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	if nodes[0].Opacity != 0.5 || nodes[0].Style.Fill != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("box = %+v", nodes[0])
	}
	var label string
	nodes[1].Walk(func(n *scene.Node) {
		if n.Text != nil {
			label = n.Text.Text
		}
	})
	if label != "Hello\nWorld" {
		t.Fatalf("label = %q", label)
	}
	if !strings.Contains(out.String(), "opacity=50%") {
		t.Fatalf("list output %q", out.String())
	}
}

func TestScriptStopsAtFirstError(t *testing.T) {
	r, out := testRoot(t)
	in := newInterpreter(t, r, out)
	err := in.run(strings.NewReader("rect 1 2\nrect 0 0 10 10\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("err = %v", err)
	}
	if n := in.session.Scene().Len(scene.LayerContent); n != 0 {
		t.Fatalf("later lines ran: %d nodes", n)
	}

	in = newInterpreter(t, r, out)
	in.keepGoing = true
	err = in.run(strings.NewReader("bogus\nrect 0 0 10 10\n"))
	if !errors.Is(err, editor.ErrUnknownAction) {
		t.Fatalf("keep going err = %v", err)
	}
	if n := in.session.Scene().Len(scene.LayerContent); n != 1 {
		t.Fatalf("keep going added %d nodes", n)
	}
}

func TestScriptHistoryAndExit(t *testing.T) {
	r, out := testRoot(t)
	in := newInterpreter(t, r, out)
	script := "rect 0 0 10 10\nundo\nexit\nrect 0 0 10 10\n"
	if err := in.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := in.session.Scene().Len(scene.LayerContent); n != 0 {
		t.Fatalf("got %d nodes after undo and exit", n)
	}
	if !in.session.Status().CanRedo {
		t.Fatal("undo not recorded as redoable")
	}
}

func TestScriptIconAndPointerDrag(t *testing.T) {
	r, out := testRoot(t)
	in := newInterpreter(t, r, out)
	script := `icon antibody 100 100 as ab
pointer down 120 120
pointer move 150 130
pointer up 150 130
`
	if err := in.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	n, err := in.session.Scene().Node(in.aliases["ab"])
	if err != nil {
		t.Fatalf("alias: %v", err)
	}
	if n.Kind != scene.KindImage || n.Width != editor.IconSize {
		t.Fatalf("icon node = %+v", n)
	}
	if n.X != 130 || n.Y != 110 {
		t.Fatalf("dragged to %v,%v, want 130,110", n.X, n.Y)
	}
}

func TestScriptScreenshot(t *testing.T) {
	original := captureScreenshotFn
	captureScreenshotFn = func(capture.Options) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 30, 20)), nil
	}
	t.Cleanup(func() { captureScreenshotFn = original })

	r, out := testRoot(t)
	in := newInterpreter(t, r, out)
	if err := in.exec("screenshot"); err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	nodes := in.session.Scene().Nodes(scene.LayerContent)
	if len(nodes) != 1 || nodes[0].Kind != scene.KindImage || nodes[0].Width != 30 || nodes[0].Height != 20 {
		t.Fatalf("nodes = %+v", nodes)
	}
}

func TestGrabberWrapsCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("boom")
	captureScreenshotFn = func(capture.Options) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })

	r, _ := testRoot(t)
	_, err := r.grabber(0)()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestExportCmdWritesPNG(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "canvas.txt")
	if err := os.WriteFile(script, []byte("rect 0 0 10 10 #000000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	r, stdout := testRoot(t)
	cmd, err := parseExportCmd([]string{"-output", out, "-density", "1", "-width", "20", "-height", "10", script}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("size = %v", b)
	}
	if r, g, b, _ := img.At(5, 5).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Fatalf("rect pixel = %v", img.At(5, 5))
	}
	if r, g, b, _ := img.At(15, 5).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("canvas pixel = %v", img.At(15, 5))
	}
	if !strings.Contains(stdout.String(), "saved "+out) {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestParseExportRejectsUnknownFormat(t *testing.T) {
	r, _ := testRoot(t)
	_, err := parseExportCmd([]string{"-output", "out.gif", "script.txt"}, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Usage: iconcanvas export") {
		t.Fatalf("help not rendered: %v", err)
	}
}

func TestCatalogCmdLists(t *testing.T) {
	r, out := testRoot(t)
	cmd, err := parseCatalogCmd([]string{"-category", "immuno"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "antibody") || strings.Contains(got, "heart") {
		t.Fatalf("catalog output %q", got)
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	r, out := testRoot(t)
	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out.String(), "grid = true") {
		t.Fatalf("print output %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "iconcanvas.rc")
	cmd, err = parseConfigCmd([]string{"-output", path, "save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "export_density = 3") {
		t.Fatalf("saved config %q", data)
	}
}

func TestUsageErrorRendersCommandHelp(t *testing.T) {
	r, _ := testRoot(t)
	cmd, err := parseScriptCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	help := (&UsageError{of: cmd}).Error()
	for _, want := range []string{"Usage: iconcanvas script", "crop-area", "-width"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
	if _, err := parseScriptCmd([]string{"a", "b"}, r); err == nil {
		t.Fatal("two files accepted")
	}
}

func TestRootRunVersion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	prev := log.Writer()
	t.Cleanup(func() { log.SetOutput(prev) })

	r := newRoot()
	var out bytes.Buffer
	r.stdout = &out
	r.stderr = io.Discard
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "iconcanvas version ") {
		t.Fatalf("version output %q", out.String())
	}

	r = newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
