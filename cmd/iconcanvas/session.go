package main

import (
	"fmt"
	"image"
	"log"

	"github.com/example/iconcanvas/internal/capture"
	"github.com/example/iconcanvas/internal/catalog"
	"github.com/example/iconcanvas/internal/clipboard"
	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/export"
	"github.com/example/iconcanvas/internal/theme"
	"github.com/example/iconcanvas/internal/viewport"
)

var captureScreenshotFn = capture.Screenshot

// sessionSettings are the per command choices layered over the config.
type sessionSettings struct {
	output  string
	shadow  bool
	monitor int
}

// viewportOptions builds the stage decorations from the config and theme.
func (r *root) viewportOptions() (viewport.Options, error) {
	th := r.activeTheme
	if th == nil {
		th = theme.Default()
	}
	vo := viewport.DefaultOptions()
	vo.CanvasColor = th.CanvasFill
	vo.GridColor = th.GridLine
	vo.RulerColor = th.RulerLine
	if r.config == nil {
		return vo, nil
	}
	if r.config.CanvasColor != "" {
		c, err := theme.ParseColor(r.config.CanvasColor)
		if err != nil {
			return vo, fmt.Errorf("canvas_color: %w", err)
		}
		vo.CanvasColor = c
	}
	vo.Grid = r.config.Grid
	if r.config.GridSpacing > 0 {
		vo.GridSpacing = float64(r.config.GridSpacing)
	}
	if r.config.RulerStep > 0 {
		vo.RulerStep = float64(r.config.RulerStep)
	}
	return vo, nil
}

// outputPath resolves where "save" writes.
func (r *root) outputPath(name string) string {
	dir := ""
	if r.config != nil {
		dir = r.config.SaveDir
	}
	return export.Resolve(dir, name)
}

func (r *root) density() float64 {
	if r.config != nil && r.config.ExportDensity > 0 {
		return r.config.ExportDensity
	}
	return 3
}

// exporter writes the composition and announces it.
func (r *root) exporter(path string, density float64, shadow bool) editor.Exporter {
	opts := export.Options{Density: density, Shadow: shadow}
	return func(img *image.RGBA) error {
		if err := export.WriteFile(path, img, opts); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		log.Printf("exported %s", path)
		fmt.Fprintf(r.stdout, "saved %s\n", path)
		r.notifier.Export(path)
		return nil
	}
}

// grabber captures a monitor and reports the capture.
func (r *root) grabber(monitor int) func() (image.Image, error) {
	return func() (image.Image, error) {
		img, err := captureScreenshotFn(capture.Options{Monitor: monitor})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		r.notifier.Capture(img)
		return img, nil
	}
}

// sessionOptions are shared by the window and the script runner.
func (r *root) sessionOptions(cat *catalog.Catalog, s sessionSettings) ([]editor.Option, error) {
	vo, err := r.viewportOptions()
	if err != nil {
		return nil, err
	}
	opts := []editor.Option{
		editor.WithViewport(vo),
		editor.WithExportDensity(r.density()),
		editor.WithImageClipboard(clipboard.System{}),
		editor.WithExporter(r.exporter(r.outputPath(s.output), r.density(), s.shadow)),
		editor.WithScreenshot(r.grabber(s.monitor)),
	}
	if r.activeTheme != nil {
		opts = append(opts, editor.WithTheme(r.activeTheme))
	}
	if cat != nil {
		opts = append(opts, editor.WithCatalog(cat))
	}
	return opts, nil
}
