// Package viewport owns the stage: its size and zoom, the background
// layer (canvas fill and grid) and the optional ruler layer.
package viewport

import (
	"image/color"
	"math"
	"strconv"

	"github.com/example/iconcanvas/internal/scene"
)

// Node names used on the background and ruler layers.
const (
	NameBackground = "background-rect"
	NameGridLine   = "grid-line"
	NameRulerLine  = "ruler-line"
	NameRulerLabel = "ruler-label"
)

const (
	// ZoomFactor is applied per zoom in/out step.
	ZoomFactor = 1.2
	MinZoom    = 0.1
	MaxZoom    = 10
)

// Options configures the decorations.
type Options struct {
	CanvasColor color.RGBA
	GridColor   color.RGBA
	RulerColor  color.RGBA
	GridSpacing float64
	RulerStep   float64
	Grid        bool
}

// DefaultOptions matches the stock canvas: white fill, 20 unit grid in
// #f0f0f0, rulers every 50 units in #666.
func DefaultOptions() Options {
	return Options{
		CanvasColor: color.RGBA{255, 255, 255, 255},
		GridColor:   color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
		RulerColor:  color.RGBA{0x66, 0x66, 0x66, 0xff},
		GridSpacing: 20,
		RulerStep:   50,
		Grid:        true,
	}
}

// Viewport is the stage controller.
type Viewport struct {
	scene   *scene.Scene
	opts    Options
	width   float64
	height  float64
	zoom    float64
	ruler   bool
	preview bool
	onZoom  func(float64)
}

// New binds a viewport to s. Nothing is drawn until the first Resize.
func New(s *scene.Scene, opts Options) *Viewport {
	if opts.GridSpacing <= 0 {
		opts.GridSpacing = 20
	}
	if opts.RulerStep <= 0 {
		opts.RulerStep = 50
	}
	v := &Viewport{scene: s, opts: opts, zoom: 1}
	s.SetLayerVisible(scene.LayerRuler, false)
	return v
}

// Size returns the stage size in canvas units.
func (v *Viewport) Size() (float64, float64) { return v.width, v.height }

// Resize sets the stage size and rebuilds background and ruler. Calling it
// again with the same size yields the same decorations.
func (v *Viewport) Resize(w, h float64) {
	v.width, v.height = math.Max(0, w), math.Max(0, h)
	v.rebuildBackground()
	v.rebuildRuler()
}

// Zoom is the stage scale.
func (v *Viewport) Zoom() float64 { return v.zoom }

// SetZoom sets the stage scale within MinZoom..MaxZoom.
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) || z <= 0 {
		return
	}
	v.zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
	if v.onZoom != nil {
		v.onZoom(v.zoom)
	}
}

// OnZoom registers a callback for scale changes, which repaint every layer.
func (v *Viewport) OnZoom(fn func(float64)) {
	v.onZoom = fn
}

// ZoomIn multiplies the scale by ZoomFactor.
func (v *Viewport) ZoomIn() { v.SetZoom(v.zoom * ZoomFactor) }

// ZoomOut divides the scale by ZoomFactor.
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom / ZoomFactor) }

// ToCanvas converts a screen position relative to the stage origin into
// canvas units.
func (v *Viewport) ToCanvas(x, y float64) scene.Point {
	return scene.Point{X: x / v.zoom, Y: y / v.zoom}
}

// ToScreen is the inverse of ToCanvas.
func (v *Viewport) ToScreen(p scene.Point) (float64, float64) {
	return p.X * v.zoom, p.Y * v.zoom
}

// CanvasColor is the background fill.
func (v *Viewport) CanvasColor() color.RGBA { return v.opts.CanvasColor }

// SetCanvasColor changes the background fill.
func (v *Viewport) SetCanvasColor(c color.RGBA) {
	v.opts.CanvasColor = c
	v.rebuildBackground()
}

// GridVisible reports whether grid lines are enabled.
func (v *Viewport) GridVisible() bool { return v.opts.Grid }

// SetGrid enables or disables the grid.
func (v *Viewport) SetGrid(on bool) {
	v.opts.Grid = on
	v.rebuildBackground()
}

// RulerVisible reports whether rulers are enabled.
func (v *Viewport) RulerVisible() bool { return v.ruler }

// SetRuler enables or disables the ruler layer.
func (v *Viewport) SetRuler(on bool) {
	v.ruler = on
	v.rebuildRuler()
}

// Preview reports whether preview mode is on.
func (v *Viewport) Preview() bool { return v.preview }

// SetPreview hides grid and rulers while on. Handle hiding is up to the
// selection controller.
func (v *Viewport) SetPreview(on bool) {
	v.preview = on
	v.rebuildBackground()
	v.rebuildRuler()
}

func (v *Viewport) rebuildBackground() {
	v.scene.ClearLayer(scene.LayerBackground)
	if v.width == 0 || v.height == 0 {
		return
	}
	bg := scene.NewNode(scene.KindRect)
	bg.Name = NameBackground
	bg.Width, bg.Height = v.width, v.height
	bg.Style.Fill = v.opts.CanvasColor
	_ = v.scene.Add(bg, scene.LayerBackground)

	if !v.opts.Grid || v.preview {
		return
	}
	for x := 0.0; x < v.width; x += v.opts.GridSpacing {
		v.addLine(scene.LayerBackground, NameGridLine, v.opts.GridColor, x, 0, x, v.height)
	}
	for y := 0.0; y < v.height; y += v.opts.GridSpacing {
		v.addLine(scene.LayerBackground, NameGridLine, v.opts.GridColor, 0, y, v.width, y)
	}
}

func (v *Viewport) rebuildRuler() {
	v.scene.ClearLayer(scene.LayerRuler)
	on := v.ruler && !v.preview
	v.scene.SetLayerVisible(scene.LayerRuler, on)
	if !on || v.width == 0 || v.height == 0 {
		return
	}
	c := v.opts.RulerColor
	v.addLine(scene.LayerRuler, NameRulerLine, c, 0, 20, v.width, 20)
	v.addLine(scene.LayerRuler, NameRulerLine, c, 20, 0, 20, v.height)
	for i := 0.0; i < v.width; i += v.opts.RulerStep {
		v.addLine(scene.LayerRuler, NameRulerLine, c, i, 15, i, 25)
		v.addLabel(i-10, 0, i)
	}
	for i := 0.0; i < v.height; i += v.opts.RulerStep {
		v.addLine(scene.LayerRuler, NameRulerLine, c, 15, i, 25, i)
		v.addLabel(0, i-5, i)
	}
}

func (v *Viewport) addLine(layer scene.LayerID, name string, c color.RGBA, x0, y0, x1, y1 float64) {
	n := scene.NewNode(scene.KindLine)
	n.Name = name
	n.Line = []float64{x0, y0, x1, y1}
	n.Style.Stroke = c
	n.Style.StrokeWidth = 1
	_ = v.scene.Add(n, layer)
}

func (v *Viewport) addLabel(x, y, value float64) {
	n := scene.NewNode(scene.KindText)
	n.Name = NameRulerLabel
	n.X, n.Y = x, y
	n.Width, n.Height = 40, 12
	n.Style.Fill = v.opts.RulerColor
	n.Text = &scene.TextData{Text: strconv.Itoa(int(value)), FontSize: 10, FontFamily: "sans-serif"}
	_ = v.scene.Add(n, scene.LayerRuler)
}
