// Package render rasterizes a scene into an RGBA image. Vector shapes go
// through rasterx, bitmaps and text through affine resampling.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/example/iconcanvas/internal/scene"
)

// Options controls Rasterize.
type Options struct {
	// Density is output pixels per canvas unit. Zero means 1.
	Density float64
	// Width and Height is the canvas area to render, in canvas units.
	Width, Height float64
	// Background fills the output before any layer; nil leaves it transparent.
	Background color.Color
	// Overlay is drawn above all layers when set.
	Overlay *Overlay
}

// Overlay describes the interactive decorations: the transform handle
// around the selection and the crop rectangle.
type Overlay struct {
	Selection    []scene.Point // outline corners in canvas units
	Anchors      []scene.Rect
	Crop         *scene.Rect
	CropAnchors  []scene.Rect
	HandleStroke color.RGBA
	HandleFill   color.RGBA
	CropStroke   color.RGBA
	CropFill     color.RGBA
}

// CropDash is the dash pattern of the crop rectangle border.
var CropDash = []float64{5, 5}

// Rasterize renders every visible layer of s into a new image.
func Rasterize(s *scene.Scene, opts Options) *image.RGBA {
	d := opts.Density
	if d <= 0 {
		d = 1
	}
	w := int(math.Ceil(opts.Width * d))
	h := int(math.Ceil(opts.Height * d))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	if opts.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	Draw(dst, s, scene.Scale(d, d), opts.Overlay)
	return dst
}

// Draw paints s onto dst with base mapping canvas units to dst pixels.
func Draw(dst *image.RGBA, s *scene.Scene, base scene.Matrix2D, overlay *Overlay) {
	p := newPainter(dst)
	for _, id := range []scene.LayerID{scene.LayerBackground, scene.LayerContent, scene.LayerRuler} {
		l := s.Layer(id)
		if l == nil || !l.Visible {
			continue
		}
		for _, n := range s.Nodes(id) {
			p.node(n, base.Multiply(n.LocalMatrix()), n.Opacity)
		}
	}
	if overlay != nil {
		p.overlay(overlay, base)
	}
}

type painter struct {
	dst    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

func newPainter(dst *image.RGBA) *painter {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	return &painter{
		dst:    dst,
		filler: rasterx.NewFiller(w, h, scanner),
		dasher: rasterx.NewDasher(w, h, scanner),
	}
}

// unit is the average linear scale of m, used for stroke widths and font sizes.
func unit(m scene.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

func transformed(m scene.Matrix2D, pts []scene.Point) []scene.Point {
	out := make([]scene.Point, len(pts))
	for i, pt := range pts {
		out[i].X, out[i].Y = m.TransformPoint(pt.X, pt.Y)
	}
	return out
}

func (p *painter) fill(pts []scene.Point, c color.RGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	p.filler.Clear()
	p.filler.Start(rasterx.ToFixedP(pts[0].X, pts[0].Y))
	for _, pt := range pts[1:] {
		p.filler.Line(rasterx.ToFixedP(pt.X, pt.Y))
	}
	p.filler.Stop(true)
	p.filler.SetColor(c)
	p.filler.Draw()
	p.filler.Clear()
}

func (p *painter) stroke(pts []scene.Point, closed bool, width float64, c color.RGBA, dash []float64) {
	if len(pts) < 2 || c.A == 0 || width <= 0 {
		return
	}
	p.dasher.Clear()
	p.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64), rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.MiterClip, dash, 0)
	p.dasher.Start(rasterx.ToFixedP(pts[0].X, pts[0].Y))
	for _, pt := range pts[1:] {
		p.dasher.Line(rasterx.ToFixedP(pt.X, pt.Y))
	}
	p.dasher.Stop(closed)
	p.dasher.SetColor(c)
	p.dasher.Draw()
	p.dasher.Clear()
}

func scaledDash(dash []float64, k float64) []float64 {
	if len(dash) == 0 {
		return nil
	}
	out := make([]float64, len(dash))
	for i, d := range dash {
		out[i] = d * k
	}
	return out
}

func (p *painter) node(n *scene.Node, m scene.Matrix2D, opacity float64) {
	if opacity <= 0 {
		return
	}
	k := unit(m)
	switch n.Kind {
	case scene.KindRect:
		outline := transformed(m, RoundedRect(n.Width, n.Height, n.Style.CornerRadius))
		p.fill(outline, fade(n.Style.Fill, opacity))
		p.stroke(outline, true, n.Style.StrokeWidth*k, fade(n.Style.Stroke, opacity), scaledDash(n.Style.Dash, k))
	case scene.KindLine:
		var pts []scene.Point
		for i := 0; i+1 < len(n.Line); i += 2 {
			pts = append(pts, scene.Point{X: n.Line[i], Y: n.Line[i+1]})
		}
		p.stroke(transformed(m, pts), false, n.Style.StrokeWidth*k, fade(n.Style.Stroke, opacity), scaledDash(n.Style.Dash, k))
	case scene.KindArrow:
		p.arrow(n, m, opacity)
	case scene.KindText:
		p.text(n, m, opacity)
	case scene.KindImage:
		p.image(n, m, opacity)
	case scene.KindGroup:
		for _, c := range n.Children {
			p.node(c, m.Multiply(c.LocalMatrix()), opacity*c.Opacity)
		}
	}
}

func (p *painter) arrow(n *scene.Node, m scene.Matrix2D, opacity float64) {
	a := n.Arrow
	if a == nil {
		return
	}
	k := unit(m)
	x0, y0, x1, y1 := a.Points[0], a.Points[1], a.Points[2], a.Points[3]
	stroke := fade(n.Style.Stroke, opacity)
	p.stroke(transformed(m, []scene.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}), false, n.Style.StrokeWidth*k, stroke, nil)

	head := ArrowHead(x0, y0, x1, y1, a.PointerLength, a.PointerWidth)
	if head == nil {
		return
	}
	head = transformed(m, head)
	p.fill(head, fade(n.Style.Fill, opacity))
	p.stroke(head, true, n.Style.StrokeWidth*k, stroke, nil)
}

// ArrowHead returns the pointer triangle with its tip at x1,y1, or nil for
// a zero length arrow.
func ArrowHead(x0, y0, x1, y1, length, width float64) []scene.Point {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || length <= 0 {
		return nil
	}
	ux, uy := dx/l, dy/l
	bx, by := x1-ux*length, y1-uy*length
	hw := width / 2
	return []scene.Point{
		{X: x1, Y: y1},
		{X: bx - uy*hw, Y: by + ux*hw},
		{X: bx + uy*hw, Y: by - ux*hw},
	}
}

// RoundedRect outlines a w by h rectangle with corner radius r.
func RoundedRect(w, h, r float64) []scene.Point {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return []scene.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	}
	const steps = 6
	corners := []struct{ cx, cy, start float64 }{
		{w - r, r, -math.Pi / 2},
		{w - r, h - r, 0},
		{r, h - r, math.Pi / 2},
		{r, r, math.Pi},
	}
	var pts []scene.Point
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := c.start + float64(i)*(math.Pi/2)/steps
			pts = append(pts, scene.Point{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return pts
}

func aff(m scene.Matrix2D) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

func maskFor(opacity float64) *xdraw.Options {
	if opacity >= 1 {
		return nil
	}
	return &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(opacity * 255)})}
}

func (p *painter) image(n *scene.Node, m scene.Matrix2D, opacity float64) {
	if n.Image == nil || n.Image.Bitmap == nil {
		return
	}
	src := n.Image.Bitmap
	b := src.Bounds()
	if b.Empty() || n.Width == 0 || n.Height == 0 {
		return
	}
	s2d := m.Multiply(scene.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))).
		Multiply(scene.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	xdraw.BiLinear.Transform(p.dst, aff(s2d), src, b, xdraw.Over, maskFor(opacity))
}

func (p *painter) text(n *scene.Node, m scene.Matrix2D, opacity float64) {
	t := n.Text
	if t == nil || t.Text == "" {
		return
	}
	k := unit(m)
	if k <= 0 {
		return
	}
	face := Face(t.FontSize * k)
	if face == nil {
		return
	}
	lines := WrapText(face, t.Text, (n.Width-2*t.Padding)*k)
	lineH := face.Metrics().Height.Ceil()
	w := int(math.Ceil(n.Width * k))
	if w <= 0 {
		for _, l := range lines {
			w = max(w, font.MeasureString(face, l).Ceil())
		}
		w += int(2 * t.Padding * k)
	}
	h := int(math.Ceil(2*t.Padding*k)) + lineH*len(lines)
	if w <= 0 || h <= 0 {
		return
	}
	local := image.NewRGBA(image.Rect(0, 0, w, h))
	pad := int(t.Padding * k)
	d := &font.Drawer{Dst: local, Src: image.NewUniform(n.Style.Fill), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		lw := d.MeasureString(l).Ceil()
		x := pad
		switch t.Align {
		case scene.AlignCenter:
			x = (w - lw) / 2
		case scene.AlignRight:
			x = w - pad - lw
		}
		d.Dot = fixed.P(x, pad+ascent+i*lineH)
		d.DrawString(l)
	}
	s2d := m.Multiply(scene.Scale(1/k, 1/k))
	xdraw.BiLinear.Transform(p.dst, aff(s2d), local, local.Bounds(), xdraw.Over, maskFor(opacity))
}

func (p *painter) overlay(o *Overlay, base scene.Matrix2D) {
	if len(o.Selection) > 1 {
		p.stroke(transformed(base, o.Selection), true, 1, o.HandleStroke, nil)
	}
	for _, a := range o.Anchors {
		p.anchor(base.TransformRect(a), o.HandleFill, o.HandleStroke)
	}
	if o.Crop != nil {
		p.box(base.TransformRect(*o.Crop), o.CropFill, o.CropStroke, 2, CropDash)
		for _, a := range o.CropAnchors {
			p.anchor(base.TransformRect(a), o.HandleFill, o.CropStroke)
		}
	}
}

// anchor draws an 8 pixel handle centered on r regardless of zoom.
func (p *painter) anchor(r scene.Rect, fill, stroke color.RGBA) {
	cx, cy := r.Center()
	p.box(scene.Rect{X: cx - 4, Y: cy - 4, Width: 8, Height: 8}, fill, stroke, 1, nil)
}

func (p *painter) box(r scene.Rect, fill, stroke color.RGBA, width float64, dash []float64) {
	pts := []scene.Point{{X: r.X, Y: r.Y}, {X: r.X + r.Width, Y: r.Y}, {X: r.X + r.Width, Y: r.Y + r.Height}, {X: r.X, Y: r.Y + r.Height}}
	p.fill(pts, fill)
	p.stroke(pts, true, width, stroke, dash)
}
