package editor

import (
	"math"

	"github.com/example/iconcanvas/internal/crop"
	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// Anchor identifies a transform handle on the selection.
type Anchor int

const (
	AnchorNone Anchor = iota - 1
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomRight
	AnchorBottomLeft
	AnchorRotate
)

// rotateOffset is the distance in screen pixels between the top edge
// and the rotate anchor.
const rotateOffset = 30

// minExtent is the smallest side a corner resize may shrink a node to.
const minExtent = 1

type gesture int

const (
	gestureMove gesture = iota
	gestureResize
	gestureRotate
	gestureCrop
)

type dragState struct {
	kind   gesture
	id     string
	before scene.State
	start  scene.Point

	// resize
	fixed scene.Point // opposite corner in canvas space
	local scene.Point // opposite corner in the node frame
	span  scene.Point // dragged minus fixed corner, rotated frame
	// rotate
	pivot scene.Point
	angle float64
}

// Selected returns the selected node or nil.
func (s *Session) Selected() *scene.Node {
	if s.selected == "" {
		return nil
	}
	n, err := s.scene.Node(s.selected)
	if err != nil {
		s.selected = ""
		return nil
	}
	return n
}

// Select attaches the transform handle to id.
func (s *Session) Select(id string) error {
	n, err := s.scene.Node(id)
	if err != nil {
		return err
	}
	s.selectID(n.Root().ID)
	return nil
}

func (s *Session) selectID(id string) {
	if s.selected == id {
		return
	}
	s.selected = id
	s.changed()
}

// Deselect detaches the handle.
func (s *Session) Deselect() {
	if s.selected == "" {
		return
	}
	s.selected = ""
	s.changed()
}

// corners returns the selection outline in canvas space, TL TR BR BL.
func corners(n *scene.Node) []scene.Point {
	b := n.LocalBounds()
	m := n.WorldMatrix()
	local := [4]scene.Point{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Height},
		{X: b.X, Y: b.Y + b.Height},
	}
	out := make([]scene.Point, 0, 4)
	for _, p := range local {
		x, y := m.TransformPoint(p.X, p.Y)
		out = append(out, scene.Point{X: x, Y: y})
	}
	return out
}

func (s *Session) rotatePoint(n *scene.Node) scene.Point {
	c := corners(n)
	top := scene.Point{X: (c[0].X + c[1].X) / 2, Y: (c[0].Y + c[1].Y) / 2}
	cx, cy := n.WorldMatrix().TransformPoint(n.LocalBounds().Center())
	dx, dy := top.X-cx, top.Y-cy
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 0, -1, 1
	}
	d := rotateOffset / s.view.Zoom()
	return scene.Point{X: top.X + dx/l*d, Y: top.Y + dy/l*d}
}

// anchorRects returns the handle squares in Anchor order. Their canvas
// size shrinks with zoom so they stay the same on screen.
func (s *Session) anchorRects(n *scene.Node) []scene.Rect {
	caps := n.Capabilities()
	if n.Locked || (!caps.Resizable && !caps.Rotatable) {
		return nil
	}
	size := crop.HandleSize / s.view.Zoom()
	at := func(p scene.Point) scene.Rect {
		return scene.Rect{X: p.X - size/2, Y: p.Y - size/2, Width: size, Height: size}
	}
	var out []scene.Rect
	for _, p := range corners(n) {
		out = append(out, at(p))
	}
	return append(out, at(s.rotatePoint(n)))
}

// AnchorAt returns the handle of the selection under canvas point p.
func (s *Session) AnchorAt(p scene.Point) Anchor {
	n := s.Selected()
	if n == nil {
		return AnchorNone
	}
	slop := 2 / s.view.Zoom()
	for i, r := range s.anchorRects(n) {
		if r.Inset(-slop).Contains(p.X, p.Y) {
			return Anchor(i)
		}
	}
	return AnchorNone
}

// PointerDown handles a primary button press at stage position (x, y).
func (s *Session) PointerDown(x, y float64) {
	p := s.view.ToCanvas(x, y)
	if s.tool != nil {
		s.tool.Press(s, p)
		return
	}
	if s.crop.Active() {
		if s.crop.Press(p, 2/s.view.Zoom()) {
			s.drag = &dragState{kind: gestureCrop}
		}
		return
	}
	if a := s.AnchorAt(p); a != AnchorNone {
		s.beginHandle(a, p)
		return
	}
	n := s.scene.HitTest(p.X, p.Y)
	if n == nil {
		s.Deselect()
		return
	}
	s.selectID(n.ID)
	if n.Draggable() {
		s.drag = &dragState{kind: gestureMove, id: n.ID, before: n.State(), start: p}
	}
}

func (s *Session) beginHandle(a Anchor, p scene.Point) {
	n := s.Selected()
	st := n.State()
	b := n.LocalBounds()
	m := n.LocalMatrix()
	if a == AnchorRotate {
		if !n.Capabilities().Rotatable {
			return
		}
		cx, cy := m.TransformPoint(b.Center())
		s.drag = &dragState{
			kind: gestureRotate, id: n.ID, before: st, start: p,
			pivot: scene.Point{X: cx, Y: cy},
			angle: math.Atan2(p.Y-cy, p.X-cx),
		}
		return
	}
	if !n.Capabilities().Resizable {
		return
	}
	pts := [4]scene.Point{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Height},
		{X: b.X, Y: b.Y + b.Height},
	}
	dragged, opposite := pts[a], pts[(int(a)+2)%4]
	fx, fy := m.TransformPoint(opposite.X, opposite.Y)
	s.drag = &dragState{
		kind: gestureResize, id: n.ID, before: st, start: p,
		fixed: scene.Point{X: fx, Y: fy},
		local: opposite,
		span: scene.Point{
			X: n.ScaleX * (dragged.X - opposite.X),
			Y: n.ScaleY * (dragged.Y - opposite.Y),
		},
	}
}

// PointerMove handles pointer motion at stage position (x, y).
func (s *Session) PointerMove(x, y float64) {
	p := s.view.ToCanvas(x, y)
	if s.tool != nil {
		s.tool.Move(s, p)
		return
	}
	d := s.drag
	if d == nil {
		return
	}
	switch d.kind {
	case gestureCrop:
		s.crop.Drag(p)
		s.changed()
	case gestureMove:
		_ = s.scene.SetPosition(d.id, d.before.X+p.X-d.start.X, d.before.Y+p.Y-d.start.Y)
	case gestureResize:
		s.resizeTo(d, p)
	case gestureRotate:
		s.rotateTo(d, p)
	}
}

func (s *Session) resizeTo(d *dragState, p scene.Point) {
	st := d.before
	vx, vy := unrotate(p.X-d.fixed.X, p.Y-d.fixed.Y, st.Rotation)
	n2 := d.span.X*d.span.X + d.span.Y*d.span.Y
	if n2 == 0 {
		return
	}
	k := (vx*d.span.X + vy*d.span.Y) / n2
	if short := math.Min(math.Abs(d.span.X), math.Abs(d.span.Y)); short > 0 {
		k = math.Max(k, minExtent/short)
	} else {
		k = math.Max(k, 0.01)
	}
	sx, sy := st.ScaleX*k, st.ScaleY*k
	ox, oy := scene.FromTransform(0, 0, sx, sy, st.Rotation).TransformPoint(d.local.X, d.local.Y)
	_ = s.scene.Update(d.id, func(n *scene.Node) {
		n.ScaleX, n.ScaleY = sx, sy
		n.X, n.Y = d.fixed.X-ox, d.fixed.Y-oy
	})
}

func (s *Session) rotateTo(d *dragState, p scene.Point) {
	st := d.before
	a := math.Atan2(p.Y-d.pivot.Y, p.X-d.pivot.X)
	deg := normalizeAngle(st.Rotation + (a-d.angle)*180/math.Pi)
	n, err := s.scene.Node(d.id)
	if err != nil {
		return
	}
	cx, cy := n.LocalBounds().Center()
	ox, oy := scene.FromTransform(0, 0, st.ScaleX, st.ScaleY, deg).TransformPoint(cx, cy)
	_ = s.scene.Update(d.id, func(n *scene.Node) {
		n.Rotation = deg
		n.X, n.Y = d.pivot.X-ox, d.pivot.Y-oy
	})
}

// PointerUp completes the current gesture and records it.
func (s *Session) PointerUp(x, y float64) {
	p := s.view.ToCanvas(x, y)
	if s.tool != nil {
		s.tool.Release(s, p)
		return
	}
	d := s.drag
	s.drag = nil
	if d == nil {
		return
	}
	if d.kind == gestureCrop {
		s.crop.Release()
		return
	}
	after, err := s.scene.Snapshot(d.id)
	if err != nil {
		return
	}
	action := history.Transform
	if d.kind == gestureMove {
		action = history.Move
	}
	s.recordChange(action, d.before, after)
}

// Dragging reports whether a pointer gesture is in progress.
func (s *Session) Dragging() bool { return s.drag != nil }

func unrotate(x, y, deg float64) (float64, float64) {
	rad := -deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return x*cos - y*sin, x*sin + y*cos
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
