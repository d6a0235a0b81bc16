// Package crop implements the interactive crop session: an overlay
// rectangle confined to the target's bounds, and the resample step that
// turns the overlay into a pixel region of the source bitmap.
package crop

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/example/iconcanvas/internal/scene"
)

// ErrResourceUnavailable means the source bitmap is missing or the mapped
// region is empty; the crop is abandoned without touching the target.
var ErrResourceUnavailable = errors.New("crop source unavailable")

// ErrInactive is returned by operations that need an active session.
var ErrInactive = errors.New("no crop in progress")

// HandleSize is the side of a corner anchor in canvas units.
const HandleSize = 8

// minSize keeps the overlay from collapsing while dragging.
const minSize = 1

// Handle identifies the part of the overlay a drag started on.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleTopLeft
	HandleTopRight
	HandleBottomRight
	HandleBottomLeft
)

// Session is the state handed from the interactive phase to the resample step.
type Session struct {
	Target  string
	Bounds  scene.Rect // target client rect when the crop started
	Overlay scene.Rect
}

// Engine is the Inactive/Active crop state machine.
type Engine struct {
	active    bool
	sess      Session
	drag      Handle
	dragStart scene.Point
	dragRect  scene.Rect
}

// Active reports whether a crop session is open.
func (e *Engine) Active() bool { return e.active }

// Session returns the open session.
func (e *Engine) Session() Session { return e.sess }

// Start opens a session on target with the overlay covering bounds.
func (e *Engine) Start(target string, bounds scene.Rect) error {
	if bounds.IsEmpty() {
		return fmt.Errorf("crop %s: %w", target, ErrResourceUnavailable)
	}
	e.active = true
	e.drag = HandleNone
	e.sess = Session{Target: target, Bounds: bounds, Overlay: bounds}
	return nil
}

// Propose is the overlay's bound-box function. A rectangle that leaves the
// target bounds, or is smaller than a unit, is rejected and the previous
// overlay kept.
func (e *Engine) Propose(r scene.Rect) bool {
	if !e.active {
		return false
	}
	r = r.Normalize()
	if r.Width < minSize || r.Height < minSize || !e.sess.Bounds.ContainsRect(r) {
		return false
	}
	e.sess.Overlay = r
	return true
}

// HandleRects returns the four corner anchors in TL, TR, BR, BL order.
func (e *Engine) HandleRects() []scene.Rect {
	o := e.sess.Overlay
	hs := float64(HandleSize) / 2
	at := func(x, y float64) scene.Rect {
		return scene.Rect{X: x - hs, Y: y - hs, Width: HandleSize, Height: HandleSize}
	}
	return []scene.Rect{
		at(o.X, o.Y),
		at(o.X+o.Width, o.Y),
		at(o.X+o.Width, o.Y+o.Height),
		at(o.X, o.Y+o.Height),
	}
}

// HandleAt returns the handle under p. slop widens the anchors, which
// lets a zoomed out view keep them grabbable.
func (e *Engine) HandleAt(p scene.Point, slop float64) Handle {
	if !e.active {
		return HandleNone
	}
	for i, r := range e.HandleRects() {
		if r.Inset(-slop).Contains(p.X, p.Y) {
			return Handle(i + int(HandleTopLeft))
		}
	}
	if e.sess.Overlay.Contains(p.X, p.Y) {
		return HandleMove
	}
	return HandleNone
}

// Press begins an overlay drag. It reports whether p grabbed the overlay.
func (e *Engine) Press(p scene.Point, slop float64) bool {
	e.drag = e.HandleAt(p, slop)
	e.dragStart = p
	e.dragRect = e.sess.Overlay
	return e.drag != HandleNone
}

// Drag updates the overlay from the pointer, subject to Propose.
func (e *Engine) Drag(p scene.Point) {
	if !e.active || e.drag == HandleNone {
		return
	}
	dx, dy := p.X-e.dragStart.X, p.Y-e.dragStart.Y
	r := e.dragRect
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	switch e.drag {
	case HandleMove:
		b := e.sess.Bounds
		dx = math.Max(b.X-x0, math.Min(dx, b.X+b.Width-x1))
		dy = math.Max(b.Y-y0, math.Min(dy, b.Y+b.Height-y1))
		x0, x1, y0, y1 = x0+dx, x1+dx, y0+dy, y1+dy
	case HandleTopLeft:
		x0, y0 = x0+dx, y0+dy
	case HandleTopRight:
		x1, y0 = x1+dx, y0+dy
	case HandleBottomRight:
		x1, y1 = x1+dx, y1+dy
	case HandleBottomLeft:
		x0, y1 = x0+dx, y1+dy
	}
	e.Propose(scene.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
}

// Release ends an overlay drag.
func (e *Engine) Release() {
	e.drag = HandleNone
}

// Dragging reports whether an overlay drag is in progress.
func (e *Engine) Dragging() bool { return e.drag != HandleNone }

// Cancel closes the session without side effects.
func (e *Engine) Cancel() {
	e.active = false
	e.drag = HandleNone
	e.sess = Session{}
}

// Finish closes the session and returns it for resampling.
func (e *Engine) Finish() (Session, error) {
	if !e.active {
		return Session{}, ErrInactive
	}
	s := e.sess
	e.Cancel()
	return s, nil
}

// Region maps overlay, given in the same displayed space as displayed,
// into pixel coordinates of a natural sized bitmap. flipX and flipY mirror
// the mapping for nodes drawn with a negative scale.
func Region(natural image.Point, displayed, overlay scene.Rect, flipX, flipY bool) (image.Rectangle, error) {
	if natural.X <= 0 || natural.Y <= 0 || displayed.IsEmpty() {
		return image.Rectangle{}, ErrResourceUnavailable
	}
	fx := float64(natural.X) / displayed.Width
	fy := float64(natural.Y) / displayed.Height
	u := overlay.X - displayed.X
	v := overlay.Y - displayed.Y
	if flipX {
		u = displayed.Width - (u + overlay.Width)
	}
	if flipY {
		v = displayed.Height - (v + overlay.Height)
	}
	r := image.Rect(
		int(math.Round(u*fx)),
		int(math.Round(v*fy)),
		int(math.Round((u+overlay.Width)*fx)),
		int(math.Round((v+overlay.Height)*fy)),
	).Intersect(image.Rect(0, 0, natural.X, natural.Y))
	if r.Empty() {
		return image.Rectangle{}, ErrResourceUnavailable
	}
	return r, nil
}

// Resample copies region, relative to the bitmap's origin, out of src into
// a new buffer anchored at 0,0.
func Resample(src image.Image, region image.Rectangle) (*image.NRGBA, error) {
	if src == nil {
		return nil, ErrResourceUnavailable
	}
	abs := region.Add(src.Bounds().Min)
	if abs.Intersect(src.Bounds()).Empty() {
		return nil, ErrResourceUnavailable
	}
	return imaging.Crop(src, abs), nil
}
