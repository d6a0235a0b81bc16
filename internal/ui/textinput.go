package ui

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/render"
	"github.com/example/iconcanvas/internal/scene"
)

// textInput is the in-place label editor shown over the stage. It
// implements editor.TextEditor.
type textInput struct {
	active  bool
	surface editor.TextSurface
	buf     []rune
	commit  func(string)
}

var _ editor.TextEditor = (*textInput)(nil)

// Open implements editor.TextEditor. An edit already in progress is
// committed first.
func (t *textInput) Open(surface editor.TextSurface, commit func(string)) {
	t.Commit()
	t.active = true
	t.surface = surface
	t.buf = []rune(surface.Text)
	t.commit = commit
}

// Active reports whether an edit is open.
func (t *textInput) Active() bool { return t.active }

// Text is the current value.
func (t *textInput) Text() string { return string(t.buf) }

// Commit closes the editor and hands the value to the session.
func (t *textInput) Commit() {
	if !t.active {
		return
	}
	fn, text := t.commit, string(t.buf)
	t.close()
	if fn != nil {
		fn(text)
	}
}

// Cancel closes the editor without committing.
func (t *textInput) Cancel() { t.close() }

func (t *textInput) close() {
	t.active = false
	t.buf = nil
	t.commit = nil
}

// HandleKey consumes a key press while the editor is open. Enter
// commits, Shift+Enter inserts a line break, Escape cancels.
func (t *textInput) HandleKey(e key.Event) bool {
	if !t.active {
		return false
	}
	if e.Direction == key.DirRelease {
		return true
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if e.Modifiers&key.ModShift != 0 {
			t.buf = append(t.buf, '\n')
			return true
		}
		t.Commit()
		return true
	case key.CodeEscape:
		t.Cancel()
		return true
	case key.CodeDeleteBackspace:
		if len(t.buf) > 0 {
			t.buf = t.buf[:len(t.buf)-1]
		}
		return true
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) && e.Modifiers&key.ModControl == 0 {
		t.buf = append(t.buf, e.Rune)
	}
	return true
}

// Rect is the editor box in stage pixels.
func (t *textInput) Rect() image.Rectangle {
	b := t.surface.Bounds
	z := t.surface.Zoom
	if z <= 0 {
		z = 1
	}
	return image.Rect(
		int(math.Floor(b.X*z)), int(math.Floor(b.Y*z)),
		int(math.Ceil((b.X+b.Width)*z)), int(math.Ceil((b.Y+b.Height)*z)),
	)
}

// Contains reports whether the stage pixel p falls on the editor.
func (t *textInput) Contains(p image.Point) bool {
	return t.active && p.In(t.Rect())
}

// Draw paints the editor over the stage image, which is in stage pixels.
func (t *textInput) Draw(dst *image.RGBA, border color.RGBA) {
	if !t.active {
		return
	}
	r := t.Rect()
	fillRect(dst, r, color.RGBA{255, 255, 255, 255})
	outline(dst, r, border)

	z := t.surface.Zoom
	if z <= 0 {
		z = 1
	}
	face := render.Face(t.surface.FontSize * z)
	if face == nil {
		return
	}
	pad := int(t.surface.Padding * z)
	width := float64(r.Dx() - 2*pad)
	lines := render.WrapText(face, string(t.buf)+"|", width)
	m := face.Metrics()
	lineH := m.Height.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.surface.Color), Face: face}
	for i, l := range lines {
		x := r.Min.X + pad
		switch t.surface.Align {
		case scene.AlignCenter:
			x += (int(width) - d.MeasureString(l).Ceil()) / 2
		case scene.AlignRight:
			x += int(width) - d.MeasureString(l).Ceil()
		}
		d.Dot = fixed.P(x, r.Min.Y+pad+m.Ascent.Ceil()+i*lineH)
		d.DrawString(l)
	}
}

// outline draws a one pixel rectangle border.
func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	src := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
}
