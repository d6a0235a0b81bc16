package editor

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// ErrNoText is returned when a node has no text to edit.
var ErrNoText = errors.New("node has no text")

// TextSurface describes the label being edited so the host can overlay
// a matching input. Bounds is in canvas units; multiply by Zoom for
// stage pixels.
type TextSurface struct {
	Node       string
	Bounds     scene.Rect
	Zoom       float64
	FontSize   float64
	FontFamily string
	Align      scene.Align
	Padding    float64
	Color      color.RGBA
	Text       string
}

// TextEditor is the host's in-place text input. Open shows the surface
// and calls commit with the final value once; a cancelled edit never
// calls it.
type TextEditor interface {
	Open(surface TextSurface, commit func(text string))
}

// textNode returns n itself or its first text descendant.
func textNode(n *scene.Node) *scene.Node {
	var found *scene.Node
	n.Walk(func(c *scene.Node) {
		if found == nil && c.Kind == scene.KindText && c.Text != nil {
			found = c
		}
	})
	return found
}

// EditText opens the host editor on the label of id.
func (s *Session) EditText(id string) error {
	n, err := s.scene.Node(id)
	if err != nil {
		return err
	}
	label := textNode(n)
	if label == nil {
		return fmt.Errorf("edit %s: %w", id, ErrNoText)
	}
	if s.textEditor == nil {
		return fmt.Errorf("edit %s: %w", id, ErrUnavailable)
	}
	s.selectID(n.Root().ID)
	t := label.Text
	surface := TextSurface{
		Node:       label.ID,
		Bounds:     label.ClientRect(),
		Zoom:       s.view.Zoom(),
		FontSize:   t.FontSize,
		FontFamily: t.FontFamily,
		Align:      t.Align,
		Padding:    t.Padding,
		Color:      label.Style.Fill,
		Text:       t.Text,
	}
	labelID := label.ID
	s.textEditor.Open(surface, func(text string) {
		if err := s.SetText(labelID, text); err != nil {
			s.logf("edit text: %v", err)
		}
	})
	return nil
}

// SetText replaces the text of a label and records it when it changed.
func (s *Session) SetText(id, text string) error {
	n, err := s.scene.Node(id)
	if err != nil {
		return err
	}
	if n.Text == nil {
		return fmt.Errorf("edit %s: %w", id, ErrNoText)
	}
	return s.mutate(history.Text, id, func(n *scene.Node) {
		n.Text.Text = text
	})
}

// DoubleClick opens the text editor on the labelled node under (x, y).
func (s *Session) DoubleClick(x, y float64) error {
	if s.tool != nil || s.crop.Active() {
		return nil
	}
	p := s.view.ToCanvas(x, y)
	n := s.scene.HitTest(p.X, p.Y)
	if n == nil || textNode(n) == nil {
		return nil
	}
	s.drag = nil
	return s.EditText(n.ID)
}
