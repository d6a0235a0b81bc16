package editor

import (
	"image/color"

	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// Tool is a creation gesture. While a tool is active the session routes
// pointer input to it instead of the selection controller. A tool ends
// itself by calling Session.endTool.
type Tool interface {
	Name() string
	Enter(s *Session)
	Press(s *Session, p scene.Point)
	Move(s *Session, p scene.Point)
	Release(s *Session, p scene.Point)
	// Exit runs when the tool ends; cancelled is true for Escape or a
	// switch to another tool.
	Exit(s *Session, cancelled bool)
}

// Default styles for created nodes.
var (
	ArrowColor    = color.RGBA{0x2d, 0x37, 0x48, 0xff}
	TextBoxFill   = color.RGBA{0xeb, 0xf8, 0xff, 0xff}
	TextBoxStroke = color.RGBA{0x42, 0x99, 0xe1, 0xff}
	TextColor     = color.RGBA{0x2d, 0x37, 0x48, 0xff}
)

const (
	TextBoxWidth   = 200
	TextBoxHeight  = 100
	TextBoxLabel   = "Double click to edit"
	TextBoxFont    = "Inter, sans-serif"
	TextBoxPadding = 10
	TextBoxSize    = 14
)

// SetTool activates t, cancelling any tool already active.
func (s *Session) SetTool(t Tool) {
	if s.tool != nil {
		s.CancelTool()
	}
	if s.crop.Active() {
		s.CancelCrop()
	}
	s.drag = nil
	s.tool = t
	t.Enter(s)
	s.changed()
}

// ActiveTool returns the active tool or nil.
func (s *Session) ActiveTool() Tool { return s.tool }

// CancelTool abandons the active tool's gesture.
func (s *Session) CancelTool() {
	if t := s.tool; t != nil {
		s.tool = nil
		t.Exit(s, true)
		s.changed()
	}
}

func (s *Session) endTool() {
	if t := s.tool; t != nil {
		s.tool = nil
		t.Exit(s, false)
		s.changed()
	}
}

// NewArrowNode builds an arrow from (x, y) with a zero length shaft.
func NewArrowNode(x, y float64) *scene.Node {
	n := scene.NewNode(scene.KindArrow)
	n.Name = "arrow"
	n.X, n.Y = x, y
	n.Style = scene.Style{Fill: ArrowColor, Stroke: ArrowColor, StrokeWidth: 2}
	n.Arrow = &scene.ArrowData{PointerLength: 10, PointerWidth: 10, HitStrokeWidth: 10}
	return n
}

// ArrowTool draws one arrow by press, drag and release.
type ArrowTool struct {
	arrow *scene.Node
}

// Name implements Tool.
func (*ArrowTool) Name() string { return "arrow" }

// Enter implements Tool.
func (t *ArrowTool) Enter(s *Session) {
	t.arrow = nil
	s.Deselect()
}

// Press adds the provisional arrow; it is not in history yet.
func (t *ArrowTool) Press(s *Session, p scene.Point) {
	if t.arrow != nil {
		return
	}
	n := NewArrowNode(p.X, p.Y)
	if err := s.scene.Add(n, scene.LayerContent); err != nil {
		s.logf("arrow: %v", err)
		return
	}
	t.arrow = n
}

// Move drags the arrow head.
func (t *ArrowTool) Move(s *Session, p scene.Point) {
	if t.arrow == nil {
		return
	}
	_ = s.scene.Update(t.arrow.ID, func(n *scene.Node) {
		n.Arrow.Points[2] = p.X - n.X
		n.Arrow.Points[3] = p.Y - n.Y
	})
}

// Release finalizes the arrow, selects it and ends the tool.
func (t *ArrowTool) Release(s *Session, p scene.Point) {
	n := t.arrow
	if n == nil {
		return
	}
	t.Move(s, p)
	t.arrow = nil
	if pl, err := s.scene.Placement(n.ID); err == nil {
		s.selectID(n.ID)
		s.recordInsert(history.Add, n, pl)
	}
	s.endTool()
}

// Exit removes an unfinished arrow.
func (t *ArrowTool) Exit(s *Session, cancelled bool) {
	if t.arrow != nil {
		if _, err := s.scene.Remove(t.arrow.ID); err != nil {
			s.logf("arrow: %v", err)
		}
		t.arrow = nil
	}
}

// NewTextBox builds the default labelled box group at (x, y).
func NewTextBox(x, y float64) *scene.Node {
	g := scene.NewNode(scene.KindGroup)
	g.Name = "text-box"
	g.X, g.Y = x, y

	bg := scene.NewNode(scene.KindRect)
	bg.Width, bg.Height = TextBoxWidth, TextBoxHeight
	bg.Style = scene.Style{Fill: TextBoxFill, Stroke: TextBoxStroke, StrokeWidth: 1, CornerRadius: 4}
	g.AddChild(bg)

	label := scene.NewNode(scene.KindText)
	label.Width, label.Height = TextBoxWidth, TextBoxHeight
	label.Style = scene.Style{Fill: TextColor}
	label.Text = &scene.TextData{
		Text:       TextBoxLabel,
		FontSize:   TextBoxSize,
		FontFamily: TextBoxFont,
		Align:      scene.AlignCenter,
		Padding:    TextBoxPadding,
	}
	g.AddChild(label)
	return g
}

// TextBoxTool places one text box at the point where the pointer was
// pressed.
type TextBoxTool struct {
	pressed bool
	anchor  scene.Point
}

// Name implements Tool.
func (*TextBoxTool) Name() string { return "text" }

// Enter implements Tool.
func (t *TextBoxTool) Enter(s *Session) {
	t.pressed = false
	s.Deselect()
}

// Press implements Tool.
func (t *TextBoxTool) Press(s *Session, p scene.Point) {
	t.pressed = true
	t.anchor = p
}

// Move implements Tool.
func (t *TextBoxTool) Move(s *Session, p scene.Point) {}

// Release adds the box, selects it and ends the tool.
func (t *TextBoxTool) Release(s *Session, p scene.Point) {
	if !t.pressed {
		return
	}
	t.pressed = false
	if err := s.AddNode(NewTextBox(t.anchor.X, t.anchor.Y)); err != nil {
		s.logf("text box: %v", err)
	}
	s.endTool()
}

// Exit implements Tool.
func (t *TextBoxTool) Exit(s *Session, cancelled bool) { t.pressed = false }
