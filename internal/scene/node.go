package scene

import (
	"image"
	"image/color"
	"math"
)

// Kind tags the payload a Node carries.
type Kind int

const (
	KindImage Kind = iota
	KindArrow
	KindRect
	KindText
	KindGroup
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindArrow:
		return "arrow"
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindGroup:
		return "group"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Capabilities lists what the interactive controllers may do to a kind.
type Capabilities struct {
	Draggable bool
	Resizable bool
	Rotatable bool
	Croppable bool
}

var capabilities = map[Kind]Capabilities{
	KindImage: {Draggable: true, Resizable: true, Rotatable: true, Croppable: true},
	KindArrow: {Draggable: true, Resizable: true, Rotatable: true},
	KindRect:  {Draggable: true, Resizable: true, Rotatable: true},
	KindText:  {Draggable: true, Resizable: true, Rotatable: true},
	KindGroup: {Draggable: true, Resizable: true, Rotatable: true},
	KindLine:  {},
}

// Capabilities returns the capability row for k.
func (k Kind) Capabilities() Capabilities {
	return capabilities[k]
}

// Align is the horizontal alignment of text inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style holds the paint attributes shared by shape kinds.
type Style struct {
	Fill         color.RGBA
	Stroke       color.RGBA
	StrokeWidth  float64
	CornerRadius float64
	Dash         []float64
}

// ImageData is the payload of an Image node. Bitmap is treated as
// immutable; replacing it swaps the pointer.
type ImageData struct {
	Bitmap image.Image
	Source string
}

// NaturalSize is the pixel size of the decoded bitmap.
func (d *ImageData) NaturalSize() (int, int) {
	if d == nil || d.Bitmap == nil {
		return 0, 0
	}
	b := d.Bitmap.Bounds()
	return b.Dx(), b.Dy()
}

// ArrowData is the payload of an Arrow node. Points are x1,y1,x2,y2 in
// the node's local frame.
type ArrowData struct {
	Points         [4]float64
	PointerLength  float64
	PointerWidth   float64
	HitStrokeWidth float64
}

// TextData is the payload of a Text node; the text box is Width wide.
type TextData struct {
	Text       string
	FontSize   float64
	FontFamily string
	Align      Align
	Padding    float64
}

// Node is one drawable entity. Kind selects which payload is set.
type Node struct {
	ID       string
	Kind     Kind
	Name     string
	X, Y     float64
	Width    float64
	Height   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees
	Opacity  float64
	Locked   bool
	Favorite bool
	Style    Style

	Image *ImageData
	Arrow *ArrowData
	Text  *TextData
	Line  []float64

	Children []*Node

	parent *Node
}

// NewNode returns a node of kind k with identity transform and full opacity.
func NewNode(k Kind) *Node {
	return &Node{ID: NewID(), Kind: k, ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Parent returns the owning group, or nil for a layer level node.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the layer level ancestor of n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Capabilities returns the kind capabilities.
func (n *Node) Capabilities() Capabilities { return n.Kind.Capabilities() }

// Draggable is derived from the lock flag and the kind.
func (n *Node) Draggable() bool {
	return !n.Locked && n.Kind.Capabilities().Draggable
}

// AddChild appends c to a group.
func (n *Node) AddChild(c *Node) {
	c.parent = n
	n.Children = append(n.Children, c)
}

// LocalMatrix maps the node's local frame into its parent's frame.
func (n *Node) LocalMatrix() Matrix2D {
	return FromTransform(n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation)
}

// WorldMatrix maps the node's local frame into canvas space.
func (n *Node) WorldMatrix() Matrix2D {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Multiply(m)
	}
	return m
}

// LocalBounds is the untransformed extent of the node's content.
func (n *Node) LocalBounds() Rect {
	switch n.Kind {
	case KindArrow:
		if n.Arrow == nil {
			return Rect{}
		}
		p := n.Arrow.Points
		pad := math.Max(n.Arrow.PointerWidth, n.Style.StrokeWidth) / 2
		return Rect{
			X:      math.Min(p[0], p[2]) - pad,
			Y:      math.Min(p[1], p[3]) - pad,
			Width:  math.Abs(p[2]-p[0]) + 2*pad,
			Height: math.Abs(p[3]-p[1]) + 2*pad,
		}
	case KindLine:
		return pointsBounds(n.Line).Inset(-n.Style.StrokeWidth / 2)
	case KindGroup:
		var r Rect
		for _, c := range n.Children {
			r = r.Union(c.LocalMatrix().TransformRect(c.LocalBounds()))
		}
		return r
	}
	return Rect{Width: n.Width, Height: n.Height}
}

// ClientRect is the canvas space bounding box of the transformed node.
func (n *Node) ClientRect() Rect {
	return n.WorldMatrix().TransformRect(n.LocalBounds())
}

// hit reports whether canvas point (x, y) lands on n.
func (n *Node) hit(x, y float64) bool {
	lx, ly := n.WorldMatrix().Invert().TransformPoint(x, y)
	switch n.Kind {
	case KindArrow:
		if n.Arrow == nil {
			return false
		}
		p := n.Arrow.Points
		tol := math.Max(n.Arrow.HitStrokeWidth, n.Arrow.PointerWidth) / 2
		return segmentDistance(lx, ly, p[0], p[1], p[2], p[3]) <= tol
	case KindLine:
		return false
	case KindGroup:
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i].hit(x, y) {
				return true
			}
		}
		return false
	}
	return Rect{Width: n.Width, Height: n.Height}.Contains(lx, ly)
}

// Clone returns a detached deep copy of n with fresh ids throughout.
func (n *Node) Clone() *Node {
	c := *n
	c.ID = NewID()
	c.parent = nil
	if n.Style.Dash != nil {
		c.Style.Dash = append([]float64(nil), n.Style.Dash...)
	}
	if n.Image != nil {
		img := *n.Image
		c.Image = &img
	}
	if n.Arrow != nil {
		a := *n.Arrow
		c.Arrow = &a
	}
	if n.Text != nil {
		t := *n.Text
		c.Text = &t
	}
	if n.Line != nil {
		c.Line = append([]float64(nil), n.Line...)
	}
	c.Children = nil
	for _, ch := range n.Children {
		c.AddChild(ch.Clone())
	}
	return &c
}

// Walk calls fn for n and every descendant, parents first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func pointsBounds(pts []float64) Rect {
	if len(pts) < 2 {
		return Rect{}
	}
	minX, minY, maxX, maxY := pts[0], pts[1], pts[0], pts[1]
	for i := 2; i+1 < len(pts); i += 2 {
		minX = math.Min(minX, pts[i])
		maxX = math.Max(maxX, pts[i])
		minY = math.Min(minY, pts[i+1])
		maxY = math.Max(maxY, pts[i+1])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
