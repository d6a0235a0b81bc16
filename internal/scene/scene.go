// Package scene holds the editable model: nodes, their transforms and the
// three ordered layers they are drawn in. It performs no rendering and
// records no history; callers decide what one undoable step is.
package scene

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFound is returned for ids that are not in the scene.
	ErrNotFound = errors.New("node not found")
	// ErrExists is returned when adding a node whose id is already present.
	ErrExists = errors.New("node already in scene")
)

// LayerID names one of the fixed rendering buckets, bottom first.
type LayerID int

const (
	LayerBackground LayerID = iota
	LayerContent
	LayerRuler
	layerCount
)

func (l LayerID) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerContent:
		return "content"
	case LayerRuler:
		return "ruler"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Layer is an ordered list of layer level nodes in paint order.
type Layer struct {
	ID      LayerID
	Visible bool
	nodes   []*Node
}

// Placement records where a node sat so it can be put back exactly.
type Placement struct {
	Layer  LayerID
	Parent string // empty for layer level nodes
	Index  int
}

// Transform is the scale and rotation part of a node's transform.
type Transform struct {
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Scene is the single source of truth for drawable state.
type Scene struct {
	layers   [layerCount]*Layer
	byID     map[string]*Node
	layerOf  map[string]LayerID
	onRedraw func(LayerID)
}

// New returns an empty scene with all layers visible except the ruler.
func New() *Scene {
	s := &Scene{
		byID:    make(map[string]*Node),
		layerOf: make(map[string]LayerID),
	}
	for i := range s.layers {
		s.layers[i] = &Layer{ID: LayerID(i), Visible: LayerID(i) != LayerRuler}
	}
	return s
}

// OnRedraw installs the callback invoked after every mutation with the
// layer that needs repainting.
func (s *Scene) OnRedraw(fn func(LayerID)) {
	s.onRedraw = fn
}

func (s *Scene) redraw(l LayerID) {
	if s.onRedraw != nil {
		s.onRedraw(l)
	}
}

// Layer returns the layer with the given id.
func (s *Scene) Layer(id LayerID) *Layer {
	if id < 0 || id >= layerCount {
		return nil
	}
	return s.layers[id]
}

// Nodes returns a copy of the layer's nodes, bottom first.
func (s *Scene) Nodes(id LayerID) []*Node {
	l := s.Layer(id)
	if l == nil {
		return nil
	}
	return append([]*Node(nil), l.nodes...)
}

// Len is the number of layer level nodes in a layer.
func (s *Scene) Len(id LayerID) int {
	if l := s.Layer(id); l != nil {
		return len(l.nodes)
	}
	return 0
}

// SetLayerVisible shows or hides a whole layer.
func (s *Scene) SetLayerVisible(id LayerID, v bool) {
	l := s.Layer(id)
	if l == nil || l.Visible == v {
		return
	}
	l.Visible = v
	s.redraw(id)
}

// Node looks a node up by id, group children included.
func (s *Scene) Node(id string) (*Node, error) {
	n, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return n, nil
}

// Contains reports whether id is in the scene.
func (s *Scene) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Add appends n to the top of layer.
func (s *Scene) Add(n *Node, layer LayerID) error {
	return s.Insert(n, Placement{Layer: layer, Index: -1})
}

// Insert puts n back at p. A negative or out of range index appends.
func (s *Scene) Insert(n *Node, p Placement) error {
	l := s.Layer(p.Layer)
	if l == nil {
		return fmt.Errorf("unknown layer %d", p.Layer)
	}
	if n.ID == "" {
		n.ID = NewID()
	}
	var dup error
	n.Walk(func(c *Node) {
		if _, ok := s.byID[c.ID]; ok && dup == nil {
			dup = fmt.Errorf("%w: %s", ErrExists, c.ID)
		}
	})
	if dup != nil {
		return dup
	}
	if p.Parent != "" {
		parent, err := s.Node(p.Parent)
		if err != nil {
			return err
		}
		n.parent = parent
		parent.Children = insertAt(parent.Children, n, p.Index)
		p.Layer = s.layerOf[parent.ID]
	} else {
		n.parent = nil
		l.nodes = insertAt(l.nodes, n, p.Index)
	}
	n.Walk(func(c *Node) {
		s.byID[c.ID] = c
		s.layerOf[c.ID] = p.Layer
	})
	s.redraw(p.Layer)
	return nil
}

func insertAt(list []*Node, n *Node, idx int) []*Node {
	if idx < 0 || idx >= len(list) {
		return append(list, n)
	}
	list = append(list, nil)
	copy(list[idx+1:], list[idx:])
	list[idx] = n
	return list
}

// Placement reports where id currently sits.
func (s *Scene) Placement(id string) (Placement, error) {
	n, err := s.Node(id)
	if err != nil {
		return Placement{}, err
	}
	p := Placement{Layer: s.layerOf[id]}
	siblings := s.Layer(p.Layer).nodes
	if n.parent != nil {
		p.Parent = n.parent.ID
		siblings = n.parent.Children
	}
	p.Index = indexOf(siblings, n)
	return p, nil
}

// Remove detaches id (and its children) from the scene and returns where
// it was. The node itself is left intact so it can be re-inserted.
func (s *Scene) Remove(id string) (Placement, error) {
	p, err := s.Placement(id)
	if err != nil {
		return p, err
	}
	n := s.byID[id]
	if n.parent != nil {
		n.parent.Children = removeAt(n.parent.Children, p.Index)
		n.parent = nil
	} else {
		l := s.Layer(p.Layer)
		l.nodes = removeAt(l.nodes, p.Index)
	}
	n.Walk(func(c *Node) {
		delete(s.byID, c.ID)
		delete(s.layerOf, c.ID)
	})
	s.redraw(p.Layer)
	return p, nil
}

func removeAt(list []*Node, idx int) []*Node {
	copy(list[idx:], list[idx+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}

func indexOf(list []*Node, n *Node) int {
	for i, c := range list {
		if c == n {
			return i
		}
	}
	return -1
}

// ClearLayer removes every node of a layer.
func (s *Scene) ClearLayer(id LayerID) {
	l := s.Layer(id)
	if l == nil {
		return
	}
	for _, n := range l.nodes {
		n.Walk(func(c *Node) {
			delete(s.byID, c.ID)
			delete(s.layerOf, c.ID)
		})
	}
	l.nodes = nil
	s.redraw(id)
}

// Update applies fn to the node and requests a redraw. It is the generic
// mutator for payload edits such as text or bitmap replacement.
func (s *Scene) Update(id string, fn func(*Node)) error {
	n, err := s.Node(id)
	if err != nil {
		return err
	}
	fn(n)
	s.redraw(s.layerOf[id])
	return nil
}

// Move translates a node by dx, dy.
func (s *Scene) Move(id string, dx, dy float64) error {
	return s.Update(id, func(n *Node) {
		n.X += dx
		n.Y += dy
	})
}

// SetPosition places a node's origin at x, y.
func (s *Scene) SetPosition(id string, x, y float64) error {
	return s.Update(id, func(n *Node) {
		n.X, n.Y = x, y
	})
}

// SetTransform replaces scale and rotation.
func (s *Scene) SetTransform(id string, t Transform) error {
	return s.Update(id, func(n *Node) {
		n.ScaleX, n.ScaleY, n.Rotation = t.ScaleX, t.ScaleY, t.Rotation
	})
}

// SetOpacity sets opacity clamped to [0, 1].
func (s *Scene) SetOpacity(id string, v float64) error {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))
	return s.Update(id, func(n *Node) {
		n.Opacity = v
	})
}

// Raise swaps the node with the sibling above it. It reports whether the
// order changed; the topmost node stays put.
func (s *Scene) Raise(id string) (bool, error) {
	return s.shift(id, 1)
}

// Lower swaps the node with the sibling below it.
func (s *Scene) Lower(id string) (bool, error) {
	return s.shift(id, -1)
}

// MoveTo places the node at index among its siblings.
func (s *Scene) MoveTo(id string, index int) error {
	p, err := s.Placement(id)
	if err != nil {
		return err
	}
	list := s.siblings(id)
	index = max(0, min(index, len(*list)-1))
	n := (*list)[p.Index]
	*list = removeAt(*list, p.Index)
	*list = insertAt(*list, n, index)
	s.redraw(p.Layer)
	return nil
}

func (s *Scene) siblings(id string) *[]*Node {
	n := s.byID[id]
	if n.parent != nil {
		return &n.parent.Children
	}
	return &s.Layer(s.layerOf[id]).nodes
}

func (s *Scene) shift(id string, d int) (bool, error) {
	p, err := s.Placement(id)
	if err != nil {
		return false, err
	}
	list := *s.siblings(id)
	j := p.Index + d
	if j < 0 || j >= len(list) {
		return false, nil
	}
	list[p.Index], list[j] = list[j], list[p.Index]
	s.redraw(p.Layer)
	return true, nil
}

// Clone returns a detached deep copy of id with new ids.
func (s *Scene) Clone(id string) (*Node, error) {
	n, err := s.Node(id)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// ClientRect is the canvas space bounding box of id.
func (s *Scene) ClientRect(id string) (Rect, error) {
	n, err := s.Node(id)
	if err != nil {
		return Rect{}, err
	}
	return n.ClientRect(), nil
}

// HitTest returns the topmost layer level content node under (x, y), or
// nil. A hit on a group child resolves to the group.
func (s *Scene) HitTest(x, y float64) *Node {
	l := s.layers[LayerContent]
	for i := len(l.nodes) - 1; i >= 0; i-- {
		if n := l.nodes[i]; n.hit(x, y) {
			return n
		}
	}
	return nil
}
