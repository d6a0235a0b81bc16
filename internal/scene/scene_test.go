package scene

import (
	"errors"
	"image"
	"math"
	"testing"
)

func rectNode(x, y, w, h float64) *Node {
	n := NewNode(KindRect)
	n.X, n.Y, n.Width, n.Height = x, y, w, h
	return n
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func sameOrder(t *testing.T, got []*Node, want ...*Node) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d nodes want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v want %v", ids(got), ids(want))
		}
	}
}

func TestAddRemoveRedraw(t *testing.T) {
	s := New()
	var redraws []LayerID
	s.OnRedraw(func(l LayerID) { redraws = append(redraws, l) })

	a := rectNode(0, 0, 10, 10)
	if err := s.Add(a, LayerContent); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(a, LayerContent); !errors.Is(err, ErrExists) {
		t.Fatalf("duplicate add err = %v", err)
	}
	p, err := s.Remove(a.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if p.Layer != LayerContent || p.Index != 0 {
		t.Errorf("placement %+v", p)
	}
	if _, err := s.Remove(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v", err)
	}
	if len(redraws) != 2 || redraws[0] != LayerContent {
		t.Errorf("redraws %v", redraws)
	}
}

func TestMutatorsUnknownID(t *testing.T) {
	s := New()
	checks := map[string]error{
		"move":      s.Move("node_x", 1, 1),
		"opacity":   s.SetOpacity("node_x", 1),
		"transform": s.SetTransform("node_x", Transform{ScaleX: 1, ScaleY: 1}),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
	if _, err := s.Clone("node_x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("clone: %v", err)
	}
}

func TestRaiseLowerClamped(t *testing.T) {
	s := New()
	a, b, c := rectNode(0, 0, 1, 1), rectNode(0, 0, 1, 1), rectNode(0, 0, 1, 1)
	for _, n := range []*Node{a, b, c} {
		if err := s.Add(n, LayerContent); err != nil {
			t.Fatal(err)
		}
	}

	if changed, err := s.Raise(c.ID); err != nil || changed {
		t.Fatalf("raise top: changed=%v err=%v", changed, err)
	}
	if changed, err := s.Lower(a.ID); err != nil || changed {
		t.Fatalf("lower bottom: changed=%v err=%v", changed, err)
	}
	sameOrder(t, s.Nodes(LayerContent), a, b, c)

	if changed, _ := s.Raise(a.ID); !changed {
		t.Fatal("raise a should change order")
	}
	sameOrder(t, s.Nodes(LayerContent), b, a, c)
	if changed, _ := s.Lower(c.ID); !changed {
		t.Fatal("lower c should change order")
	}
	sameOrder(t, s.Nodes(LayerContent), b, c, a)

	if err := s.MoveTo(a.ID, 0); err != nil {
		t.Fatal(err)
	}
	sameOrder(t, s.Nodes(LayerContent), a, b, c)
}

func TestInsertRestoresPlacement(t *testing.T) {
	s := New()
	a, b, c := rectNode(0, 0, 1, 1), rectNode(0, 0, 1, 1), rectNode(0, 0, 1, 1)
	for _, n := range []*Node{a, b, c} {
		_ = s.Add(n, LayerContent)
	}
	p, _ := s.Remove(b.ID)
	if err := s.Insert(b, p); err != nil {
		t.Fatal(err)
	}
	sameOrder(t, s.Nodes(LayerContent), a, b, c)
}

func TestOpacityClamped(t *testing.T) {
	s := New()
	n := rectNode(0, 0, 1, 1)
	_ = s.Add(n, LayerContent)
	for in, want := range map[float64]float64{-0.5: 0, 0.4: 0.4, 7: 1} {
		_ = s.SetOpacity(n.ID, in)
		if n.Opacity != want {
			t.Errorf("SetOpacity(%v) = %v want %v", in, n.Opacity, want)
		}
	}
}

func TestCloneIsDeepWithNewIDs(t *testing.T) {
	g := NewNode(KindGroup)
	bg := rectNode(0, 0, 200, 100)
	bg.Style.Dash = []float64{5, 5}
	label := NewNode(KindText)
	label.Text = &TextData{Text: "hello", FontSize: 14}
	g.AddChild(bg)
	g.AddChild(label)

	c := g.Clone()
	if c.ID == g.ID || c.Children[0].ID == bg.ID || c.Children[1].ID == label.ID {
		t.Fatal("clone kept an id")
	}
	if c.Children[1].Parent() != c {
		t.Fatal("clone child parent not rebound")
	}
	c.Children[1].Text.Text = "changed"
	c.Children[0].Style.Dash[0] = 1
	if label.Text.Text != "hello" || bg.Style.Dash[0] != 5 {
		t.Fatal("clone shares payload with original")
	}
	if err := ValidateID(c.ID); err != nil {
		t.Fatal(err)
	}
}

func TestHitTestTopmostAndGroups(t *testing.T) {
	s := New()
	under := rectNode(0, 0, 100, 100)
	over := rectNode(50, 50, 100, 100)
	g := NewNode(KindGroup)
	g.X, g.Y = 300, 300
	g.AddChild(rectNode(0, 0, 20, 20))
	for _, n := range []*Node{under, over, g} {
		_ = s.Add(n, LayerContent)
	}

	if got := s.HitTest(60, 60); got != over {
		t.Errorf("overlap hit %v", got)
	}
	if got := s.HitTest(10, 10); got != under {
		t.Errorf("under hit %v", got)
	}
	if got := s.HitTest(310, 310); got != g {
		t.Errorf("group hit %v", got)
	}
	if got := s.HitTest(250, 250); got != nil {
		t.Errorf("empty hit %v", got)
	}
	if _, err := s.Node(g.Children[0].ID); err != nil {
		t.Errorf("child not indexed: %v", err)
	}
}

func TestHitTestRotatedAndArrow(t *testing.T) {
	s := New()
	n := rectNode(100, 100, 100, 10)
	n.Rotation = 90
	_ = s.Add(n, LayerContent)
	if got := s.HitTest(95, 150); got != n {
		t.Errorf("rotated hit missed")
	}
	if got := s.HitTest(150, 105); got != nil {
		t.Errorf("rotated hit should miss the unrotated area")
	}

	a := NewNode(KindArrow)
	a.Arrow = &ArrowData{Points: [4]float64{0, 0, 100, 0}, PointerWidth: 10, HitStrokeWidth: 10}
	a.Y = 400
	_ = s.Add(a, LayerContent)
	if s.HitTest(50, 403) != a {
		t.Error("arrow hit missed within tolerance")
	}
	if s.HitTest(50, 420) != nil {
		t.Error("arrow hit outside tolerance")
	}
}

func TestClientRectScaledFlipped(t *testing.T) {
	n := NewNode(KindImage)
	n.X, n.Y, n.Width, n.Height = 100, 50, 40, 20
	n.ScaleX = -2
	r := n.ClientRect()
	want := Rect{X: 20, Y: 50, Width: 80, Height: 20}
	if math.Abs(r.X-want.X) > 1e-9 || math.Abs(r.Width-want.Width) > 1e-9 || r.Y != want.Y || r.Height != want.Height {
		t.Errorf("client rect %+v want %+v", r, want)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := New()
	n := NewNode(KindImage)
	n.Image = &ImageData{Bitmap: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	_ = s.Add(n, LayerContent)
	before, _ := s.Snapshot(n.ID)

	_ = s.Move(n.ID, 5, 5)
	_ = s.SetTransform(n.ID, Transform{ScaleX: -1, ScaleY: 1, Rotation: 30})
	n.Image.Bitmap = image.NewRGBA(image.Rect(0, 0, 2, 2))
	after := n.State()
	if before.Equal(after) {
		t.Fatal("states should differ")
	}
	if err := s.Restore(before); err != nil {
		t.Fatal(err)
	}
	if !n.State().Equal(before) {
		t.Fatalf("restore mismatch: %+v vs %+v", n.State(), before)
	}
}

func TestClearLayer(t *testing.T) {
	s := New()
	a := rectNode(0, 0, 1, 1)
	_ = s.Add(a, LayerBackground)
	s.ClearLayer(LayerBackground)
	if s.Len(LayerBackground) != 0 || s.Contains(a.ID) {
		t.Fatal("layer not cleared")
	}
}
