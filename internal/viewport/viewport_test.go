package viewport

import (
	"math"
	"reflect"
	"testing"

	"github.com/example/iconcanvas/internal/scene"
)

func lines(s *scene.Scene, layer scene.LayerID, name string) [][]float64 {
	var out [][]float64
	for _, n := range s.Nodes(layer) {
		if n.Name == name {
			out = append(out, n.Line)
		}
	}
	return out
}

func TestResizeIsIdempotent(t *testing.T) {
	s := scene.New()
	v := New(s, DefaultOptions())
	v.Resize(100, 60)
	first := lines(s, scene.LayerBackground, NameGridLine)
	v.Resize(100, 60)
	second := lines(s, scene.LayerBackground, NameGridLine)

	// 5 vertical (0..80) + 3 horizontal (0..40)
	if len(first) != 8 {
		t.Fatalf("grid lines = %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grid changed between identical resizes")
	}
	if got := s.Len(scene.LayerBackground); got != 9 {
		t.Fatalf("background nodes = %d", got)
	}
	if bottom := s.Nodes(scene.LayerBackground)[0]; bottom.Name != NameBackground || bottom.Width != 100 {
		t.Fatalf("background rect not at bottom: %+v", bottom)
	}
}

func TestGridToggleAndPreview(t *testing.T) {
	s := scene.New()
	v := New(s, DefaultOptions())
	v.Resize(40, 40)
	v.SetGrid(false)
	if n := len(lines(s, scene.LayerBackground, NameGridLine)); n != 0 {
		t.Fatalf("grid off left %d lines", n)
	}
	v.SetGrid(true)
	v.SetRuler(true)
	if !s.Layer(scene.LayerRuler).Visible || s.Len(scene.LayerRuler) == 0 {
		t.Fatal("ruler not shown")
	}
	v.SetPreview(true)
	if s.Layer(scene.LayerRuler).Visible || len(lines(s, scene.LayerBackground, NameGridLine)) != 0 {
		t.Fatal("preview should hide grid and ruler")
	}
	v.SetPreview(false)
	if !s.Layer(scene.LayerRuler).Visible {
		t.Fatal("ruler not restored after preview")
	}
}

func TestRulerLabels(t *testing.T) {
	s := scene.New()
	v := New(s, DefaultOptions())
	v.SetRuler(true)
	v.Resize(120, 60)
	var labels []string
	for _, n := range s.Nodes(scene.LayerRuler) {
		if n.Name == NameRulerLabel {
			labels = append(labels, n.Text.Text)
		}
	}
	want := []string{"0", "50", "100", "0", "50"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels %v want %v", labels, want)
	}
}

func TestZoomSteps(t *testing.T) {
	v := New(scene.New(), DefaultOptions())
	var seen float64
	v.OnZoom(func(z float64) { seen = z })
	v.ZoomIn()
	if math.Abs(v.Zoom()-1.2) > 1e-9 || seen != v.Zoom() {
		t.Fatalf("zoom in = %v", v.Zoom())
	}
	v.ZoomOut()
	v.ZoomOut()
	if math.Abs(v.Zoom()-1/1.2) > 1e-9 {
		t.Fatalf("zoom out = %v", v.Zoom())
	}
	p := v.ToCanvas(100, 50)
	if x, y := v.ToScreen(p); math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Fatalf("screen round trip %v,%v", x, y)
	}
	v.SetZoom(1000)
	if v.Zoom() != MaxZoom {
		t.Fatalf("zoom not clamped: %v", v.Zoom())
	}
}
