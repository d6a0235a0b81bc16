package crop

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/iconcanvas/internal/scene"
)

func TestRegionScalesDisplayedToNatural(t *testing.T) {
	displayed := scene.Rect{Width: 200, Height: 150}
	overlay := scene.Rect{X: 50, Y: 50, Width: 100, Height: 75}
	got, err := Region(image.Pt(400, 300), displayed, overlay, false, false)
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if want := image.Rect(100, 100, 300, 250); got != want {
		t.Fatalf("region %v want %v", got, want)
	}
}

func TestRegionFlippedAndOffset(t *testing.T) {
	displayed := scene.Rect{X: 10, Y: 20, Width: 100, Height: 100}
	overlay := scene.Rect{X: 10, Y: 20, Width: 25, Height: 50}
	got, err := Region(image.Pt(100, 100), displayed, overlay, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(75, 0, 100, 50); got != want {
		t.Fatalf("flipped region %v want %v", got, want)
	}
}

func TestRegionUnavailable(t *testing.T) {
	_, err := Region(image.Point{}, scene.Rect{Width: 1, Height: 1}, scene.Rect{Width: 1, Height: 1}, false, false)
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Resample(nil, image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("nil source err = %v", err)
	}
}

func TestResampleCopiesPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	red := color.RGBA{255, 0, 0, 255}
	src.Set(100, 100, red)
	src.Set(299, 249, red)

	out, err := Resample(src, image.Rect(100, 100, 300, 250))
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 200, 150) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if got := color.RGBAModel.Convert(out.At(0, 0)); got != red {
		t.Errorf("top-left %v", got)
	}
	if got := color.RGBAModel.Convert(out.At(199, 149)); got != red {
		t.Errorf("bottom-right %v", got)
	}
}

func TestProposeRejectsOutsideBounds(t *testing.T) {
	var e Engine
	bounds := scene.Rect{X: 10, Y: 10, Width: 100, Height: 80}
	if err := e.Start("node_a", bounds); err != nil {
		t.Fatal(err)
	}
	if e.Session().Overlay != bounds {
		t.Fatalf("initial overlay %+v", e.Session().Overlay)
	}
	inside := scene.Rect{X: 20, Y: 20, Width: 30, Height: 30}
	if !e.Propose(inside) {
		t.Fatal("inside proposal rejected")
	}
	if e.Propose(scene.Rect{X: 5, Y: 20, Width: 30, Height: 30}) {
		t.Fatal("outside proposal accepted")
	}
	if e.Session().Overlay != inside {
		t.Fatalf("overlay changed to %+v", e.Session().Overlay)
	}
}

func TestDragHandlesStayInside(t *testing.T) {
	var e Engine
	_ = e.Start("node_a", scene.Rect{Width: 100, Height: 100})

	if !e.Press(scene.Point{X: 100, Y: 100}, 0) {
		t.Fatal("bottom-right handle not grabbed")
	}
	e.Drag(scene.Point{X: 60, Y: 50})
	e.Release()
	if got := e.Session().Overlay; got != (scene.Rect{Width: 60, Height: 50}) {
		t.Fatalf("after resize %+v", got)
	}

	// Growing past the bounds is rejected, keeping the last valid overlay.
	e.Press(scene.Point{X: 60, Y: 50}, 0)
	e.Drag(scene.Point{X: 140, Y: 50})
	e.Release()
	if got := e.Session().Overlay; got.Width != 60 {
		t.Fatalf("overlay escaped bounds: %+v", got)
	}

	// Moving is clamped to the bounds.
	e.Press(scene.Point{X: 30, Y: 25}, 0)
	e.Drag(scene.Point{X: 200, Y: 25})
	e.Release()
	if got := e.Session().Overlay; got != (scene.Rect{X: 40, Width: 60, Height: 50}) {
		t.Fatalf("after move %+v", got)
	}
}

func TestCancelAndFinish(t *testing.T) {
	var e Engine
	if _, err := e.Finish(); !errors.Is(err, ErrInactive) {
		t.Fatalf("finish inactive err = %v", err)
	}
	_ = e.Start("node_a", scene.Rect{Width: 10, Height: 10})
	e.Cancel()
	if e.Active() {
		t.Fatal("cancel left session active")
	}
	_ = e.Start("node_b", scene.Rect{Width: 10, Height: 10})
	s, err := e.Finish()
	if err != nil || s.Target != "node_b" || e.Active() {
		t.Fatalf("finish %+v %v", s, err)
	}
	if err := e.Start("node_c", scene.Rect{}); !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("empty bounds err = %v", err)
	}
}
