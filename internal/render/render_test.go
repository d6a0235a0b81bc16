package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/iconcanvas/internal/scene"
)

func filledRect(x, y, w, h float64, c color.RGBA) *scene.Node {
	n := scene.NewNode(scene.KindRect)
	n.X, n.Y, n.Width, n.Height = x, y, w, h
	n.Style.Fill = c
	return n
}

func TestRasterizeDensityAndLayers(t *testing.T) {
	s := scene.New()
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	_ = s.Add(filledRect(0, 0, 20, 20, red), scene.LayerBackground)
	_ = s.Add(filledRect(5, 5, 5, 5, blue), scene.LayerContent)

	img := Rasterize(s, Options{Density: 3, Width: 20, Height: 20})
	if img.Bounds() != image.Rect(0, 0, 60, 60) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 2); got != red {
		t.Errorf("background pixel %v", got)
	}
	if got := img.RGBAAt(22, 22); got != blue {
		t.Errorf("content pixel %v", got)
	}

	s.SetLayerVisible(scene.LayerContent, false)
	img = Rasterize(s, Options{Density: 3, Width: 20, Height: 20})
	if got := img.RGBAAt(22, 22); got != red {
		t.Errorf("hidden layer drawn: %v", got)
	}
}

func TestRasterizeOpacityAndImage(t *testing.T) {
	s := scene.New()
	n := filledRect(0, 0, 10, 10, color.RGBA{0, 0, 0, 255})
	n.Opacity = 0.5
	_ = s.Add(n, scene.LayerContent)

	bmp := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			bmp.Set(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	im := scene.NewNode(scene.KindImage)
	im.X, im.Y, im.Width, im.Height = 10, 0, 10, 10
	im.Image = &scene.ImageData{Bitmap: bmp}
	_ = s.Add(im, scene.LayerContent)

	out := Rasterize(s, Options{Width: 20, Height: 10})
	if a := out.RGBAAt(5, 5).A; a < 120 || a > 135 {
		t.Errorf("half opacity alpha = %d", a)
	}
	if got := out.RGBAAt(15, 5); got.G < 250 || got.A < 250 {
		t.Errorf("image pixel %v", got)
	}
}

func TestRasterizeTextAndArrow(t *testing.T) {
	s := scene.New()
	label := scene.NewNode(scene.KindText)
	label.Width, label.Height = 100, 40
	label.Style.Fill = color.RGBA{0, 0, 0, 255}
	label.Text = &scene.TextData{Text: "Hello", FontSize: 20, Align: scene.AlignCenter}
	_ = s.Add(label, scene.LayerContent)

	out := Rasterize(s, Options{Width: 100, Height: 40})
	if !anyAlpha(out, image.Rect(0, 0, 100, 40)) {
		t.Fatal("text drew nothing")
	}

	s2 := scene.New()
	a := scene.NewNode(scene.KindArrow)
	a.Arrow = &scene.ArrowData{Points: [4]float64{10, 10, 90, 10}, PointerLength: 10, PointerWidth: 10}
	a.Style = scene.Style{Fill: color.RGBA{45, 55, 72, 255}, Stroke: color.RGBA{45, 55, 72, 255}, StrokeWidth: 2}
	_ = s2.Add(a, scene.LayerContent)
	out = Rasterize(s2, Options{Width: 100, Height: 20})
	if out.RGBAAt(50, 10).A == 0 {
		t.Error("arrow shaft missing")
	}
	if out.RGBAAt(83, 12).A == 0 {
		t.Error("arrow head missing")
	}
}

func TestArrowHeadZeroLength(t *testing.T) {
	if ArrowHead(1, 1, 1, 1, 10, 10) != nil {
		t.Fatal("zero length arrow should have no head")
	}
	h := ArrowHead(0, 0, 10, 0, 4, 6)
	if h[0] != (scene.Point{X: 10, Y: 0}) || h[1].X != 6 || h[2].X != 6 {
		t.Fatalf("head %v", h)
	}
}

func TestWrapText(t *testing.T) {
	face := Face(14)
	if face == nil {
		t.Fatal("no face")
	}
	lines := WrapText(face, "Double click to edit", 40)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	if got := WrapText(face, "a\n\nb", 0); len(got) != 3 {
		t.Fatalf("newlines not kept: %q", got)
	}
}

func anyAlpha(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				return true
			}
		}
	}
	return false
}
