package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Sigma: 2, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, shift := ApplyShadow(img, opts)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("output not zero based: %v", out.Bounds())
	}
	if out.Bounds().Dx() <= 10+opts.Offset.X || out.Bounds().Dy() <= 10+opts.Offset.Y {
		t.Fatalf("bounds %v too small for offset shadow", out.Bounds())
	}
	if got := out.RGBAAt(subject.X+shift.X, subject.Y+shift.Y); got.R != 255 || got.A != 255 {
		t.Fatalf("subject pixel moved or lost: %+v", got)
	}
	if out.RGBAAt(subject.X+shift.X+opts.Offset.X, subject.Y+shift.Y+opts.Offset.Y).A == 0 {
		t.Fatal("expected shadow alpha at the offset location")
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out, shift := ApplyShadow(img, ShadowOptions{Sigma: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if out != img || shift != (image.Point{}) {
		t.Fatal("zero opacity should return the input untouched")
	}
}

func TestApplyShadowBlurSpreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Sigma: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, shift := ApplyShadow(img, opts)
	base := shift.Add(opts.Offset)
	if out.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if out.RGBAAt(base.X+2, base.Y+2).A == 0 {
		t.Fatal("expected blurred alpha to reach a neighbor")
	}
}
