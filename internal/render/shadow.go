package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow put behind an exported composition.
type ShadowOptions struct {
	Sigma   float64
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is a soft shadow below and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Sigma:   8,
		Offset:  image.Pt(12, 12),
		Opacity: 0.5,
	}
}

// ApplyShadow places img on a larger canvas over a blurred silhouette of
// itself. It returns the new image, zero based, and the point where img's
// top-left corner landed.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := math.Min(opts.Opacity, 1)
	sigma := math.Max(opts.Sigma, 0)
	pad := int(math.Ceil(sigma * 3))

	sb := img.Bounds()
	padded := sb.Inset(-pad)
	shadow := padded.Add(opts.Offset)
	total := sb.Union(shadow)

	silhouette := image.NewNRGBA(padded.Sub(padded.Min))
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				silhouette.SetNRGBA(x-padded.Min.X, y-padded.Min.Y, color.NRGBA{A: a})
			}
		}
	}
	var blurred image.Image = silhouette
	if sigma > 0 {
		blurred = imaging.Blur(silhouette, sigma)
	}

	dst := image.NewRGBA(total.Sub(total.Min))
	at := shadow.Min.Sub(total.Min)
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, blurred.Bounds().Add(at), blurred, image.Point{}, mask, image.Point{}, draw.Over)

	shift := sb.Min.Sub(total.Min)
	draw.Draw(dst, sb.Sub(total.Min), img, sb.Min, draw.Over)
	return dst, shift
}
