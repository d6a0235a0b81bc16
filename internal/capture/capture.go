// Package capture grabs the desktop so a screenshot can be placed on the
// canvas. The XDG desktop portal is tried first; X11 sessions without a
// portal fall back to reading the root window.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Options tunes a capture.
type Options struct {
	// Monitor selects one output: an index, "primary" or part of a name.
	// Empty keeps the whole desktop.
	Monitor string
	// Interactive lets the portal ask the user what to capture.
	Interactive bool
	// IncludeCursor embeds the pointer where the backend supports it.
	IncludeCursor bool
}

// ErrUnsupported is returned on platforms with no capture backend.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

var (
	portalFn   = portalScreenshot
	x11Fn      = x11Screenshot
	monitorsFn = listMonitors
)

// Screenshot captures the desktop, or the selected monitor.
func Screenshot(opts Options) (*image.RGBA, error) {
	img, err := portalFn(opts)
	if err != nil {
		if opts.Interactive || !isPortalUnsupportedError(err) {
			return nil, err
		}
		fallback, ferr := x11Fn()
		if ferr != nil {
			return nil, fmt.Errorf("portal: %v; x11 fallback: %w", err, ferr)
		}
		img = fallback
	}
	if opts.Monitor == "" {
		return img, nil
	}
	monitors, err := monitorsFn()
	if err != nil {
		return nil, err
	}
	m, err := FindMonitor(monitors, opts.Monitor)
	if err != nil {
		return nil, err
	}
	return cropTo(img, m.Rect)
}

// Grabber adapts Screenshot to a zero argument function.
func Grabber(opts Options) func() (image.Image, error) {
	return func() (image.Image, error) {
		img, err := Screenshot(opts)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
}

func cropTo(src *image.RGBA, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("monitor %v is outside the captured image", r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst, nil
}
