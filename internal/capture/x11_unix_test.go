//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("XDG_SESSION_TYPE=wayland not detected")
	}
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("WAYLAND_DISPLAY not detected")
	}
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("plain x11 reported as wayland")
	}
}

func TestZPixmapToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	// two BGRx pixels per row, padded to 12 bytes
	data := []byte{
		0x01, 0x02, 0x03, 0, 0x04, 0x05, 0x06, 0, 0, 0, 0, 0,
		0x07, 0x08, 0x09, 0, 0x0a, 0x0b, 0x0c, 0, 0, 0, 0, 0,
	}
	img, err := zpixmapToRGBA(setup, 24, data, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(1, 1); c.R != 0x0c || c.G != 0x0b || c.B != 0x0a || c.A != 0xff {
		t.Fatalf("pixel %v", c)
	}
	if _, err := zpixmapToRGBA(setup, 16, data, 2, 2); err == nil {
		t.Fatalf("unknown depth accepted")
	}
}
