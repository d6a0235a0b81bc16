//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
	})
}

func TestWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	if err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, errNoDisplay) {
		t.Fatalf("write: got %v", err)
	}
	if _, err := (System{}).ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("read: got %v", err)
	}
}
