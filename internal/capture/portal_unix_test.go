//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "tok" }
	t.Cleanup(func() { portalHandleToken = prev })

	tests := []struct {
		name   string
		opts   Options
		cursor string
	}{
		{"defaults", Options{}, "hidden"},
		{"interactive with cursor", Options{Interactive: true, IncludeCursor: true}, "embedded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := portalOptions(tc.opts)
			if len(v) != 4 {
				t.Fatalf("got %d options", len(v))
			}
			if got := v["interactive"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("interactive = %v", got)
			}
			if got := v["modal"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("modal = %v", got)
			}
			if got := v["cursor_mode"].Value().(string); got != tc.cursor {
				t.Fatalf("cursor_mode = %q", got)
			}
			if got := v["handle_token"].Value().(string); got != "tok" {
				t.Fatalf("handle_token = %q", got)
			}
		})
	}
}

func TestHandleTokenIsPathSafe(t *testing.T) {
	tok := portalHandleToken()
	if !strings.HasPrefix(tok, "iconcanvas_") || strings.ContainsAny(tok, "-./") {
		t.Fatalf("token %q", tok)
	}
	if tok == portalHandleToken() {
		t.Fatalf("tokens repeat")
	}
}

func TestFallsBackToX11(t *testing.T) {
	stubBackends(t)
	portalFn = func(Options) (*image.RGBA, error) {
		return nil, fmt.Errorf("portal screenshot call: %w", &dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"})
	}
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	x11Fn = func() (*image.RGBA, error) { return want, nil }
	got, err := Screenshot(Options{})
	if err != nil || got != want {
		t.Fatalf("got %v %v", got, err)
	}
}

func TestFallbackFailureKeepsBothErrors(t *testing.T) {
	stubBackends(t)
	portalFn = func(Options) (*image.RGBA, error) {
		return nil, &dbus.Error{Name: "org.freedesktop.portal.Error.NotSupported"}
	}
	xerr := errors.New("no X server")
	x11Fn = func() (*image.RGBA, error) { return nil, xerr }
	_, err := Screenshot(Options{})
	if !errors.Is(err, xerr) || !strings.Contains(err.Error(), "x11 fallback") {
		t.Fatalf("got %v", err)
	}
}

func TestUserDeniedDoesNotFallBack(t *testing.T) {
	stubBackends(t)
	denied := &dbus.Error{Name: "org.freedesktop.portal.Error.NotAllowed"}
	portalFn = func(Options) (*image.RGBA, error) { return nil, denied }
	x11Fn = func() (*image.RGBA, error) {
		t.Fatalf("fallback used")
		return nil, nil
	}
	var derr *dbus.Error
	if _, err := Screenshot(Options{}); !errors.As(err, &derr) {
		t.Fatalf("got %v", err)
	}
}
