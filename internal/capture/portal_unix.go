//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

// portalTimeout bounds how long an interactive portal dialog may stay open.
const portalTimeout = 2 * time.Minute

var portalHandleToken = func() string {
	return "iconcanvas_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func portalOptions(opts Options) map[string]dbus.Variant {
	cursor := "hidden"
	if opts.IncludeCursor {
		cursor = "embedded"
	}
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"interactive":  dbus.MakeVariant(opts.Interactive),
		"modal":        dbus.MakeVariant(opts.Interactive),
		"cursor_mode":  dbus.MakeVariant(cursor),
	}
}

func portalScreenshot(opts Options) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.portal.Request"),
		dbus.WithMatchMember("Response"),
	); err != nil {
		return nil, fmt.Errorf("portal subscribe: %w", err)
	}

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions(opts))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	timeout := time.After(portalTimeout)
	for {
		select {
		case sig := <-sigc:
			if sig == nil || sig.Path != handle {
				continue
			}
			return portalResult(sig)
		case <-timeout:
			return nil, fmt.Errorf("portal screenshot: no response after %s", portalTimeout)
		}
	}
}

func portalResult(sig *dbus.Signal) (*image.RGBA, error) {
	if len(sig.Body) < 2 {
		return nil, fmt.Errorf("portal screenshot: malformed response")
	}
	if code, ok := sig.Body[0].(uint32); ok && code != 0 {
		return nil, fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	results, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("portal screenshot: malformed results")
	}
	v, ok := results["uri"]
	if !ok {
		return nil, fmt.Errorf("portal screenshot: response missing image uri")
	}
	raw, _ := v.Value().(string)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return nil, fmt.Errorf("portal screenshot: unexpected uri %q", raw)
	}
	return loadAndRemove(u.Path)
}

// loadAndRemove decodes the portal's temporary PNG and deletes it.
func loadAndRemove(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		f.Close()
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// isPortalUnsupportedError reports whether err means there is no usable
// screenshot portal, as opposed to the user declining.
func isPortalUnsupportedError(err error) bool {
	var derr *dbus.Error
	if errors.As(err, &derr) {
		switch derr.Name {
		case "org.freedesktop.DBus.Error.ServiceUnknown",
			"org.freedesktop.DBus.Error.UnknownMethod",
			"org.freedesktop.DBus.Error.UnknownObject",
			"org.freedesktop.DBus.Error.Disconnected",
			"org.freedesktop.portal.Error.NotSupported":
			return true
		}
		return false
	}
	return strings.HasPrefix(err.Error(), "dbus connect:")
}
