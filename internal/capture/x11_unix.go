//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// x11Screenshot reads the root window. Under Wayland the root only holds
// XWayland clients, so it refuses.
func x11Screenshot() (*image.RGBA, error) {
	if runningOnWayland() {
		return nil, fmt.Errorf("root window capture is unavailable under wayland")
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	w, h := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, w, h, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	return zpixmapToRGBA(setup, reply.Depth, reply.Data, int(w), int(h))
}

// zpixmapToRGBA converts BGRx scanlines to RGBA.
func zpixmapToRGBA(setup *xproto.SetupInfo, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(data) == 0 {
		return nil, fmt.Errorf("empty screen image")
	}
	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			bpp = int(f.BitsPerPixel) / 8
			break
		}
	}
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported screen depth %d", depth)
	}
	stride := len(data) / height
	if stride < width*bpp {
		return nil, fmt.Errorf("screen image shorter than %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			src := row[x*bpp:]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = src[2]
			img.Pix[i+1] = src[1]
			img.Pix[i+2] = src[0]
			img.Pix[i+3] = 0xff
		}
	}
	return img, nil
}

func listMonitors() ([]MonitorInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	var primary randr.Output
	if p, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primary = p.Output
	}
	var monitors []MonitorInfo
	for _, out := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, out, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: out == primary,
		})
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}
