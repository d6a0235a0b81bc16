//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func portalScreenshot(Options) (*image.RGBA, error) { return nil, ErrUnsupported }

func isPortalUnsupportedError(error) bool { return false }

func x11Screenshot() (*image.RGBA, error) { return nil, ErrUnsupported }

func listMonitors() ([]MonitorInfo, error) { return nil, ErrUnsupported }

func runningOnWayland() bool { return false }
