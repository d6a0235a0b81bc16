package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var errNoMonitors = errors.New("no monitors available")

// MonitorInfo describes one output in the desktop layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors returns the connected outputs.
func ListMonitors() ([]MonitorInfo, error) {
	return monitorsFn()
}

// FindMonitor resolves selector against monitors. It accepts "primary",
// an index with an optional leading '#', or a case insensitive part of
// the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "":
		return monitors[0], nil
	case "primary":
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, m := range monitors {
		if strings.Contains(strings.ToLower(m.Name), sel) {
			return m, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
