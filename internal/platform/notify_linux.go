//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification through org.freedesktop.Notifications.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	timeout := int32(-1)
	if opts.Timeout > 0 {
		timeout = int32(opts.Timeout.Milliseconds())
	}
	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant("transfer.complete"),
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.app(), uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}
