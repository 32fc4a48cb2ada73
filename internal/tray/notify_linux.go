//go:build linux

package tray

import (
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

// notifyOS talks to org.freedesktop.Notifications and falls back to
// notify-send when no session bus is reachable.
func notifyOS(app, title, body string) error {
	conn, err := dbus.SessionBus()
	if err == nil {
		obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
		call := obj.Call("org.freedesktop.Notifications.Notify", 0,
			app, uint32(0), "", title, body, []string{}, map[string]dbus.Variant{}, int32(-1))
		if call.Err == nil {
			return nil
		}
		err = call.Err
	}
	log.Debug("dbus notification unavailable, using notify-send", "error", err)

	if err := exec.Command("notify-send", "-a", app, title, body).Run(); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
