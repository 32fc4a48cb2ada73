//go:build linux

package systheme

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"

	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/theme"
)

const (
	portalDest       = "org.freedesktop.portal.Desktop"
	portalPath       = "/org/freedesktop/portal/desktop"
	portalReadCall   = "org.freedesktop.portal.Settings.Read"
	appearanceNS     = "org.freedesktop.appearance"
	colorSchemeKey   = "color-scheme"
	portalPreferDark = 1
)

type linuxDetector struct{}

// Default returns the detector for this platform.
func Default() Detector { return linuxDetector{} }

// Detect asks the XDG desktop portal first and falls back to gsettings when
// no portal is running.
func (linuxDetector) Detect(ctx context.Context) (theme.SystemTheme, error) {
	st, err := detectPortal(ctx)
	if err == nil {
		return st, nil
	}
	log.Debug("desktop portal unavailable", logging.KeyError, err)
	return detectGSettings(ctx)
}

func detectPortal(ctx context.Context) (theme.SystemTheme, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return theme.SystemLight, fmt.Errorf("session bus: %w", err)
	}

	var v dbus.Variant
	obj := conn.Object(portalDest, portalPath)
	if err := obj.CallWithContext(ctx, portalReadCall, 0, appearanceNS, colorSchemeKey).Store(&v); err != nil {
		return theme.SystemLight, fmt.Errorf("read %s: %w", colorSchemeKey, err)
	}

	// Read wraps the value in a second variant.
	if inner, ok := v.Value().(dbus.Variant); ok {
		v = inner
	}
	scheme, ok := v.Value().(uint32)
	if !ok {
		return theme.SystemLight, fmt.Errorf("unexpected %s type %s", colorSchemeKey, v.Signature())
	}
	return fromDarkFlag(scheme == portalPreferDark), nil
}

func detectGSettings(ctx context.Context) (theme.SystemTheme, error) {
	out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err == nil && parseGSettings(string(out)) == theme.SystemDark {
		return theme.SystemDark, nil
	}
	// Older GNOME has no color-scheme key; the GTK theme name carries it.
	out, err = exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme").Output()
	if err != nil {
		return theme.SystemLight, fmt.Errorf("gsettings: %w", err)
	}
	return parseGSettings(string(out)), nil
}
