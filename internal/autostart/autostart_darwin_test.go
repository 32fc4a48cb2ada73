//go:build darwin

package autostart

import (
	"strings"
	"testing"
)

func TestLaunchAgentPlist(t *testing.T) {
	e := &Entry{Name: "Iconify", Exec: "/Applications/Iconify & Co/iconify", Args: []string{"run"}}
	got := string(e.render())
	for _, want := range []string{
		"<string>com.iconify.tray</string>",
		"<string>/Applications/Iconify &amp; Co/iconify</string>",
		"<string>run</string>",
		"<key>RunAtLoad</key>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("plist missing %q:\n%s", want, got)
		}
	}
}
