//go:build windows

package tray

import (
	"encoding/xml"
	"fmt"
	"os/exec"
	"strings"
)

// toastScript receives the toast XML as a parameter so nothing is
// interpolated into the script text.
const toastScript = `param([string]$xml, [string]$app)
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
$doc.LoadXml($xml)
$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier($app).Show($toast)`

func notifyOS(app, title, body string) error {
	cmd := exec.Command("powershell", "-NoProfile", "-Command", toastScript, "-xml", toastXML(title, body), "-app", app)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("toast: %w", err)
	}
	return nil
}

func toastXML(title, body string) string {
	return `<toast><visual><binding template="ToastText02">` +
		`<text id="1">` + xmlEscape(title) + `</text>` +
		`<text id="2">` + xmlEscape(body) + `</text>` +
		`</binding></visual></toast>`
}

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
