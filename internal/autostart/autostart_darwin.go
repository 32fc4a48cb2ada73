//go:build darwin

package autostart

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

// LaunchAgents directory of the current user.
func defaultLocation() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

func (e *Entry) label() string {
	return "com." + strings.ToLower(e.Name) + ".tray"
}

func (e *Entry) fileName() string {
	return e.label() + ".plist"
}

func (e *Entry) render() []byte {
	var b bytes.Buffer
	str := func(s string) {
		b.WriteString("\t\t<string>")
		xml.EscapeText(&b, []byte(s))
		b.WriteString("</string>\n")
	}

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
`)
	str(e.label())
	b.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	str(e.Exec)
	for _, a := range e.Args {
		str(a)
	}
	b.WriteString("\t</array>\n\t<key>RunAtLoad</key>\n\t<true/>\n</dict>\n</plist>\n")
	return b.Bytes()
}
