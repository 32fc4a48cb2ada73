//go:build !windows && !darwin

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// XDG autostart directory.
func defaultLocation() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

func (e *Entry) fileName() string {
	return strings.ToLower(e.Name) + ".desktop"
}

func (e *Entry) render() []byte {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	fmt.Fprintf(&b, "Exec=%s\n", e.execLine())
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return []byte(b.String())
}

// execLine quotes per the desktop entry spec's Exec key rules.
func (e *Entry) execLine() string {
	args := append([]string{e.Exec}, e.Args...)
	for i, a := range args {
		if strings.ContainsAny(a, " \t\"'\\$`") {
			r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
			args[i] = `"` + r.Replace(a) + `"`
		}
	}
	return strings.Join(args, " ")
}
