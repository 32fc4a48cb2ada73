//go:build windows

package sysinfo

import "os"

func rootPath() string {
	if d := os.Getenv("SystemDrive"); d != "" {
		return d + `\`
	}
	return `C:\`
}
