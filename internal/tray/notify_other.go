//go:build !windows && !darwin && !linux

package tray

import "errors"

func notifyOS(_, _, _ string) error {
	return errors.New("notifications not supported on this platform")
}
