//go:build !windows

package autostart

import (
	"errors"
	"os"
	"path/filepath"
)

// Launcher files are owned by the user and written atomically.
func (e *Entry) enable() error {
	if err := os.MkdirAll(e.location, 0755); err != nil {
		return err
	}
	path := e.path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, e.render(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (e *Entry) disable() error {
	if err := os.Remove(e.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (e *Entry) enabled() (bool, error) {
	_, err := os.Stat(e.path())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (e *Entry) path() string {
	return filepath.Join(e.location, e.fileName())
}
