// Package autostart registers the app to launch when the user logs in.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("autostart")

// Entry describes one login item.
type Entry struct {
	Name string
	Exec string
	Args []string

	// location is the registry subkey on Windows and the directory holding
	// the launcher file elsewhere.
	location string
}

// New returns an entry for exec stored at the platform's default location.
func New(name, exec string, args ...string) (*Entry, error) {
	loc, err := defaultLocation()
	if err != nil {
		return nil, fmt.Errorf("autostart location: %w", err)
	}
	return &Entry{Name: name, Exec: exec, Args: args, location: loc}, nil
}

// ForExecutable returns an entry launching the running binary with args.
func ForExecutable(name string, args ...string) (*Entry, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return New(name, exe, args...)
}

// Enable writes the login item, replacing any previous one.
func (e *Entry) Enable() error {
	if err := e.enable(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	log.Info("autostart enabled", "exec", e.Exec)
	return nil
}

// Disable removes the login item. Removing an absent item succeeds.
func (e *Entry) Disable() error {
	if err := e.disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	log.Info("autostart disabled")
	return nil
}

// Enabled reports whether a login item is registered.
func (e *Entry) Enabled() (bool, error) {
	return e.enabled()
}
