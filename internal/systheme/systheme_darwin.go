//go:build darwin

package systheme

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/iconify-tray/iconify/internal/theme"
)

type defaultsDetector struct{}

// Default returns the detector for this platform.
func Default() Detector { return defaultsDetector{} }

// AppleInterfaceStyle is only set while dark mode is on; defaults exits
// non-zero when the key is absent.
func (defaultsDetector) Detect(ctx context.Context) (theme.SystemTheme, error) {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return theme.SystemLight, nil
		}
		return theme.SystemLight, err
	}
	return fromDarkFlag(bytes.EqualFold(bytes.TrimSpace(out), []byte("dark"))), nil
}
