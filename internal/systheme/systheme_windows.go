//go:build windows

package systheme

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/iconify-tray/iconify/internal/theme"
)

const personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// SystemUsesLightTheme governs the taskbar and tray; AppsUseLightTheme does not.
const lightThemeValue = "SystemUsesLightTheme"

type registryDetector struct{}

// Default returns the detector for this platform.
func Default() Detector { return registryDetector{} }

func (registryDetector) Detect(context.Context) (theme.SystemTheme, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return theme.SystemLight, nil
		}
		return theme.SystemLight, fmt.Errorf("open personalize key: %w", err)
	}
	defer key.Close()

	v, _, err := key.GetIntegerValue(lightThemeValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return theme.SystemLight, nil
		}
		return theme.SystemLight, fmt.Errorf("read %s: %w", lightThemeValue, err)
	}
	return fromDarkFlag(v == 0), nil
}
