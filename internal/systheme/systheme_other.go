//go:build !windows && !darwin && !linux

package systheme

import "github.com/iconify-tray/iconify/internal/theme"

// Default returns a detector that always reports Light.
func Default() Detector { return Static(theme.SystemLight) }
