// Package systheme reads the operating system's light/dark preference and
// reports changes to it.
package systheme

import (
	"context"
	"strings"
	"time"

	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/theme"
)

var log = logging.L("systheme")

// Detector reads the current system theme.
type Detector interface {
	Detect(ctx context.Context) (theme.SystemTheme, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(ctx context.Context) (theme.SystemTheme, error)

func (f DetectorFunc) Detect(ctx context.Context) (theme.SystemTheme, error) { return f(ctx) }

// Static always reports the same theme.
type Static theme.SystemTheme

func (s Static) Detect(context.Context) (theme.SystemTheme, error) { return theme.SystemTheme(s), nil }

// Current detects the theme and falls back to Light on error.
func Current(ctx context.Context, d Detector) theme.SystemTheme {
	st, err := d.Detect(ctx)
	if err != nil {
		log.Debug("system theme unavailable, assuming light", logging.KeyError, err)
		return theme.SystemLight
	}
	return st
}

// Watch polls d every interval and calls onChange each time the detected
// theme differs from the previous reading. The first reading is taken
// immediately and is not reported. Read errors keep the previous value.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, d Detector, interval time.Duration, onChange func(theme.SystemTheme)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	last := Current(ctx, d)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := d.Detect(ctx)
			if err != nil {
				log.Debug("system theme poll failed", logging.KeyError, err)
				continue
			}
			if st == last {
				continue
			}
			log.Info("system theme changed", "from", last.String(), "to", st.String())
			last = st
			onChange(st)
		}
	}
}

// fromDarkFlag maps a "dark mode is on" answer to a SystemTheme.
func fromDarkFlag(dark bool) theme.SystemTheme {
	if dark {
		return theme.SystemDark
	}
	return theme.SystemLight
}

// parseGSettings interprets `gsettings get` output for color-scheme or
// gtk-theme, e.g. "'prefer-dark'" or "'Adwaita-dark'".
func parseGSettings(out string) theme.SystemTheme {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(out), "'\""))
	return fromDarkFlag(strings.Contains(v, "dark"))
}
