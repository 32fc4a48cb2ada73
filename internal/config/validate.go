package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/theme"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidationResult separates problems that prevent startup from those that
// were corrected in place.
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

func (r ValidationResult) HasFatals() bool {
	return len(r.Fatals) > 0
}

// AllErrors returns fatals followed by warnings.
func (r ValidationResult) AllErrors() []error {
	all := make([]error, 0, len(r.Fatals)+len(r.Warnings))
	all = append(all, r.Fatals...)
	return append(all, r.Warnings...)
}

// Validate checks the config and returns every problem found. See
// ValidateTiered.
func (c *Config) Validate() []error {
	return c.ValidateTiered().AllErrors()
}

// ValidateTiered checks the config. Unknown selection names are replaced by
// their defaults and out-of-range intervals are clamped; both are warnings.
// An asset_dir that is not a readable directory is fatal.
func (c *Config) ValidateTiered() ValidationResult {
	var res ValidationResult
	warn := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Errorf(format, args...))
	}

	if _, ok := runner.Parse(c.Runner); !ok {
		warn("runner %q is unknown, using %s", c.Runner, runner.Default())
		c.Runner = runner.Default().String()
	}
	if _, ok := theme.Parse(c.Theme); !ok {
		warn("theme %q is unknown, using %s", c.Theme, theme.Default())
		c.Theme = theme.Default().String()
	}
	if _, ok := speed.Parse(c.Speed); !ok {
		warn("speed %q is unknown, using %s", c.Speed, speed.Default())
		c.Speed = speed.Default().String()
	}
	if _, ok := speed.ParseFPSLimit(c.FPSLimit); !ok {
		warn("fps_limit %q is unknown, using %s", c.FPSLimit, speed.DefaultFPSLimit())
		c.FPSLimit = speed.DefaultFPSLimit().String()
	}

	if c.AssetDir != "" {
		info, err := os.Stat(c.AssetDir)
		if err != nil {
			res.Fatals = append(res.Fatals, fmt.Errorf("asset_dir %q: %w", c.AssetDir, err))
		} else if !info.IsDir() {
			res.Fatals = append(res.Fatals, fmt.Errorf("asset_dir %q is not a directory", c.AssetDir))
		}
	}

	if c.ThemePollSeconds < 1 {
		warn("theme_poll_seconds %d is below minimum 1, clamping", c.ThemePollSeconds)
		c.ThemePollSeconds = 1
	} else if c.ThemePollSeconds > 300 {
		warn("theme_poll_seconds %d exceeds maximum 300, clamping", c.ThemePollSeconds)
		c.ThemePollSeconds = 300
	}

	if c.TooltipRefreshSeconds < 1 {
		warn("tooltip_refresh_seconds %d is below minimum 1, clamping", c.TooltipRefreshSeconds)
		c.TooltipRefreshSeconds = 1
	} else if c.TooltipRefreshSeconds > 3600 {
		warn("tooltip_refresh_seconds %d exceeds maximum 3600, clamping", c.TooltipRefreshSeconds)
		c.TooltipRefreshSeconds = 3600
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		warn("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel)
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		warn("log_format %q is not valid (use text or json)", c.LogFormat)
	}

	for _, err := range res.Fatals {
		log.Error("config validation", logging.KeyError, err)
	}
	for _, err := range res.Warnings {
		log.Warn("config validation", logging.KeyError, err)
	}
	return res
}
