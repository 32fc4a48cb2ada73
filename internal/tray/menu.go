package tray

import (
	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/theme"
)

const (
	groupRunner = "runner"
	groupTheme  = "theme"
	groupSpeed  = "speed"
	groupFPS    = "fps"
)

type menuGroup struct {
	key    string
	title  string
	labels func() []string
}

var menuGroups = []menuGroup{
	{groupRunner, "Runner", func() []string { return names(runner.Values()) }},
	{groupTheme, "Theme", func() []string { return names(theme.Values()) }},
	{groupSpeed, "Speed", func() []string { return names(speed.Values()) }},
	{groupFPS, "FPS Max Limit", func() []string { return names(speed.FPSLimits()) }},
}

func names[T interface{ String() string }](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// selectionLabels maps each menu group to the label that should be checked.
func selectionLabels(sel config.Selection) map[string]string {
	return map[string]string{
		groupRunner: sel.Runner.String(),
		groupTheme:  sel.Theme.String(),
		groupSpeed:  sel.Speed.String(),
		groupFPS:    sel.FPSLimit.String(),
	}
}

// applyLabel returns sel with the group's field set from label.
func applyLabel(sel config.Selection, key, label string) (config.Selection, bool) {
	var ok bool
	switch key {
	case groupRunner:
		sel.Runner, ok = runner.Parse(label)
	case groupTheme:
		sel.Theme, ok = theme.Parse(label)
	case groupSpeed:
		sel.Speed, ok = speed.Parse(label)
	case groupFPS:
		sel.FPSLimit, ok = speed.ParseFPSLimit(label)
	}
	return sel, ok
}
