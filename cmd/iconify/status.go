package main

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iconify-tray/iconify/internal/animation"
	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/autostart"
	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/health"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/systheme"
	"github.com/iconify-tray/iconify/internal/theme"
)

type statusReport struct {
	Version    string         `yaml:"version"`
	ConfigFile string         `yaml:"config_file"`
	Config     *config.Config `yaml:"config"`
	System     string         `yaml:"system_theme"`
	Render     renderStatus   `yaml:"render"`
	Autostart  *bool          `yaml:"autostart,omitempty"`
	Health     health.Report  `yaml:"health"`
}

type renderStatus struct {
	Tone       string `yaml:"tone"`
	Accent     string `yaml:"accent,omitempty"`
	Frames     int    `yaml:"frames"`
	Nominal    int    `yaml:"nominal_frames"`
	IntervalMs int64  `yaml:"interval_ms"`
	Thumbnail  string `yaml:"thumbnail,omitempty"`
}

func printStatus(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := assets.Open(cfg.AssetDir)
	if err != nil {
		return err
	}

	mon := health.NewMonitor()
	sel := cfg.Selection()
	sys, err := systheme.Default().Detect(context.Background())
	if err != nil {
		mon.Update(health.SystemTheme, health.Degraded, err.Error())
		sys = theme.SystemLight
	} else {
		mon.Update(health.SystemTheme, health.Healthy, "")
	}
	spec := theme.Resolve(sel.Theme, sys)

	seq := animation.Build(src, sel.Runner, spec)
	frames := len(seq)
	seq.Release()
	switch {
	case frames == 0:
		mon.Update(health.Assets, health.Unhealthy, fmt.Sprintf("no sprites for %s", sel.Runner))
	case frames < sel.Runner.FrameCount():
		mon.Update(health.Assets, health.Degraded, fmt.Sprintf("%d of %d sprites", frames, sel.Runner.FrameCount()))
	default:
		mon.Update(health.Assets, health.Healthy, "")
	}

	rs := renderStatus{
		Tone:       spec.Base.String(),
		Frames:     frames,
		Nominal:    sel.Runner.FrameCount(),
		IntervalMs: speed.Interval(sel.Speed, sel.FPSLimit).Milliseconds(),
	}
	if spec.HasAccent {
		rs.Accent = fmt.Sprintf("#%02x%02x%02x", spec.Accent.R, spec.Accent.G, spec.Accent.B)
	}
	if img, ok := animation.Thumbnail(src, sel.Runner, spec); ok {
		rs.Thumbnail = fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	path := cfgFile
	if path == "" {
		path = config.Path()
	}
	report := statusReport{
		Version:    version,
		ConfigFile: path,
		Config:     cfg,
		System:     sys.String(),
		Render:     rs,
	}
	if entry, err := autostart.ForExecutable(appName); err == nil {
		if on, err := entry.Enabled(); err == nil {
			report.Autostart = &on
		}
	}
	report.Health = mon.Summary()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	return enc.Close()
}
