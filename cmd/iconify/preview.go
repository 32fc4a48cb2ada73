package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/iconify-tray/iconify/internal/animator"
	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/preview"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/systheme"
	"github.com/iconify-tray/iconify/internal/theme"
)

func runPreview() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logCloser := initLogging(cfg, false)
	defer logCloser.Close()

	src, err := assets.Open(cfg.AssetDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	anim := animator.New(animator.Options{
		Source:    src,
		Detector:  systheme.Default(),
		Selection: cfg.Selection(),
	})
	defer anim.Close()
	if err := anim.Load(ctx); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	p := &preview.Player{
		Screen:   screen,
		Next:     anim.Next,
		Interval: anim.Interval,
		Caption: func() string {
			sel := anim.Selection()
			return fmt.Sprintf("%s  %s  %s  %s", sel.Runner, sel.Theme, sel.Speed, anim.Interval())
		},
		OnKey: func(ev *tcell.EventKey) {
			if ev.Key() != tcell.KeyRune {
				return
			}
			sel := anim.Selection()
			switch ev.Rune() {
			case 'r':
				sel.Runner = cycle(runner.Values(), sel.Runner)
			case 't':
				sel.Theme = cycle(theme.Values(), sel.Theme)
			case 's':
				sel.Speed = cycle(speed.Values(), sel.Speed)
			default:
				return
			}
			anim.Apply(sel)
		},
	}
	return p.Run(ctx)
}

// cycle returns the member after cur, wrapping at the end.
func cycle[T comparable](vs []T, cur T) T {
	for i, v := range vs {
		if v == cur {
			return vs[(i+1)%len(vs)]
		}
	}
	return vs[0]
}
