package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iconify-tray/iconify/internal/animator"
	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/autostart"
	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/health"
	"github.com/iconify-tray/iconify/internal/instance"
	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/sysinfo"
	"github.com/iconify-tray/iconify/internal/systheme"
	"github.com/iconify-tray/iconify/internal/tray"
)

func runTray() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}
	logCloser := initLogging(cfg, foreground)
	defer logCloser.Close()
	if err := validateConfig(cfg); err != nil {
		return err
	}

	pings := make(chan struct{}, 1)
	lock, err := instance.Acquire("iconify", func() {
		select {
		case pings <- struct{}{}:
		default:
		}
	})
	if err != nil {
		if errors.Is(err, instance.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "Iconify is already running.")
			return nil
		}
		return err
	}
	defer lock.Release()

	src, err := assets.Open(cfg.AssetDir)
	if err != nil {
		return err
	}

	mon := health.NewMonitor()
	entry, err := autostart.ForExecutable(appName)
	if err != nil {
		log.Warn("autostart unavailable", logging.KeyError, err)
	}
	autostartOn := false
	if entry != nil {
		autostartOn, _ = entry.Enabled()
	}

	var (
		cfgMu sync.Mutex
		anim  *animator.Animator
	)
	persist := func(mutate func(*config.Config)) {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		mutate(cfg)
		if err := config.SaveTo(cfg, cfgFile); err != nil {
			mon.Update(health.Config, health.Degraded, err.Error())
			log.Warn("saving config failed", logging.KeyError, err)
		}
	}

	t := tray.New(tray.Options{
		Title:     appName,
		Selection: cfg.Selection(),
		Autostart: autostartOn,
		OnSelect: func(sel config.Selection) {
			anim.Apply(sel)
			persist(func(c *config.Config) { c.SetSelection(sel) })
		},
		OnAutostart: func(on bool) {
			if entry == nil {
				return
			}
			var err error
			if on {
				err = entry.Enable()
			} else {
				err = entry.Disable()
			}
			if err != nil {
				log.Warn("autostart change failed", logging.KeyError, err)
			}
		},
	})

	anim = animator.New(animator.Options{
		Source:         src,
		Display:        t,
		Detector:       systheme.Default(),
		Health:         mon,
		Selection:      cfg.Selection(),
		Sampler:        sysinfo.NewSampler(),
		ThemePoll:      time.Duration(cfg.ThemePollSeconds) * time.Second,
		TooltipRefresh: time.Duration(cfg.TooltipRefreshSeconds) * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var runErr error
	t.Run(func() {
		if err := anim.Load(ctx); err != nil {
			runErr = err
			t.Quit()
			return
		}

		if cfg.FirstLaunch {
			firstLaunch(t, entry)
			persist(func(c *config.Config) { c.FirstLaunch = false })
		}

		if w, err := config.Watch(cfgFile, func(c *config.Config) {
			logging.SetLevel(c.LogLevel)
			sel := c.Selection()
			anim.Apply(sel)
			t.SetSelection(sel)

			cfgMu.Lock()
			cfg.LogLevel = c.LogLevel
			cfg.SetSelection(sel)
			cfgMu.Unlock()
		}); err == nil {
			go func() {
				<-ctx.Done()
				w.Stop()
			}()
		} else {
			log.Debug("config watch not started", logging.KeyError, err)
		}

		wg.Add(3)
		go func() {
			defer wg.Done()
			anim.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			notifyOnPing(ctx, pings, t)
		}()
		go func() {
			defer wg.Done()
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sig)
			select {
			case <-sig:
				log.Info("shutting down")
				t.Quit()
			case <-ctx.Done():
			}
		}()
		log.Info("iconify started", "version", version, logging.KeyRunner, cfg.Runner, logging.KeyTheme, cfg.Theme)
	})

	cancel()
	wg.Wait()
	anim.Close()
	for _, c := range mon.All() {
		if c.Status != health.Healthy {
			log.Info("component not healthy at exit", logging.KeyComponent, c.Name, "status", string(c.Status), "message", c.Message)
		}
	}
	log.Info("iconify stopped", "health", string(mon.Overall()))
	return runErr
}

// notifyOnPing tells the user where the running copy is each time another
// launch is turned away.
func notifyOnPing(ctx context.Context, pings <-chan struct{}, d tray.Display) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-pings:
			if err := d.Notify("Iconify is already running", "Look for the runner in the notification area."); err != nil {
				log.Debug("second launch notice not shown", logging.KeyError, err)
			}
		}
	}
}

// firstLaunch turns on launch-at-login and tells the user where the icon is.
func firstLaunch(t *tray.Tray, entry *autostart.Entry) {
	if entry != nil {
		if err := entry.Enable(); err == nil {
			t.SetAutostart(true)
		}
	}
	if err := t.Notify("Iconify is running", "Right-click the tray icon to pick a runner, theme and speed."); err != nil {
		log.Debug("first launch notice not shown", logging.KeyError, err)
	}
}
