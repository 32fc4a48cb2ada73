// Package animator drives the tray icon: it owns the frame store, steps it
// on a timer and rebuilds the sequence when the selection or the system
// theme changes.
package animator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iconify-tray/iconify/internal/animation"
	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/health"
	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/sysinfo"
	"github.com/iconify-tray/iconify/internal/systheme"
	"github.com/iconify-tray/iconify/internal/theme"
	"github.com/iconify-tray/iconify/internal/tray"
	"github.com/iconify-tray/iconify/internal/workerpool"
)

var log = logging.L("animator")

const rebuildKey = "sequence"

// Options wires an Animator to its collaborators. Source is required; a nil
// Display drops frames, and zero durations take the package defaults.
type Options struct {
	Source    assets.Source
	Display   tray.Display
	Detector  systheme.Detector
	Health    *health.Monitor
	Selection config.Selection

	// Sampler feeds the tooltip. Nil shows only the runner name.
	Sampler        *sysinfo.Sampler
	ThemePoll      time.Duration
	TooltipRefresh time.Duration
}

// Animator owns the frame sequence for one selection and keeps it in step
// with the selection, the OS theme and the tick interval.
type Animator struct {
	opts  Options
	store animation.Store
	pool  *workerpool.Pool

	mu       sync.Mutex
	sel      config.Selection
	sys      theme.SystemTheme
	interval time.Duration

	// reset carries a new tick interval to the running loop.
	reset chan time.Duration
}

// New creates an Animator with an empty store. Call Load before Run.
func New(opts Options) *Animator {
	if opts.Health == nil {
		opts.Health = health.NewMonitor()
	}
	if opts.Detector == nil {
		opts.Detector = systheme.Default()
	}
	if opts.ThemePoll <= 0 {
		opts.ThemePoll = 2 * time.Second
	}
	if opts.TooltipRefresh <= 0 {
		opts.TooltipRefresh = 5 * time.Second
	}
	return &Animator{
		opts:     opts,
		pool:     workerpool.New(1, 8),
		sel:      opts.Selection,
		interval: speed.Interval(opts.Selection.Speed, opts.Selection.FPSLimit),
		reset:    make(chan time.Duration, 1),
	}
}

// Load detects the system theme and installs the first sequence
// synchronously. It fails when no sprite of the selected runner resolves,
// since there would be nothing to show.
func (a *Animator) Load(ctx context.Context) error {
	st := systheme.Current(ctx, a.opts.Detector)

	a.mu.Lock()
	a.sys = st
	sel := a.sel
	a.mu.Unlock()

	spec := theme.Resolve(sel.Theme, st)
	if !a.install(animation.Build(a.opts.Source, sel.Runner, spec), sel, spec) {
		return fmt.Errorf("no sprites for %s (%s tone)", sel.Runner, spec.Base)
	}
	a.showCurrent()
	return nil
}

// Run steps the animation until ctx is done, then calls Close.
// It also polls the system theme and refreshes the tooltip.
func (a *Animator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		systheme.Watch(ctx, a.opts.Detector, a.opts.ThemePoll, a.SetSystemTheme)
	}()
	go func() {
		defer wg.Done()
		a.tooltipLoop(ctx)
	}()

	a.tickLoop(ctx)
	wg.Wait()
	a.Close()
}

// Close stops background rebuilds and releases every frame. Safe to call
// more than once.
func (a *Animator) Close() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a.pool.Shutdown(shutdownCtx)
	a.store.Close()
	log.Debug("animator closed")
}

func (a *Animator) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(a.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-a.reset:
			ticker.Reset(d)
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Tick advances one frame and hands it to the display.
func (a *Animator) Tick() {
	f := a.store.Advance()
	if f == nil {
		return
	}
	defer f.Release()
	a.show(f)
}

// Next advances the store and returns the frame with a reference owned by
// the caller. Used by the terminal preview in place of Tick.
func (a *Animator) Next() *animation.Frame {
	return a.store.Advance()
}

func (a *Animator) showCurrent() {
	f := a.store.Current()
	if f == nil {
		return
	}
	defer f.Release()
	a.show(f)
}

func (a *Animator) show(f *animation.Frame) {
	if a.opts.Display == nil {
		return
	}
	img := f.Image()
	if img == nil {
		return
	}
	if err := a.opts.Display.SetFrame(img); err != nil {
		a.opts.Health.Update(health.Tray, health.Degraded, err.Error())
		return
	}
	a.opts.Health.Update(health.Tray, health.Healthy, "")
}

// Apply switches to sel. A new runner or theme rebuilds the sequence in the
// background; a new speed or FPS limit only retimes the ticker.
func (a *Animator) Apply(sel config.Selection) {
	a.mu.Lock()
	prev := a.sel
	a.sel = sel
	a.mu.Unlock()

	if sel.Speed != prev.Speed || sel.FPSLimit != prev.FPSLimit {
		d := a.setInterval(speed.Interval(sel.Speed, sel.FPSLimit))
		log.Debug("tick interval changed", logging.KeySpeed, sel.Speed.String(), "fps_limit", sel.FPSLimit.String(), "interval", d)
	}
	if sel.Runner != prev.Runner || sel.Theme != prev.Theme {
		a.rebuild()
	}
}

// SetSystemTheme records a new OS theme and rebuilds when the selected
// theme follows it.
func (a *Animator) SetSystemTheme(st theme.SystemTheme) {
	a.mu.Lock()
	changed := a.sys != st
	a.sys = st
	follows := theme.DependsOnSystem(a.sel.Theme)
	a.mu.Unlock()

	a.opts.Health.Update(health.SystemTheme, health.Healthy, "")
	if changed && follows {
		a.rebuild()
	}
}

func (a *Animator) setInterval(d time.Duration) time.Duration {
	a.mu.Lock()
	a.interval = d
	a.mu.Unlock()

	// Keep only the latest pending interval.
	select {
	case <-a.reset:
	default:
	}
	select {
	case a.reset <- d:
	default:
	}
	return d
}

// rebuild queues a build of the current selection. Bursts of changes
// collapse into the last one.
func (a *Animator) rebuild() {
	ok := a.pool.SubmitLatest(rebuildKey, func(stale func() bool) {
		// The store is closed once the pool context ends.
		done := a.pool.Context()
		if done.Err() != nil {
			return
		}

		a.mu.Lock()
		sel, st := a.sel, a.sys
		a.mu.Unlock()

		spec := theme.Resolve(sel.Theme, st)
		seq := animation.Build(a.opts.Source, sel.Runner, spec)
		if stale() || done.Err() != nil {
			seq.Release()
			return
		}
		if a.install(seq, sel, spec) {
			a.showCurrent()
		}
	})
	if !ok {
		log.Warn("rebuild not queued")
	}
}

// install hands seq to the store. An empty seq keeps the previous sequence.
func (a *Animator) install(seq animation.Sequence, sel config.Selection, spec theme.RenderSpec) bool {
	n := len(seq)
	if !a.store.Replace(seq) {
		log.Warn("no sprites resolved, keeping previous sequence",
			logging.KeyRunner, sel.Runner.String(), logging.KeyTheme, sel.Theme.String())
		a.opts.Health.Update(health.Assets, health.Unhealthy, fmt.Sprintf("no sprites for %s", sel.Runner))
		return false
	}

	if want := sel.Runner.FrameCount(); n < want {
		a.opts.Health.Update(health.Assets, health.Degraded, fmt.Sprintf("%d of %d sprites for %s", n, want, sel.Runner))
	} else {
		a.opts.Health.Update(health.Assets, health.Healthy, "")
	}
	logging.WithSelection(log, sel.Runner.String(), sel.Theme.String()).Info("sequence installed",
		logging.KeyFrames, n, "tone", spec.Base.String(), "accent", spec.HasAccent)
	return true
}

func (a *Animator) tooltipLoop(ctx context.Context) {
	ticker := time.NewTicker(a.opts.TooltipRefresh)
	defer ticker.Stop()

	a.refreshTooltip(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refreshTooltip(ctx)
		}
	}
}

func (a *Animator) refreshTooltip(ctx context.Context) {
	if a.opts.Display == nil {
		return
	}
	title := a.Selection().Runner.String()
	if a.opts.Sampler == nil {
		a.opts.Display.SetTooltip(title)
		return
	}
	snap, err := a.opts.Sampler.Sample(ctx)
	if err != nil {
		a.opts.Health.Update(health.SysInfo, health.Degraded, err.Error())
		a.opts.Display.SetTooltip(title)
		return
	}
	a.opts.Health.Update(health.SysInfo, health.Healthy, "")
	a.opts.Display.SetTooltip(sysinfo.Tooltip(title, snap))
}

// Selection returns the active selection.
func (a *Animator) Selection() config.Selection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel
}

// SystemTheme returns the last detected OS theme.
func (a *Animator) SystemTheme() theme.SystemTheme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sys
}

// Spec returns the render spec for the active selection.
func (a *Animator) Spec() theme.RenderSpec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return theme.Resolve(a.sel.Theme, a.sys)
}

// Interval returns the current time between frames.
func (a *Animator) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// Frames returns the installed sequence length.
func (a *Animator) Frames() int {
	return a.store.Len()
}

// Health returns the monitor the animator reports to.
func (a *Animator) Health() *health.Monitor {
	return a.opts.Health
}
