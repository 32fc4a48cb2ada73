// Package tray shows animation frames in the system notification area and
// exposes the selection menu.
package tray

import (
	"image"
	"sync"

	"fyne.io/systray"

	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("tray")

// Display is the surface the animator draws on.
type Display interface {
	SetFrame(img *image.NRGBA) error
	SetTooltip(text string)
	Notify(title, body string) error
}

// Options configures the tray menu.
type Options struct {
	Title       string
	Selection   config.Selection
	Autostart   bool
	OnSelect    func(config.Selection)
	OnAutostart func(enabled bool)
	OnQuit      func()
}

// Tray is the Display backed by the platform notification area.
type Tray struct {
	opts Options

	mu        sync.Mutex
	sel       config.Selection
	groups    map[string]*radio
	autostart *systray.MenuItem
}

func New(opts Options) *Tray {
	if opts.Title == "" {
		opts.Title = "Iconify"
	}
	return &Tray{opts: opts, sel: opts.Selection}
}

// Run blocks on the platform event loop until Quit. onReady runs once the
// icon can be updated. Must be called from the main goroutine.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		systray.SetTitle("")
		systray.SetTooltip(t.opts.Title)
		t.buildMenu()
		log.Debug("tray ready")
		if onReady != nil {
			onReady()
		}
	}, func() {
		log.Debug("tray exited")
	})
}

// Quit ends the event loop started by Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// SetFrame implements Display.
func (t *Tray) SetFrame(img *image.NRGBA) error {
	data, err := EncodeIcon(img)
	if err != nil {
		return err
	}
	systray.SetIcon(data)
	return nil
}

// SetTooltip implements Display.
func (t *Tray) SetTooltip(text string) {
	systray.SetTooltip(text)
}

// Notify implements Display.
func (t *Tray) Notify(title, body string) error {
	return Notify(t.opts.Title, title, body)
}

// SetSelection moves the menu checks to sel without firing OnSelect.
func (t *Tray) SetSelection(sel config.Selection) {
	t.mu.Lock()
	t.sel = sel
	groups := t.groups
	t.mu.Unlock()

	if groups == nil {
		return
	}
	for key, label := range selectionLabels(sel) {
		if g := groups[key]; g != nil {
			g.check(label)
		}
	}
}

// SetAutostart updates the launch-at-login check mark.
func (t *Tray) SetAutostart(on bool) {
	t.mu.Lock()
	item := t.autostart
	t.mu.Unlock()
	if item == nil {
		return
	}
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) buildMenu() {
	t.mu.Lock()
	sel := t.sel
	t.mu.Unlock()

	checked := selectionLabels(sel)
	groups := make(map[string]*radio, len(menuGroups))
	for _, g := range menuGroups {
		parent := systray.AddMenuItem(g.title, "")
		key := g.key
		groups[key] = addRadio(parent, g.labels(), checked[key], func(label string) {
			t.pick(key, label)
		})
	}

	systray.AddSeparator()
	auto := systray.AddMenuItemCheckbox("Launch at startup", "", t.opts.Autostart)
	go func() {
		for range auto.ClickedCh {
			on := !auto.Checked()
			if on {
				auto.Check()
			} else {
				auto.Uncheck()
			}
			if t.opts.OnAutostart != nil {
				t.opts.OnAutostart(on)
			}
		}
	}()

	systray.AddSeparator()
	quit := systray.AddMenuItem("Exit", "")
	go func() {
		<-quit.ClickedCh
		if t.opts.OnQuit != nil {
			t.opts.OnQuit()
		}
		systray.Quit()
	}()

	t.mu.Lock()
	t.groups = groups
	t.autostart = auto
	t.mu.Unlock()
}

func (t *Tray) pick(key, label string) {
	t.mu.Lock()
	sel, ok := applyLabel(t.sel, key, label)
	if ok {
		t.sel = sel
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	log.Debug("menu selection", "group", key, "value", label)
	if t.opts.OnSelect != nil {
		t.opts.OnSelect(sel)
	}
}

// radio is a group of checkbox items where exactly one is checked.
type radio struct {
	mu    sync.Mutex
	items map[string]*systray.MenuItem
}

func addRadio(parent *systray.MenuItem, labels []string, checked string, onPick func(string)) *radio {
	r := &radio{items: make(map[string]*systray.MenuItem, len(labels))}
	for _, label := range labels {
		item := parent.AddSubMenuItemCheckbox(label, "", label == checked)
		r.items[label] = item
		go func(label string, item *systray.MenuItem) {
			for range item.ClickedCh {
				r.check(label)
				onPick(label)
			}
		}(label, item)
	}
	return r
}

func (r *radio) check(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for l, item := range r.items {
		if l == label {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}
