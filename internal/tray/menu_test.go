package tray

import (
	"testing"

	"github.com/iconify-tray/iconify/internal/config"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/speed"
	"github.com/iconify-tray/iconify/internal/theme"
)

func TestMenuGroupsCoverEverySet(t *testing.T) {
	want := map[string]int{
		groupRunner: len(runner.Values()),
		groupTheme:  len(theme.Values()),
		groupSpeed:  len(speed.Values()),
		groupFPS:    len(speed.FPSLimits()),
	}
	for _, g := range menuGroups {
		if got := len(g.labels()); got != want[g.key] {
			t.Fatalf("%s menu has %d items, want %d", g.key, got, want[g.key])
		}
	}
}

func TestSelectionLabelsCheckCurrent(t *testing.T) {
	sel := config.Selection{Runner: runner.Bird, Theme: theme.Magenta, Speed: speed.X150, FPSLimit: speed.Fps20}
	labels := selectionLabels(sel)
	for _, g := range menuGroups {
		found := false
		for _, l := range g.labels() {
			if l == labels[g.key] {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: checked label %q is not a menu item", g.key, labels[g.key])
		}
	}
}

func TestApplyLabel(t *testing.T) {
	sel := config.Selection{Runner: runner.Cat, Theme: theme.System, Speed: speed.X100, FPSLimit: speed.Fps40}

	got, ok := applyLabel(sel, groupRunner, runner.Cloud.String())
	if !ok || got.Runner != runner.Cloud || got.Theme != theme.System {
		t.Fatalf("applyLabel runner = %+v, %v", got, ok)
	}
	got, ok = applyLabel(got, groupTheme, theme.Orange.String())
	if !ok || got.Theme != theme.Orange || got.Runner != runner.Cloud {
		t.Fatalf("applyLabel theme = %+v, %v", got, ok)
	}
	got, ok = applyLabel(got, groupSpeed, speed.X200.String())
	if !ok || got.Speed != speed.X200 {
		t.Fatalf("applyLabel speed = %+v, %v", got, ok)
	}
	got, ok = applyLabel(got, groupFPS, speed.Fps10.String())
	if !ok || got.FPSLimit != speed.Fps10 {
		t.Fatalf("applyLabel fps = %+v, %v", got, ok)
	}
	if _, ok := applyLabel(sel, groupRunner, "Unicorn"); ok {
		t.Fatal("unknown label should not apply")
	}
	if _, ok := applyLabel(sel, "volume", "11"); ok {
		t.Fatal("unknown group should not apply")
	}
}
