package theme

import (
	"image/color"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	for _, th := range Values() {
		got, ok := Parse(th.String())
		if !ok || got != th {
			t.Fatalf("Parse(%q) = %v, %v; want %v, true", th.String(), got, ok, th)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, in := range []string{"", "red", "Pink", "System "} {
		got, ok := Parse(in)
		if ok || got != System {
			t.Fatalf("Parse(%q) = %v, %v; want System, false", in, got, ok)
		}
	}
}

func TestFromCode(t *testing.T) {
	if got := FromCode(17); got != Cyan {
		t.Fatalf("FromCode(17) = %v, want Cyan", got)
	}
	for _, code := range []uint32{3, 9, 21, 1 << 31} {
		if got := FromCode(code); got != System {
			t.Fatalf("FromCode(%d) = %v, want System", code, got)
		}
	}
}

func TestOnlyAccentsCarryColor(t *testing.T) {
	for _, th := range Values() {
		c, ok := th.Accent()
		if ok != th.IsAccent() {
			t.Fatalf("%v: Accent ok = %v, IsAccent = %v", th, ok, th.IsAccent())
		}
		if ok && c.A != 255 {
			t.Fatalf("%v: accent alpha = %d, want 255", th, c.A)
		}
		if !ok && c != (color.NRGBA{}) {
			t.Fatalf("%v: non-accent returned color %v", th, c)
		}
	}
	if c, _ := Cyan.Accent(); c != (color.NRGBA{R: 0, G: 199, B: 252, A: 255}) {
		t.Fatalf("Cyan accent = %v", c)
	}
}

func TestSystemThemeRoundTrip(t *testing.T) {
	for _, s := range []SystemTheme{SystemLight, SystemDark} {
		got, ok := ParseSystemTheme(s.String())
		if !ok || got != s {
			t.Fatalf("ParseSystemTheme(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if got, ok := ParseSystemTheme("Dusk"); ok || got != SystemLight {
		t.Fatalf("ParseSystemTheme(Dusk) = %v, %v", got, ok)
	}
}

func TestResolveFollowSystem(t *testing.T) {
	dark := Resolve(System, SystemDark)
	light := Resolve(System, SystemLight)

	if dark.Base == light.Base {
		t.Fatalf("follow-system bases should differ, both %v", dark.Base)
	}
	if dark.HasAccent || light.HasAccent {
		t.Fatal("follow-system must not carry an accent")
	}
	if dark.Base != ToneDark || light.Base != ToneLight {
		t.Fatalf("bases = %v/%v, want Dark/Light", dark.Base, light.Base)
	}
}

func TestResolveNeutralIgnoresSystem(t *testing.T) {
	for _, sys := range []SystemTheme{SystemLight, SystemDark} {
		if got := Resolve(Light, sys); got != (RenderSpec{Base: ToneLight}) {
			t.Fatalf("Resolve(Light, %v) = %+v", sys, got)
		}
		if got := Resolve(Dark, sys); got != (RenderSpec{Base: ToneDark}) {
			t.Fatalf("Resolve(Dark, %v) = %+v", sys, got)
		}
	}
}

func TestResolveAccentUsesFixedBase(t *testing.T) {
	for _, th := range Values() {
		if !th.IsAccent() {
			continue
		}
		want, _ := th.Accent()
		for _, sys := range []SystemTheme{SystemLight, SystemDark} {
			got := Resolve(th, sys)
			if !got.HasAccent || got.Accent != want {
				t.Fatalf("Resolve(%v, %v) accent = %+v", th, sys, got)
			}
			if got.Base != AccentBase {
				t.Fatalf("Resolve(%v, %v) base = %v, want %v", th, sys, got.Base, AccentBase)
			}
		}
	}
}

func TestResolveUnknownCodeFollowsSystem(t *testing.T) {
	if got := Resolve(Theme(99), SystemDark); got != (RenderSpec{Base: ToneDark}) {
		t.Fatalf("Resolve(99, Dark) = %+v", got)
	}
}

func TestDependsOnSystem(t *testing.T) {
	if !DependsOnSystem(System) {
		t.Fatal("System should depend on the OS theme")
	}
	if DependsOnSystem(Dark) || DependsOnSystem(Magenta) {
		t.Fatal("neutral and accent selections should not depend on the OS theme")
	}
}
