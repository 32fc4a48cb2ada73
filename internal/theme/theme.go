// Package theme holds the color selections offered to the user, the observed
// OS light/dark state, and the resolver that turns both into a render decision.
package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme is the user's color selection: follow the system, a neutral tone, or
// an accent hue.
type Theme uint32

const (
	System Theme = 0
	Light  Theme = 1
	Dark   Theme = 2

	Gray    Theme = 10
	Red     Theme = 11
	Orange  Theme = 12
	Yellow  Theme = 13
	Lime    Theme = 14
	Green   Theme = 15
	Teal    Theme = 16
	Cyan    Theme = 17
	Blue    Theme = 18
	Purple  Theme = 19
	Magenta Theme = 20
)

type kind uint8

const (
	kindSystem kind = iota
	kindNeutral
	kindAccent
)

type info struct {
	name   string
	kind   kind
	accent color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

var table = map[Theme]info{
	System: {name: "System", kind: kindSystem},
	Light:  {name: "Light", kind: kindNeutral},
	Dark:   {name: "Dark", kind: kindNeutral},

	Gray:    {"Gray", kindAccent, rgb(107, 114, 128)},
	Red:     {"Red", kindAccent, rgb(239, 68, 68)},
	Orange:  {"Orange", kindAccent, rgb(249, 115, 22)},
	Yellow:  {"Yellow", kindAccent, rgb(234, 179, 8)},
	Lime:    {"Lime", kindAccent, rgb(132, 204, 22)},
	Green:   {"Green", kindAccent, rgb(34, 197, 94)},
	Teal:    {"Teal", kindAccent, rgb(20, 184, 166)},
	Cyan:    {"Cyan", kindAccent, rgb(0, 199, 252)},
	Blue:    {"Blue", kindAccent, rgb(59, 130, 246)},
	Purple:  {"Purple", kindAccent, rgb(139, 92, 246)},
	Magenta: {"Magenta", kindAccent, rgb(217, 70, 239)},
}

var values = []Theme{
	System, Light, Dark,
	Gray, Red, Orange, Yellow, Lime, Green, Teal, Cyan, Blue, Purple, Magenta,
}

// Values returns every selection in menu order.
func Values() []Theme {
	out := make([]Theme, len(values))
	copy(out, values)
	return out
}

// Default is the selection used when a stored value cannot be resolved.
func Default() Theme { return values[0] }

// FromCode maps a numeric code to a selection, falling back to Default.
func FromCode(code uint32) Theme {
	if _, ok := table[Theme(code)]; ok {
		return Theme(code)
	}
	return Default()
}

// Parse resolves a canonical name. Unknown names yield Default and false.
func Parse(s string) (Theme, bool) {
	for _, t := range values {
		if table[t].name == s {
			return t, true
		}
	}
	return Default(), false
}

func (t Theme) String() string { return table[t].name }

// Valid reports whether t is a member of the set.
func (t Theme) Valid() bool {
	_, ok := table[t]
	return ok
}

// IsAccent reports whether t tints the artwork.
func (t Theme) IsAccent() bool { return t.Valid() && table[t].kind == kindAccent }

// IsNeutral reports whether t selects an untinted tone directly.
func (t Theme) IsNeutral() bool { return t.Valid() && table[t].kind == kindNeutral }

// Accent returns the fixed RGB of an accent hue. System and neutral
// selections carry none.
func (t Theme) Accent() (color.NRGBA, bool) {
	if !t.IsAccent() {
		return color.NRGBA{}, false
	}
	return table[t].accent, true
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("theme: invalid code %d", uint32(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to Default.
func (t *Theme) UnmarshalText(b []byte) error {
	*t, _ = Parse(string(b))
	return nil
}

// SystemTheme is the light/dark state reported by the OS.
type SystemTheme uint8

const (
	SystemLight SystemTheme = iota
	SystemDark
)

func (s SystemTheme) String() string {
	switch s {
	case SystemLight:
		return "Light"
	case SystemDark:
		return "Dark"
	default:
		return ""
	}
}

// ParseSystemTheme resolves "Light" or "Dark"; anything else is SystemLight, false.
func ParseSystemTheme(s string) (SystemTheme, bool) {
	switch s {
	case "Light":
		return SystemLight, true
	case "Dark":
		return SystemDark, true
	default:
		return SystemLight, false
	}
}

// BaseTone names a neutral sprite set. ToneLight is drawn for light taskbars
// (dark silhouette), ToneDark for dark taskbars (light silhouette).
type BaseTone uint8

const (
	ToneLight BaseTone = iota
	ToneDark
)

func (b BaseTone) String() string {
	if b == ToneDark {
		return "Dark"
	}
	return "Light"
}

// AssetName is the sprite key prefix for the tone.
func (b BaseTone) AssetName() string { return strings.ToLower(b.String()) }

// ToneOf returns the neutral tone matching the OS state.
func ToneOf(s SystemTheme) BaseTone {
	if s == SystemDark {
		return ToneDark
	}
	return ToneLight
}
