package theme

import "image/color"

// AccentBase is the tone every accent hue is tinted from. Luminance tinting
// keeps the accent at full brightness only on the light silhouette.
const AccentBase = ToneDark

// RenderSpec is the effective rendering decision for a selection.
type RenderSpec struct {
	Base      BaseTone
	Accent    color.NRGBA
	HasAccent bool
}

// Resolve turns a selection into a RenderSpec using the live OS theme.
// Codes outside the set behave like System.
func Resolve(sel Theme, sys SystemTheme) RenderSpec {
	switch {
	case sel == Light:
		return RenderSpec{Base: ToneLight}
	case sel == Dark:
		return RenderSpec{Base: ToneDark}
	case sel.IsAccent():
		accent, _ := sel.Accent()
		return RenderSpec{Base: AccentBase, Accent: accent, HasAccent: true}
	default:
		return RenderSpec{Base: ToneOf(sys)}
	}
}

// DependsOnSystem reports whether a change of the OS theme can change the
// result of Resolve for sel.
func DependsOnSystem(sel Theme) bool {
	return !sel.IsNeutral() && !sel.IsAccent()
}
