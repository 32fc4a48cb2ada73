// Package speed maps the animation speed and FPS cap selections to tick
// intervals.
package speed

import (
	"fmt"
	"time"
)

// Animations are drawn for 8 frames per second at 100%.
const baseDelayMs = 1000.0 / 8

// Speed is a multiplier applied to the base frame rate.
type Speed uint32

const (
	X100 Speed = iota
	X125
	X150
	X175
	X200
)

var speedTable = map[Speed]struct {
	name       string
	multiplier float64
}{
	X100: {"100%", 1.00},
	X125: {"125%", 1.25},
	X150: {"150%", 1.50},
	X175: {"175%", 1.75},
	X200: {"200%", 2.00},
}

var speedValues = []Speed{X100, X125, X150, X175, X200}

// Values returns every speed in menu order.
func Values() []Speed {
	out := make([]Speed, len(speedValues))
	copy(out, speedValues)
	return out
}

// Default is the speed used when a stored value cannot be resolved.
func Default() Speed { return speedValues[0] }

// FromCode maps a numeric code to a speed, falling back to Default.
func FromCode(code uint32) Speed {
	if _, ok := speedTable[Speed(code)]; ok {
		return Speed(code)
	}
	return Default()
}

// Parse resolves a percentage string such as "150%".
func Parse(s string) (Speed, bool) {
	for _, v := range speedValues {
		if speedTable[v].name == s {
			return v, true
		}
	}
	return Default(), false
}

func (s Speed) String() string { return speedTable[s].name }

// Valid reports whether s is a member of the set.
func (s Speed) Valid() bool {
	_, ok := speedTable[s]
	return ok
}

// Delay is the time each frame stays on screen, truncated to whole
// milliseconds. Unknown codes use the 100% delay.
func (s Speed) Delay() time.Duration {
	m := speedTable[s].multiplier
	if m == 0 {
		m = 1
	}
	return time.Duration(int(baseDelayMs/m)) * time.Millisecond
}

func (s Speed) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("speed: invalid code %d", uint32(s))
	}
	return []byte(s.String()), nil
}

func (s *Speed) UnmarshalText(b []byte) error {
	*s, _ = Parse(string(b))
	return nil
}
