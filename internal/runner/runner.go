// Package runner enumerates the animated characters that can be shown in the
// tray and the number of sprites each animation loop is made of.
package runner

import (
	"fmt"
	"strings"
)

// Runner is the animated subject of the tray icon.
type Runner uint32

const (
	Cat Runner = iota
	Parrot
	Horse
	Bird
	Cloud
	Flame
	Eye
	YinYang
)

type info struct {
	name   string
	frames int
}

// Frame counts match the sprite sets shipped in internal/assets.
var table = map[Runner]info{
	Cat:     {"Cat", 5},
	Parrot:  {"Parrot", 10},
	Horse:   {"Horse", 14},
	Bird:    {"Bird", 6},
	Cloud:   {"Cloud", 24},
	Flame:   {"Flame", 16},
	Eye:     {"Eye", 35},
	YinYang: {"YinYang", 8},
}

var values = []Runner{Cat, Parrot, Horse, Bird, Cloud, Flame, Eye, YinYang}

// Values returns every runner in menu order.
func Values() []Runner {
	out := make([]Runner, len(values))
	copy(out, values)
	return out
}

// Default is the runner used when a stored value cannot be resolved.
func Default() Runner { return values[0] }

// FromCode maps a numeric code to a runner, falling back to Default.
func FromCode(code uint32) Runner {
	if _, ok := table[Runner(code)]; ok {
		return Runner(code)
	}
	return Default()
}

// Parse resolves a canonical name. Unknown names yield Default and false.
func Parse(s string) (Runner, bool) {
	for _, r := range values {
		if table[r].name == s {
			return r, true
		}
	}
	return Default(), false
}

// String returns the canonical name, or "" for codes outside the set.
func (r Runner) String() string {
	return table[r].name
}

// FrameCount is the nominal number of sprites in one loop, 0 for unknown codes.
func (r Runner) FrameCount() int {
	return table[r].frames
}

// AssetName is the lower-cased name used in sprite keys.
func (r Runner) AssetName() string {
	return strings.ToLower(r.String())
}

// Valid reports whether r is a member of the set.
func (r Runner) Valid() bool {
	_, ok := table[r]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (r Runner) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("runner: invalid code %d", uint32(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// Default so stale config files keep loading.
func (r *Runner) UnmarshalText(b []byte) error {
	*r, _ = Parse(string(b))
	return nil
}
