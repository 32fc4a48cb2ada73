package speed

import (
	"fmt"
	"time"
)

const fpsBaseMs = 50.0

// FPSLimit caps how often the tray icon may change.
type FPSLimit uint32

const (
	Fps40 FPSLimit = iota
	Fps30
	Fps20
	Fps10
)

var fpsTable = map[FPSLimit]struct {
	name string
	rate float64
}{
	Fps40: {"Fps40", 1.00},
	Fps30: {"Fps30", 0.75},
	Fps20: {"Fps20", 0.50},
	Fps10: {"Fps10", 0.25},
}

var fpsValues = []FPSLimit{Fps40, Fps30, Fps20, Fps10}

// FPSLimits returns every limit in menu order.
func FPSLimits() []FPSLimit {
	out := make([]FPSLimit, len(fpsValues))
	copy(out, fpsValues)
	return out
}

// DefaultFPSLimit is the uncapped limit.
func DefaultFPSLimit() FPSLimit { return fpsValues[0] }

// FPSLimitFromCode maps a numeric code to a limit, falling back to DefaultFPSLimit.
func FPSLimitFromCode(code uint32) FPSLimit {
	if _, ok := fpsTable[FPSLimit(code)]; ok {
		return FPSLimit(code)
	}
	return DefaultFPSLimit()
}

// ParseFPSLimit resolves names such as "Fps30".
func ParseFPSLimit(s string) (FPSLimit, bool) {
	for _, v := range fpsValues {
		if fpsTable[v].name == s {
			return v, true
		}
	}
	return DefaultFPSLimit(), false
}

func (f FPSLimit) String() string { return fpsTable[f].name }

// Valid reports whether f is a member of the set.
func (f FPSLimit) Valid() bool {
	_, ok := fpsTable[f]
	return ok
}

// Interval is the shortest allowed time between two frames.
func (f FPSLimit) Interval() time.Duration {
	r := fpsTable[f].rate
	if r == 0 {
		r = 1
	}
	return time.Duration(int(fpsBaseMs/r)) * time.Millisecond
}

func (f FPSLimit) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("fps limit: invalid code %d", uint32(f))
	}
	return []byte(f.String()), nil
}

func (f *FPSLimit) UnmarshalText(b []byte) error {
	*f, _ = ParseFPSLimit(string(b))
	return nil
}

// Interval returns the tick interval for a speed under an FPS cap.
func Interval(s Speed, f FPSLimit) time.Duration {
	return max(s.Delay(), f.Interval())
}
