package animation

import (
	"image"
	"sync/atomic"
)

// Frame is one ready-to-display bitmap with reference-counted ownership.
// A new frame holds a single reference belonging to its creator; the pixel
// buffer is dropped when the last reference is released.
type Frame struct {
	img  atomic.Pointer[image.NRGBA]
	refs atomic.Int32
}

// NewFrame wraps img. The caller owns the returned reference.
func NewFrame(img *image.NRGBA) *Frame {
	f := &Frame{}
	f.img.Store(img)
	f.refs.Store(1)
	return f
}

// Image returns the pixels, or nil once the frame has been disposed.
// Callers must not modify the returned image.
func (f *Frame) Image() *image.NRGBA {
	return f.img.Load()
}

// Disposed reports whether the pixel buffer has been released.
func (f *Frame) Disposed() bool {
	return f.img.Load() == nil
}

// Release drops one reference.
func (f *Frame) Release() {
	n := f.refs.Add(-1)
	switch {
	case n == 0:
		f.img.Store(nil)
	case n < 0:
		// Over-release; keep the count pinned at zero.
		f.refs.Add(1)
	}
}

// Retain adds a reference unless the frame is already disposed, reporting
// whether it did. Each successful Retain needs a matching Release.
func (f *Frame) Retain() bool {
	for {
		n := f.refs.Load()
		if n <= 0 {
			return false
		}
		if f.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Sequence is the ordered set of frames making up one animation loop.
type Sequence []*Frame

// Release drops the caller's reference on every frame.
func (s Sequence) Release() {
	for _, f := range s {
		if f != nil {
			f.Release()
		}
	}
}
