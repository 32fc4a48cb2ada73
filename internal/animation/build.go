// Package animation builds tray icon frame sequences and owns the sequence
// currently on display.
package animation

import (
	"image"

	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/theme"
	"github.com/iconify-tray/iconify/internal/tint"
)

var log = logging.L("animation")

// Build produces the frames of one loop of r rendered per spec. Sprites
// missing from src are skipped, so the result may be shorter than
// r.FrameCount(); it is empty (never nil) when nothing resolves. Every frame
// owns a fresh pixel buffer.
func Build(src assets.Source, r runner.Runner, spec theme.RenderSpec) Sequence {
	n := r.FrameCount()
	seq := make(Sequence, 0, n)

	for i := 0; i < n; i++ {
		base, ok := src.Lookup(assets.Key{Tone: spec.Base, Runner: r, Frame: i})
		if !ok {
			continue
		}
		seq = append(seq, NewFrame(render(base, spec)))
	}

	if skipped := n - len(seq); skipped > 0 {
		log.Debug("sprites missing from sequence",
			logging.KeyRunner, r.String(),
			"tone", spec.Base.String(),
			"skipped", skipped,
			logging.KeyFrames, len(seq))
	}
	return seq
}

// Thumbnail renders frame 0 of r, used for previews and status output.
func Thumbnail(src assets.Source, r runner.Runner, spec theme.RenderSpec) (*image.NRGBA, bool) {
	base, ok := src.Lookup(assets.Key{Tone: spec.Base, Runner: r, Frame: 0})
	if !ok {
		return nil, false
	}
	return render(base, spec), true
}

func render(base image.Image, spec theme.RenderSpec) *image.NRGBA {
	if spec.HasAccent {
		return tint.Tint(base, spec.Accent)
	}
	return tint.Clone(base)
}
