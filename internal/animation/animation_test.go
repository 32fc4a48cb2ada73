package animation

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/theme"
)

// marked returns a 1x1 sprite whose red channel encodes i.
func marked(i int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: uint8(i), G: 255, B: 255, A: 255})
	return img
}

func fullSource(tone theme.BaseTone, r runner.Runner) assets.MapSource {
	m := assets.MapSource{}
	for i := 0; i < r.FrameCount(); i++ {
		m[assets.Key{Tone: tone, Runner: r, Frame: i}.Name()] = marked(i)
	}
	return m
}

func seqOf(n int) Sequence {
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = NewFrame(marked(i))
	}
	return seq
}

func TestBuildFullSequence(t *testing.T) {
	src := fullSource(theme.ToneLight, runner.Parrot)
	seq := Build(src, runner.Parrot, theme.RenderSpec{Base: theme.ToneLight})
	if len(seq) != 10 {
		t.Fatalf("len = %d, want 10", len(seq))
	}
	for i, f := range seq {
		if got := f.Image().NRGBAAt(0, 0).R; int(got) != i {
			t.Fatalf("frame %d carries sprite %d", i, got)
		}
	}
}

func TestBuildSkipsMissingInOrder(t *testing.T) {
	src := fullSource(theme.ToneDark, runner.Cat)
	delete(src, assets.Key{Tone: theme.ToneDark, Runner: runner.Cat, Frame: 1}.Name())
	delete(src, assets.Key{Tone: theme.ToneDark, Runner: runner.Cat, Frame: 3}.Name())

	seq := Build(src, runner.Cat, theme.RenderSpec{Base: theme.ToneDark})
	want := []uint8{0, 2, 4}
	if len(seq) != len(want) {
		t.Fatalf("len = %d, want %d", len(seq), len(want))
	}
	for i, f := range seq {
		if got := f.Image().NRGBAAt(0, 0).R; got != want[i] {
			t.Fatalf("seq[%d] = sprite %d, want %d", i, got, want[i])
		}
	}
}

func TestBuildNothingResolves(t *testing.T) {
	seq := Build(assets.MapSource{}, runner.Flame, theme.RenderSpec{Base: theme.ToneDark})
	if seq == nil || len(seq) != 0 {
		t.Fatalf("Build = %#v, want empty non-nil", seq)
	}
}

func TestBuildUsesResolvedTone(t *testing.T) {
	src := fullSource(theme.ToneLight, runner.Bird)
	seq := Build(src, runner.Bird, theme.RenderSpec{Base: theme.ToneDark})
	if len(seq) != 0 {
		t.Fatalf("dark build read light sprites: len = %d", len(seq))
	}
}

func TestBuildTintsAccent(t *testing.T) {
	src := assets.MapSource{}
	white := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	white.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 90})
	src[assets.Key{Tone: theme.ToneDark, Runner: runner.Cat, Frame: 0}.Name()] = white

	accent, _ := theme.Red.Accent()
	spec := theme.Resolve(theme.Red, theme.SystemLight)
	seq := Build(src, runner.Cat, spec)
	if len(seq) != 1 {
		t.Fatalf("len = %d, want 1", len(seq))
	}
	got := seq[0].Image().NRGBAAt(0, 0)
	want := color.NRGBA{accent.R, accent.G, accent.B, 90}
	if got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestBuildCopiesPixels(t *testing.T) {
	src := fullSource(theme.ToneLight, runner.Cat)
	seq := Build(src, runner.Cat, theme.RenderSpec{Base: theme.ToneLight})
	seq[0].Image().SetNRGBA(0, 0, color.NRGBA{})

	orig, _ := src.Lookup(assets.Key{Tone: theme.ToneLight, Runner: runner.Cat, Frame: 0})
	if orig.(*image.NRGBA).NRGBAAt(0, 0).A != 255 {
		t.Fatal("frame shares pixels with the source sprite")
	}
}

func TestBuildEmbeddedEveryRunner(t *testing.T) {
	src := assets.Embedded()
	for _, r := range runner.Values() {
		for _, sel := range []theme.Theme{theme.Light, theme.Dark, theme.Cyan} {
			seq := Build(src, r, theme.Resolve(sel, theme.SystemDark))
			if len(seq) != r.FrameCount() {
				t.Fatalf("%s/%s: len = %d, want %d", r, sel, len(seq), r.FrameCount())
			}
			seq.Release()
		}
	}
}

func TestThumbnail(t *testing.T) {
	src := fullSource(theme.ToneLight, runner.Horse)
	img, ok := Thumbnail(src, runner.Horse, theme.RenderSpec{Base: theme.ToneLight})
	if !ok || img.NRGBAAt(0, 0).R != 0 {
		t.Fatalf("Thumbnail = %v, %v", img, ok)
	}
	if _, ok := Thumbnail(src, runner.Eye, theme.RenderSpec{Base: theme.ToneLight}); ok {
		t.Fatal("Thumbnail of an absent runner should fail")
	}
}

func TestFrameRefcount(t *testing.T) {
	f := NewFrame(marked(0))
	if !f.Retain() {
		t.Fatal("retain on live frame failed")
	}
	f.Release()
	if f.Disposed() {
		t.Fatal("disposed while a reference remains")
	}
	f.Release()
	if !f.Disposed() || f.Image() != nil {
		t.Fatal("expected disposal after last release")
	}
	if f.Retain() {
		t.Fatal("retain on disposed frame should fail")
	}
	f.Release() // over-release is ignored
	if f.Retain() {
		t.Fatal("over-release revived the frame")
	}
}

func TestStoreEmpty(t *testing.T) {
	var s Store
	if f := s.Advance(); f != nil {
		t.Fatal("Advance on empty store should return nil")
	}
	if f := s.Current(); f != nil {
		t.Fatal("Current on empty store should return nil")
	}
	if s.Len() != 0 || s.Cursor() != 0 {
		t.Fatalf("Len/Cursor = %d/%d", s.Len(), s.Cursor())
	}
}

func TestStoreAdvanceWraps(t *testing.T) {
	var s Store
	s.Replace(seqOf(3))

	var got []uint8
	for i := 0; i < 7; i++ {
		f := s.Advance()
		got = append(got, f.Image().NRGBAAt(0, 0).R)
		f.Release()
	}
	want := []uint8{1, 2, 0, 1, 2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("advance sequence = %v, want %v", got, want)
		}
	}
	if s.Cursor() != 1 {
		t.Fatalf("Cursor = %d, want 1", s.Cursor())
	}
}

func TestStoreSingleFrame(t *testing.T) {
	var s Store
	s.Replace(seqOf(1))
	for i := 0; i < 3; i++ {
		f := s.Advance()
		if f == nil || s.Cursor() != 0 {
			t.Fatalf("single-frame advance: frame=%v cursor=%d", f, s.Cursor())
		}
		f.Release()
	}
}

func TestStoreReplaceEmptyIsNoop(t *testing.T) {
	var s Store
	s.Replace(seqOf(4))
	s.Advance().Release()
	s.Advance().Release()

	if s.Replace(Sequence{}) {
		t.Fatal("Replace(empty) reported success")
	}
	if s.Replace(nil) {
		t.Fatal("Replace(nil) reported success")
	}
	if s.Len() != 4 || s.Cursor() != 2 {
		t.Fatalf("Len/Cursor = %d/%d, want 4/2", s.Len(), s.Cursor())
	}
}

func TestStoreReplaceResetsAndReleases(t *testing.T) {
	var s Store
	old := seqOf(3)
	s.Replace(old)
	s.Advance().Release()

	if !s.Replace(seqOf(5)) {
		t.Fatal("Replace failed")
	}
	if s.Len() != 5 || s.Cursor() != 0 {
		t.Fatalf("Len/Cursor = %d/%d, want 5/0", s.Len(), s.Cursor())
	}
	for i, f := range old {
		if !f.Disposed() {
			t.Fatalf("old frame %d still alive", i)
		}
	}
}

func TestStoreHeldFrameSurvivesReplace(t *testing.T) {
	var s Store
	s.Replace(seqOf(2))
	held := s.Current()

	s.Replace(seqOf(2))
	if held.Disposed() {
		t.Fatal("frame held by a reader was disposed by Replace")
	}
	held.Release()
	if !held.Disposed() {
		t.Fatal("frame should be disposed once the reader releases it")
	}
}

func TestStoreClose(t *testing.T) {
	var s Store
	seq := seqOf(2)
	s.Replace(seq)
	s.Close()
	s.Close()

	if s.Len() != 0 {
		t.Fatalf("Len after Close = %d", s.Len())
	}
	for _, f := range seq {
		if !f.Disposed() {
			t.Fatal("Close left a frame alive")
		}
	}
}

func TestStoreConcurrentReplaceAdvance(t *testing.T) {
	var s Store
	s.Replace(seqOf(8))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				f := s.Advance()
				if f == nil {
					t.Error("Advance returned nil on a non-empty store")
					return
				}
				if f.Image() == nil {
					t.Error("Advance returned a disposed frame")
				}
				f.Release()
			}
		}()
	}

	for i := 0; i < 500; i++ {
		// Alternate lengths so a stale cursor would go out of range.
		n := 1 + (i%3)*7
		if !s.Replace(seqOf(n)) {
			t.Fatal("Replace failed")
		}
		if i%50 == 0 {
			s.Replace(nil)
		}
	}
	close(stop)
	wg.Wait()

	if c, n := s.Cursor(), s.Len(); c >= n {
		t.Fatalf("cursor %d out of range for len %d", c, n)
	}
	s.Close()
}
