package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/theme"
)

func TestKeyName(t *testing.T) {
	k := Key{Tone: theme.ToneDark, Runner: runner.YinYang, Frame: 3}
	if got := k.Name(); got != "dark_yinyang_3" {
		t.Fatalf("Name = %q, want dark_yinyang_3", got)
	}
}

func TestEmbeddedHasEveryFrame(t *testing.T) {
	src := Embedded()
	for _, tone := range []theme.BaseTone{theme.ToneLight, theme.ToneDark} {
		for _, r := range runner.Values() {
			for i := 0; i < r.FrameCount(); i++ {
				k := Key{Tone: tone, Runner: r, Frame: i}
				img, ok := src.Lookup(k)
				if !ok {
					t.Fatalf("missing embedded sprite %s", k.Name())
				}
				if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
					t.Fatalf("%s bounds = %v, want 32x32", k.Name(), img.Bounds())
				}
			}
		}
	}
}

func TestEmbeddedMissingFrame(t *testing.T) {
	src := Embedded()
	k := Key{Tone: theme.ToneDark, Runner: runner.Cat, Frame: runner.Cat.FrameCount()}
	if _, ok := src.Lookup(k); ok {
		t.Fatalf("Lookup(%s) should miss", k.Name())
	}
	// Second lookup hits the negative cache.
	if _, ok := src.Lookup(k); ok {
		t.Fatalf("cached Lookup(%s) should miss", k.Name())
	}
}

func TestFSSourceCachesDecodedImage(t *testing.T) {
	src := Embedded()
	k := Key{Tone: theme.ToneLight, Runner: runner.Horse, Frame: 0}
	a, _ := src.Lookup(k)
	b, _ := src.Lookup(k)
	if a != b {
		t.Fatal("second Lookup should return the cached image")
	}
}

func TestFSSourceCorruptSprite(t *testing.T) {
	fsys := fstest.MapFS{
		"art/dark_cat_0.png": {Data: []byte("not a png")},
	}
	src := NewFSSource(fsys, "art")
	if _, ok := src.Lookup(Key{Tone: theme.ToneDark, Runner: runner.Cat}); ok {
		t.Fatal("corrupt sprite should not resolve")
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})

	f, err := os.Create(filepath.Join(dir, "light_bird_1.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	src, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, ok := src.Lookup(Key{Tone: theme.ToneLight, Runner: runner.Bird, Frame: 1})
	if !ok {
		t.Fatal("expected sprite from directory")
	}
	if got.Bounds().Dx() != 2 {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if _, ok := src.Lookup(Key{Tone: theme.ToneLight, Runner: runner.Bird, Frame: 0}); ok {
		t.Fatal("frame 0 was never written")
	}
}

func TestOpenRejectsMissingDir(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Open of a missing directory should fail")
	}
}

func TestMapSource(t *testing.T) {
	m := MapSource{"dark_eye_2": image.NewNRGBA(image.Rect(0, 0, 1, 1))}
	if _, ok := m.Lookup(Key{Tone: theme.ToneDark, Runner: runner.Eye, Frame: 2}); !ok {
		t.Fatal("expected hit")
	}
	if _, ok := m.Lookup(Key{Tone: theme.ToneLight, Runner: runner.Eye, Frame: 2}); ok {
		t.Fatal("expected miss")
	}
}
