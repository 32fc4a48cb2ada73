// Package assets looks up the prerendered runner sprites by tone, runner and
// frame index.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"sync"

	"github.com/iconify-tray/iconify/internal/logging"
	"github.com/iconify-tray/iconify/internal/runner"
	"github.com/iconify-tray/iconify/internal/theme"
)

var log = logging.L("assets")

//go:embed sprites/*.png
var embedded embed.FS

// Key identifies one base sprite.
type Key struct {
	Tone   theme.BaseTone
	Runner runner.Runner
	Frame  int
}

// Name is the canonical sprite name, e.g. "dark_cat_0".
func (k Key) Name() string {
	return fmt.Sprintf("%s_%s_%d", k.Tone.AssetName(), k.Runner.AssetName(), k.Frame)
}

// Source resolves sprite keys to images. Returned images are shared and must
// not be modified by callers.
type Source interface {
	Lookup(key Key) (image.Image, bool)
}

// FSSource decodes PNG sprites named "<key>.png" from a file system and caches
// the decoded images. Safe for concurrent use.
type FSSource struct {
	fsys fs.FS
	dir  string

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewFSSource reads sprites from dir inside fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{
		fsys:  fsys,
		dir:   dir,
		cache: make(map[string]image.Image),
	}
}

// Embedded returns the sprite set compiled into the binary.
func Embedded() *FSSource {
	return NewFSSource(embedded, "sprites")
}

// Open returns a source reading from dir on disk, or the embedded set when
// dir is empty.
func Open(dir string) (*FSSource, error) {
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset dir %s is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir), "."), nil
}

// Lookup implements Source. Missing or undecodable sprites report false.
func (s *FSSource) Lookup(key Key) (image.Image, bool) {
	name := key.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache[name]; ok {
		return img, img != nil
	}

	img, err := s.decode(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("sprite decode failed", "sprite", name, logging.KeyError, err)
		}
		// Negative entries avoid re-reading a missing file on every rebuild.
		s.cache[name] = nil
		return nil, false
	}
	s.cache[name] = img
	return img, true
}

func (s *FSSource) decode(name string) (image.Image, error) {
	path := name + ".png"
	if s.dir != "" && s.dir != "." {
		path = s.dir + "/" + path
	}
	f, err := s.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// MapSource is an in-memory Source keyed by sprite name.
type MapSource map[string]image.Image

// Lookup implements Source.
func (m MapSource) Lookup(key Key) (image.Image, bool) {
	img, ok := m[key.Name()]
	return img, ok && img != nil
}
