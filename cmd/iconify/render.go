package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/iconify-tray/iconify/internal/animation"
	"github.com/iconify-tray/iconify/internal/assets"
	"github.com/iconify-tray/iconify/internal/systheme"
	"github.com/iconify-tray/iconify/internal/theme"
)

// renderFrames writes the sequence the tray would show as
// <runner>_<i>.png files in dir and reports what it wrote to w.
func renderFrames(w io.Writer, dir string, thumbOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := assets.Open(cfg.AssetDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	sel := cfg.Selection()
	spec := theme.Resolve(sel.Theme, systheme.Current(context.Background(), systheme.Default()))
	name := sel.Runner.AssetName()

	if thumbOnly {
		img, ok := animation.Thumbnail(src, sel.Runner, spec)
		if !ok {
			return fmt.Errorf("no thumbnail for %s", sel.Runner)
		}
		path := filepath.Join(dir, name+"_thumb.png")
		if err := writePNG(path, img); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote thumbnail of %s (%s) to %s\n", sel.Runner, sel.Theme, path)
		return nil
	}

	seq := animation.Build(src, sel.Runner, spec)
	defer seq.Release()
	if len(seq) == 0 {
		return fmt.Errorf("no sprites for %s", sel.Runner)
	}
	for i, f := range seq {
		if err := writePNG(filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, i)), f.Image()); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Wrote %d frames of %s (%s) to %s\n", len(seq), sel.Runner, sel.Theme, dir)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
