// Package tint recolors neutral sprite artwork with an accent color.
//
// Tinting is luminance weighted: every opaque pixel becomes the accent scaled
// by the pixel's Rec. 601 luma, so shading in the source survives while the
// hue is replaced. Alpha is copied unchanged.
package tint

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Tint returns a new image with src's bounds and alpha channel, recolored by
// accent. The accent's own alpha is ignored.
func Tint(src image.Image, accent color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	if b.Empty() {
		return dst
	}

	// Read through an NRGBA copy so every source model is handled the same
	// way and the per-pixel loop works on straight (non-premultiplied) bytes.
	in := Clone(src)

	for y := 0; y < b.Dy(); y++ {
		srow := in.Pix[y*in.Stride : y*in.Stride+b.Dx()*4]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()*4]
		for i := 0; i < len(srow); i += 4 {
			a := srow[i+3]
			if a == 0 {
				// NewNRGBA already zeroed the pixel.
				continue
			}
			intensity := Intensity(srow[i], srow[i+1], srow[i+2])
			drow[i] = scale(accent.R, intensity)
			drow[i+1] = scale(accent.G, intensity)
			drow[i+2] = scale(accent.B, intensity)
			drow[i+3] = a
		}
	}
	return dst
}

// Intensity is the perceptual brightness of a pixel in [0, 1].
func Intensity(r, g, b uint8) float64 {
	return (lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)) / 255
}

func scale(c uint8, intensity float64) uint8 {
	v := math.Round(float64(c) * intensity)
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// Clone deep-copies src into a fresh NRGBA buffer with the same bounds.
func Clone(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	if n, ok := src.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)],
				n.Pix[n.PixOffset(b.Min.X, y):n.PixOffset(b.Max.X, y)])
		}
		return dst
	}
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
