package tray

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodeIcon serializes img in the format the platform tray accepts.
func EncodeIcon(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode icon: nil image")
	}
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return wrapIcon(data, b.Dx(), b.Dy()), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
