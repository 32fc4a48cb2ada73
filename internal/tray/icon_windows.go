//go:build windows

package tray

import "encoding/binary"

// Windows LoadImage wants ICO; PNG payloads are accepted since Vista.
func wrapIcon(pngData []byte, w, h int) []byte {
	return wrapPNGInICO(pngData, w, h)
}

func wrapPNGInICO(pngData []byte, w, h int) []byte {
	const headerSize = 6
	const entrySize = 16

	// 0 means 256 or larger.
	bw, bh := byte(w), byte(h)
	if w >= 256 {
		bw = 0
	}
	if h >= 256 {
		bh = 0
	}

	buf := make([]byte, headerSize+entrySize+len(pngData))

	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: ICO
	binary.LittleEndian.PutUint16(buf[4:], 1) // image count

	off := headerSize
	buf[off+0] = bw
	buf[off+1] = bh
	binary.LittleEndian.PutUint16(buf[off+4:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[off+6:], 32) // bpp
	binary.LittleEndian.PutUint32(buf[off+8:], uint32(len(pngData)))
	binary.LittleEndian.PutUint32(buf[off+12:], headerSize+entrySize)

	copy(buf[headerSize+entrySize:], pngData)
	return buf
}
