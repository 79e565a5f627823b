// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"io"
)

// encodeICO writes img as a single-entry Windows icon file whose payload
// is a PNG image — the format Windows Vista and later accept, avoiding a
// hand-rolled BMP-in-ICO bitmap encoder.
func encodeICO(w io.Writer, img image.Image) error {
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return err
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	var header bytes.Buffer
	// ICONDIR: reserved, type=1 (icon), count=1
	binary.Write(&header, binary.LittleEndian, uint16(0))
	binary.Write(&header, binary.LittleEndian, uint16(1))
	binary.Write(&header, binary.LittleEndian, uint16(1))

	// ICONDIRENTRY
	header.WriteByte(iconDim(width))
	header.WriteByte(iconDim(height))
	header.WriteByte(0) // color count
	header.WriteByte(0) // reserved
	binary.Write(&header, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&header, binary.LittleEndian, uint16(32)) // bit count
	binary.Write(&header, binary.LittleEndian, uint32(payload.Len()))
	binary.Write(&header, binary.LittleEndian, uint32(22)) // offset: 6-byte ICONDIR + 16-byte ICONDIRENTRY

	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}

// iconDim encodes an ICO directory entry dimension: 0 means 256.
func iconDim(d int) byte {
	if d >= 256 {
		return 0
	}
	return byte(d)
}
