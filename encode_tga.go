// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"bytes"
	"image"
	"io"
)

// encodeTGA writes img as an uncompressed 32-bit BGRA Targa file (image
// type 2).
func encodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	var header bytes.Buffer
	header.WriteByte(0)                 // ID length
	header.WriteByte(0)                 // no colour map
	header.WriteByte(2)                 // image type: uncompressed true-color
	header.Write(make([]byte, 5))       // colour map spec, unused
	header.WriteByte(byte(0))           // x-origin lo
	header.WriteByte(byte(0))           // x-origin hi
	header.WriteByte(byte(0))           // y-origin lo
	header.WriteByte(byte(0))           // y-origin hi
	header.WriteByte(byte(width))       // width lo
	header.WriteByte(byte(width >> 8))  // width hi
	header.WriteByte(byte(height))      // height lo
	header.WriteByte(byte(height >> 8)) // height hi
	header.WriteByte(32)                // bits per pixel
	header.WriteByte(1 << 5)            // descriptor: top-left origin

	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}

	// Targa scans bottom-to-top by default; the descriptor bit above (bit
	// 5) flips that to top-to-bottom so rows can be written in image
	// order.
	row := make([]byte, width*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			i := (x - b.Min.X) * 4
			row[i+0] = byte(bl >> 8)
			row[i+1] = byte(g >> 8)
			row[i+2] = byte(r >> 8)
			row[i+3] = byte(a >> 8)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
