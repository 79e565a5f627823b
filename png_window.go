// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type pngColorType byte

const (
	pngColorGray       pngColorType = 0
	pngColorTrueColor  pngColorType = 2
	pngColorIndexed    pngColorType = 3
	pngColorGrayAlpha  pngColorType = 4
	pngColorTrueColorA pngColorType = 6
)

// pngWindowedDecode decodes only the scanlines needed to produce the
// requested pixel rectangle from a PNG source: it never inflates rows
// past y+h, and keeps only columns [x, x+w) of each row it
// does decode. Returns an error for anything this minimal decoder can't
// handle — interlacing, depths other than 8 bits, unsupported colour
// types, truncated chunks — so the caller can fall back to a full
// decode + crop, which is always correct, just slower.
func pngWindowedDecode(path string, x, y, w, h int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var sig [8]byte
	if _, err := io.ReadFull(br, sig[:]); err != nil {
		return nil, err
	}
	if sig != pngSignature {
		return nil, errors.New("wif: not a PNG file")
	}

	var (
		width, height int
		bitDepth      byte
		colorType     pngColorType
		interlace     byte
		palette       color.Palette
		idat          bytes.Buffer
		sawIHDR       bool
	)

	for {
		var length uint32
		if err := binary.Read(br, binary.BigEndian, &length); err != nil {
			return nil, err
		}
		var typ [4]byte
		if _, err := io.ReadFull(br, typ[:]); err != nil {
			return nil, err
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, err
		}
		if _, err := io.CopyN(io.Discard, br, 4); err != nil { // CRC
			return nil, err
		}

		switch string(typ[:]) {
		case "IHDR":
			if len(data) < 13 {
				return nil, errors.New("wif: short IHDR chunk")
			}
			width = int(binary.BigEndian.Uint32(data[0:4]))
			height = int(binary.BigEndian.Uint32(data[4:8]))
			bitDepth = data[8]
			colorType = pngColorType(data[9])
			interlace = data[12]
			sawIHDR = true
		case "PLTE":
			palette = make(color.Palette, len(data)/3)
			for i := range palette {
				palette[i] = color.RGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 0xff}
			}
		case "IDAT":
			idat.Write(data)
		case "IEND":
			goto chunksDone
		}
	}
chunksDone:

	if !sawIHDR {
		return nil, errors.New("wif: missing IHDR chunk")
	}
	if interlace != 0 {
		return nil, errors.New("wif: interlaced PNG not supported by windowed decode")
	}
	if bitDepth != 8 {
		return nil, errors.New("wif: windowed decode only supports 8-bit channel depth")
	}
	if colorType == pngColorIndexed && palette == nil {
		return nil, errors.New("wif: indexed PNG missing PLTE chunk")
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > width || y+h > height {
		return nil, errors.New("wif: requested region outside source bounds")
	}

	bpp, ok := pngBytesPerPixel(colorType)
	if !ok {
		return nil, errors.New("wif: unsupported colour type for windowed decode")
	}
	stride := width*bpp + 1 // +1 filter-type byte per scanline

	zr, err := zlib.NewReader(&idat)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	prevRow := make([]byte, stride-1)
	curRow := make([]byte, stride-1)
	rowBuf := make([]byte, stride)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for row := 0; row < y+h; row++ {
		if _, err := io.ReadFull(zr, rowBuf); err != nil {
			return nil, err
		}
		filter := rowBuf[0]
		copy(curRow, rowBuf[1:])
		if err := pngUnfilterRow(filter, curRow, prevRow, bpp); err != nil {
			return nil, err
		}

		if row >= y {
			writePNGWindowRow(out, curRow, colorType, palette, row-y, x, w)
		}

		prevRow, curRow = curRow, prevRow
	}

	return out, nil
}

// pngBytesPerPixel gives the bytes-per-pixel for 8-bit channel PNGs:
// Grayscale=1, GrayscaleAlpha=2, RGB=3, RGBA=4, Indexed=1.
func pngBytesPerPixel(ct pngColorType) (int, bool) {
	switch ct {
	case pngColorGray, pngColorIndexed:
		return 1, true
	case pngColorGrayAlpha:
		return 2, true
	case pngColorTrueColor:
		return 3, true
	case pngColorTrueColorA:
		return 4, true
	default:
		return 0, false
	}
}

// pngUnfilterRow reverses a PNG scanline filter in place (RFC 2083 §6).
func pngUnfilterRow(filter byte, cur, prev []byte, bpp int) error {
	switch filter {
	case 0: // None
	case 1: // Sub
		for i := range cur {
			var a byte
			if i >= bpp {
				a = cur[i-bpp]
			}
			cur[i] += a
		}
	case 2: // Up
		for i := range cur {
			cur[i] += prev[i]
		}
	case 3: // Average
		for i := range cur {
			var a int
			if i >= bpp {
				a = int(cur[i-bpp])
			}
			b := int(prev[i])
			cur[i] += byte((a + b) / 2)
		}
	case 4: // Paeth
		for i := range cur {
			var a, c byte
			if i >= bpp {
				a = cur[i-bpp]
				c = prev[i-bpp]
			}
			b := prev[i]
			cur[i] += paethPredictor(a, b, c)
		}
	default:
		return errors.New("wif: unknown PNG filter type")
	}
	return nil
}

func paethPredictor(a, b, c byte) byte {
	pa := absInt(int(b) - int(c))
	pb := absInt(int(a) - int(c))
	pc := absInt(int(a) + int(b) - 2*int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// writePNGWindowRow copies the [x, x+w) slice of an unfiltered scanline
// into row dstY of out, converting every supported colour type to NRGBA.
func writePNGWindowRow(out *image.NRGBA, row []byte, ct pngColorType, palette color.Palette, dstY, x, w int) {
	for i := 0; i < w; i++ {
		sx := x + i
		var r, g, b, a uint8
		switch ct {
		case pngColorGray:
			v := row[sx]
			r, g, b, a = v, v, v, 0xff
		case pngColorGrayAlpha:
			v, av := row[sx*2], row[sx*2+1]
			r, g, b, a = v, v, v, av
		case pngColorTrueColor:
			r, g, b, a = row[sx*3], row[sx*3+1], row[sx*3+2], 0xff
		case pngColorTrueColorA:
			r, g, b, a = row[sx*4], row[sx*4+1], row[sx*4+2], row[sx*4+3]
		case pngColorIndexed:
			c := palette[row[sx]].(color.RGBA)
			r, g, b, a = c.R, c.G, c.B, c.A
		}
		out.SetNRGBA(i, dstY, color.NRGBA{R: r, G: g, B: b, A: a})
	}
}
