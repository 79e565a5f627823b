// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// resamplingFilter is the cubic filter used for every resize. Tests may
// override this for deterministic pixel comparisons.
var resamplingFilter imaging.ResampleFilter = imaging.CatmullRom

// Transform runs the four pipeline stages — region, size, rotation,
// quality — over a decoded image in that fixed order, then encodes the
// result in the plan's output format. It returns the encoded bytes and
// the response content type.
func Transform(img image.Image, plan TransformPlan, jpegQuality int) ([]byte, string, error) {
	out, err := applyRegion(img, plan.Region)
	if err != nil {
		return nil, "", err
	}
	return transformSized(out, plan, jpegQuality)
}

// TransformWithRegionApplied runs the size, rotation and quality stages
// over an image whose region stage has already been applied externally
// (the PNG windowed-decode fast path crops while decoding rather than
// after; the remaining stage order is unchanged).
func TransformWithRegionApplied(img image.Image, plan TransformPlan, jpegQuality int) ([]byte, string, error) {
	return transformSized(img, plan, jpegQuality)
}

// transformSized runs size, rotation, quality and encoding in order —
// the shared tail of both entry points above.
func transformSized(img image.Image, plan TransformPlan, jpegQuality int) ([]byte, string, error) {
	out, err := applySize(img, plan.Size)
	if err != nil {
		return nil, "", err
	}

	switch plan.Rotation.Degrees {
	case 0, 90, 180, 270, 360:
	default:
		return nil, "", badRequest("rotation", "Rotation must be 0, 90, 180, 270 or 360")
	}
	out = applyRotation(out, plan.Rotation)

	out = applyQuality(out, plan.Quality)

	buf, err := encode(out, plan.Quality.Format, jpegQuality)
	if err != nil {
		return nil, "", internalError("encode", "failed to encode derivative", err)
	}
	return buf, plan.Quality.Format.ContentType(), nil
}

// applyRegion implements the region stage.
func applyRegion(img image.Image, r Region) (image.Image, error) {
	if r.Kind == RegionFull {
		return img, nil
	}
	b := img.Bounds()
	x, y, w, h, err := resolveRegion(r, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	rect := image.Rect(x, y, x+w, y+h)
	return imaging.Crop(img, rect), nil
}

// applySize implements the size stage. resolveSize already accounts for
// the forced-vs-exact distinction of WidthHeight, so the
// pixel-level operation is always an exact resize to the computed target.
func applySize(img image.Image, sz Size) (image.Image, error) {
	b := img.Bounds()
	w, h, err := resolveSize(sz, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	return imaging.Resize(img, w, h, resamplingFilter), nil
}

// applyRotation implements the rotation stage: horizontal flip first if
// mirrored, then rotate by the specified multiple of 90.
func applyRotation(img image.Image, r Rotation) image.Image {
	if r.Mirrored {
		img = imaging.FlipH(img)
	}
	switch r.Degrees {
	case 90:
		img = imaging.Rotate90(img)
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate270(img)
	}
	return img
}

// applyQuality implements the quality stage. Color/Default are identity;
// Gray converts to greyscale; Bitonal greyscales then thresholds every
// pixel to pure black or white.
func applyQuality(img image.Image, q Quality) image.Image {
	switch q.Kind {
	case QualityGray:
		return imaging.Grayscale(img)
	case QualityBitonal:
		return bitonal(imaging.Grayscale(img))
	default:
		return img
	}
}

// bitonal thresholds an already-greyscale image to pure black and white
// at 50% luminance. imaging.Grayscale leaves R=G=B, so any one channel
// carries the full luminance value and there's nothing left to weight.
func bitonal(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, a := img.At(x, y).RGBA()
			v := uint8(0)
			if r >= 0x8000 {
				v = 0xff
			}
			out.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: uint8(a >> 8)})
		}
	}
	return out
}

// encode writes img in the requested output format.
func encode(img image.Image, format OutputFormat, jpegQuality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatICO:
		if err := encodeICO(&buf, img); err != nil {
			return nil, err
		}
	case FormatTGA:
		if err := encodeTGA(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, badRequest("quality", "unsupported output format")
	}
	return buf.Bytes(), nil
}
