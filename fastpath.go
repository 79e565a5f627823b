// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"image"
	"io"
	"os"
)

// IdentityStream reports whether plan is the identity fast path:
// region=full, size=max, rotation identity, quality colour-like,
// and the requested output format matching the source format exactly
// (PNG-to-PNG or JPEG-to-JPEG only; BMP/ICO/TGA are never fast-pathed).
// It is a pure function of the plan and the source format, independent
// of any request state, so it can be tested in isolation.
func IdentityStream(plan TransformPlan, format SourceFormat) (ok bool, contentType string) {
	if plan.Region.Kind != RegionFull {
		return false, ""
	}
	if plan.Size.Kind != SizeMax {
		return false, ""
	}
	if !plan.Rotation.IsIdentity() {
		return false, ""
	}
	if !plan.Quality.IsColorLike() {
		return false, ""
	}

	switch {
	case format == SourcePNG && plan.Quality.Format == FormatPNG:
		return true, format.ContentType()
	case format == SourceJPEG && plan.Quality.Format == FormatJPEG:
		return true, format.ContentType()
	default:
		return false, ""
	}
}

// OpenIdentityStream opens the source file for byte-for-byte streaming.
// The caller is responsible for closing the returned reader.
func OpenIdentityStream(view *ImageView) (io.ReadCloser, error) {
	f, err := os.Open(view.Filepath)
	if err != nil {
		return nil, internalError("fastpath", "failed to open source file", err)
	}
	return f, nil
}

// TryPNGWindowedDecode attempts the PNG-only windowed decode for
// Square/Pixels/Percent regions. ok is false whenever the optimisation
// doesn't apply (non-PNG source, Full region — which has nothing to
// window) or the decode failed for any reason; the failure is never
// surfaced, callers must silently fall back to a full decode plus crop.
func TryPNGWindowedDecode(view *ImageView, region Region) (img image.Image, ok bool) {
	if view.Format != SourcePNG {
		return nil, false
	}
	switch region.Kind {
	case RegionSquare, RegionPixels, RegionPercent:
	default:
		return nil, false
	}

	x, y, w, h, err := resolveRegion(region, view.Width, view.Height)
	if err != nil {
		return nil, false
	}

	decoded, err := pngWindowedDecode(view.Filepath, x, y, w, h)
	if err != nil {
		return nil, false
	}
	return decoded, true
}
