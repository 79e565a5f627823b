// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"strconv"
	"strings"
)

// SizeKind discriminates the Size tagged variant.
type SizeKind int

const (
	SizeMax SizeKind = iota
	SizeWidth
	SizeHeight
	SizePercent
	SizeWidthHeight
)

// Size is the parsed second path segment of an IIIF request.
type Size struct {
	Kind    SizeKind
	W, H    int
	N       float64 // percent
	Forced  bool    // WidthHeight: true = fit-inside (letterbox), false = exact stretch
	Upscale bool
}

// ParseSize parses the IIIF size grammar. The token may be prefixed by
// '^' (upscale allowed) and/or '!' (forced aspect
// preservation); '^' precedes '!'.
func ParseSize(s string) (Size, error) {
	upscale := false
	if rest, ok := strings.CutPrefix(s, "^"); ok {
		upscale = true
		s = rest
	}
	forced := false
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		forced = true
		s = rest
	}

	if s == "max" {
		return Size{Kind: SizeMax, Upscale: upscale}, nil
	}

	if rest, ok := strings.CutPrefix(s, "pct:"); ok {
		n, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Size{}, badRequest("size", "Size percent must be numeric")
		}
		return Size{Kind: SizePercent, N: n, Upscale: upscale}, nil
	}

	if strings.Contains(s, ",") {
		parts := strings.SplitN(s, ",", 2)
		wStr, hStr := parts[0], parts[1]
		switch {
		case wStr != "" && hStr != "":
			w, err1 := strconv.Atoi(wStr)
			h, err2 := strconv.Atoi(hStr)
			if err1 != nil || err2 != nil {
				return Size{}, badRequest("size", "Size fields must be numeric")
			}
			return Size{Kind: SizeWidthHeight, W: w, H: h, Forced: forced, Upscale: upscale}, nil
		case wStr != "":
			w, err := strconv.Atoi(wStr)
			if err != nil {
				return Size{}, badRequest("size", "Size fields must be numeric")
			}
			return Size{Kind: SizeWidth, W: w, Upscale: upscale}, nil
		case hStr != "":
			h, err := strconv.Atoi(hStr)
			if err != nil {
				return Size{}, badRequest("size", "Size fields must be numeric")
			}
			return Size{Kind: SizeHeight, H: h, Upscale: upscale}, nil
		}
	}

	return Size{}, badRequest("size", "Size not allowed")
}

// resolveSize computes the target (width, height) for the size stage,
// given the current buffer dimensions.
func resolveSize(sz Size, dimW, dimH int) (w, h int, err error) {
	switch sz.Kind {
	case SizeMax:
		return dimW, dimH, nil
	case SizeWidth:
		if sz.W > dimW && !sz.Upscale {
			return 0, 0, badRequest("size", "Size not allowed")
		}
		scale := float64(sz.W) / float64(dimW)
		return sz.W, int(round(float64(dimH) * scale)), nil
	case SizeHeight:
		if sz.H > dimH && !sz.Upscale {
			return 0, 0, badRequest("size", "Size not allowed")
		}
		scale := float64(sz.H) / float64(dimH)
		return int(round(float64(dimW) * scale)), sz.H, nil
	case SizePercent:
		if sz.N >= 100 && !sz.Upscale {
			return 0, 0, badRequest("size", "Size not allowed")
		}
		return int(round(float64(dimW) * sz.N / 100)), int(round(float64(dimH) * sz.N / 100)), nil
	case SizeWidthHeight:
		if (sz.W > dimW || sz.H > dimH) && !sz.Upscale {
			return 0, 0, badRequest("size", "Size not allowed")
		}
		if sz.Forced {
			// Fit inside the (w, h) box preserving aspect ratio.
			srcRatio := float64(dimW) / float64(dimH)
			boxRatio := float64(sz.W) / float64(sz.H)
			if srcRatio > boxRatio {
				return sz.W, int(round(float64(sz.W) / srcRatio)), nil
			}
			return int(round(float64(sz.H) * srcRatio)), sz.H, nil
		}
		return sz.W, sz.H, nil
	default:
		return 0, 0, badRequest("size", "unknown size kind")
	}
}
