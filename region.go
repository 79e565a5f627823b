// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"strconv"
	"strings"
)

// RegionKind discriminates the Region tagged variant.
type RegionKind int

const (
	RegionFull RegionKind = iota
	RegionSquare
	RegionPixels
	RegionPercent
)

// Region is the parsed first path segment of an IIIF request.
type Region struct {
	Kind RegionKind
	X, Y, W, H float64
}

// ParseRegion parses the IIIF region grammar:
//
//	full                 -> Full
//	square               -> Square
//	pct:X,Y,W,H          -> Percent
//	X,Y,W,H              -> Pixels
func ParseRegion(s string) (Region, error) {
	switch s {
	case "full":
		return Region{Kind: RegionFull}, nil
	case "square":
		return Region{Kind: RegionSquare}, nil
	}

	if rest, ok := strings.CutPrefix(s, "pct:"); ok {
		x, y, w, h, err := parseFourFloats(rest, "region")
		if err != nil {
			return Region{}, err
		}
		if w == 0 || h == 0 {
			return Region{}, badRequest("region", "Region is out of bounds")
		}
		if x >= 100 || y >= 100 {
			return Region{}, badRequest("region", "Region is out of bounds")
		}
		return Region{Kind: RegionPercent, X: x, Y: y, W: w, H: h}, nil
	}

	x, y, w, h, err := parseFourFloats(s, "region")
	if err != nil {
		return Region{}, err
	}
	if w == 0 || h == 0 {
		return Region{}, badRequest("region", "Region is out of bounds")
	}
	return Region{Kind: RegionPixels, X: x, Y: y, W: w, H: h}, nil
}

func parseFourFloats(s, op string) (a, b, c, d float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, badRequest(op, "Region must have exactly four comma-separated fields")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, perr := strconv.ParseFloat(p, 64)
		if perr != nil {
			return 0, 0, 0, 0, badRequest(op, "Region fields must be numeric")
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// rectInBounds clamps a candidate pixel rectangle to the source
// dimensions: when the rectangle overflows, the clamped width or height
// becomes the full source dimension, not the distance remaining from the
// offset.
func rectInBounds(dimW, dimH, x, y, w, h int) (xp, yp, wp, hp int, ok bool) {
	if x >= dimW || y >= dimH {
		return 0, 0, 0, 0, false
	}
	wp, hp = w, h
	if x+w > dimW {
		wp = dimW
	}
	if y+h > dimH {
		hp = dimH
	}
	return x, y, wp, hp, true
}

// resolveRegion turns a parsed Region plus the current buffer dimensions
// into a concrete pixel rectangle (x, y, w, h), applying the Square and
// Percent conversions.
func resolveRegion(r Region, dimW, dimH int) (x, y, w, h int, err error) {
	switch r.Kind {
	case RegionFull:
		return 0, 0, dimW, dimH, nil
	case RegionSquare:
		if dimW > dimH {
			return (dimW - dimH) / 2, 0, dimH, dimH, nil
		}
		if dimW < dimH {
			return 0, (dimH - dimW) / 2, dimW, dimW, nil
		}
		return 0, 0, dimW, dimH, nil
	case RegionPercent:
		px := int(round(float64(dimW) * r.X / 100))
		py := int(round(float64(dimH) * r.Y / 100))
		pw := int(round(float64(dimW) * r.W / 100))
		ph := int(round(float64(dimH) * r.H / 100))
		xp, yp, wp, hp, ok := rectInBounds(dimW, dimH, px, py, pw, ph)
		if !ok {
			return 0, 0, 0, 0, badRequest("region", "Region is out of bounds")
		}
		return xp, yp, wp, hp, nil
	case RegionPixels:
		px := int(round(r.X))
		py := int(round(r.Y))
		pw := int(round(r.W))
		ph := int(round(r.H))
		xp, yp, wp, hp, ok := rectInBounds(dimW, dimH, px, py, pw, ph)
		if !ok {
			return 0, 0, 0, 0, badRequest("region", "Region is out of bounds")
		}
		return xp, yp, wp, hp, nil
	default:
		return 0, 0, 0, 0, badRequest("region", "unknown region kind")
	}
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}
