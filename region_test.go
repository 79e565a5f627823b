// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import "testing"

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    Region
		wantErr bool
	}{
		{"full", Region{Kind: RegionFull}, false},
		{"square", Region{Kind: RegionSquare}, false},
		{"0,0,100,200", Region{Kind: RegionPixels, X: 0, Y: 0, W: 100, H: 200}, false},
		{"pct:10,20,30,40", Region{Kind: RegionPercent, X: 10, Y: 20, W: 30, H: 40}, false},
		{"pct:0,0,100,100", Region{Kind: RegionPercent, X: 0, Y: 0, W: 100, H: 100}, false},
		{"pct:100,0,10,10", Region{}, true}, // x >= 100
		{"0,0,0,10", Region{}, true},        // w = 0
		{"0,0,10,0", Region{}, true},        // h = 0
		{"1,2,3", Region{}, true},           // too few fields
		{"1,2,3,4,5", Region{}, true},       // too many fields
		{"a,b,c,d", Region{}, true},         // non-numeric
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRegion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRegion(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestResolveRegionSquare(t *testing.T) {
	tests := []struct {
		w, h          int
		x, y, ww, hh  int
	}{
		{800, 600, 100, 0, 600, 600},
		{600, 800, 0, 100, 600, 600},
		{500, 500, 0, 0, 500, 500},
	}
	for _, tt := range tests {
		x, y, w, h, err := resolveRegion(Region{Kind: RegionSquare}, tt.w, tt.h)
		if err != nil {
			t.Fatalf("resolveRegion square(%d,%d) error: %v", tt.w, tt.h, err)
		}
		if x != tt.x || y != tt.y || w != tt.ww || h != tt.hh {
			t.Errorf("resolveRegion square(%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				tt.w, tt.h, x, y, w, h, tt.x, tt.y, tt.ww, tt.hh)
		}
	}
}

// TestPixelRegionOverflowClamp verifies that an out-of-bounds
// width/height clamps to the *full* source dimension, not to the
// distance remaining from the offset.
func TestPixelRegionOverflowClamp(t *testing.T) {
	x, y, w, h, err := resolveRegion(Region{Kind: RegionPixels, X: 700, Y: 0, W: 200, H: 600}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 700 || y != 0 || w != 800 || h != 600 {
		t.Errorf("got (%d,%d,%d,%d), want (700,0,800,600) per the documented clamp", x, y, w, h)
	}
}

func TestPixelRegionOutOfBounds(t *testing.T) {
	_, _, _, _, err := resolveRegion(Region{Kind: RegionPixels, X: 800, Y: 0, W: 10, H: 10}, 800, 600)
	if err == nil {
		t.Fatal("expected error for x == W")
	}
	_, _, _, _, err = resolveRegion(Region{Kind: RegionPixels, X: 799, Y: 0, W: 10, H: 10}, 800, 600)
	if err != nil {
		t.Fatalf("x == W-1 should be in bounds, got error: %v", err)
	}
}
