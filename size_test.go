// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    Size
		wantErr bool
	}{
		{"max", Size{Kind: SizeMax}, false},
		{"^max", Size{Kind: SizeMax, Upscale: true}, false},
		{"pct:50", Size{Kind: SizePercent, N: 50}, false},
		{"300,", Size{Kind: SizeWidth, W: 300}, false},
		{",300", Size{Kind: SizeHeight, H: 300}, false},
		{"300,400", Size{Kind: SizeWidthHeight, W: 300, H: 400}, false},
		{"^300,400", Size{Kind: SizeWidthHeight, W: 300, H: 400, Upscale: true}, false},
		{"!300,400", Size{Kind: SizeWidthHeight, W: 300, H: 400, Forced: true}, false},
		{"^!300,400", Size{Kind: SizeWidthHeight, W: 300, H: 400, Forced: true, Upscale: true}, false},
		{"^2000,", Size{Kind: SizeWidth, W: 2000, Upscale: true}, false},
		{"abc", Size{}, true},
		{",", Size{}, true},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSize(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestResolveSizeWidthNoUpscale(t *testing.T) {
	_, _, err := resolveSize(Size{Kind: SizeWidth, W: 2000}, 800, 600)
	if err == nil {
		t.Fatal("expected Size not allowed error when upscaling without ^")
	}
}

func TestResolveSizeWidthUpscale(t *testing.T) {
	w, h, err := resolveSize(Size{Kind: SizeWidth, W: 2000, Upscale: true}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 2000 || h != 1500 {
		t.Errorf("got (%d,%d), want (2000,1500)", w, h)
	}
}

func TestResolveSizeWidthHeightForced(t *testing.T) {
	w, h, err := resolveSize(Size{Kind: SizeWidthHeight, W: 400, H: 400, Forced: true, Upscale: true}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 800x600 fit inside a 400x400 box preserving aspect ratio -> 400x300
	if w != 400 || h != 300 {
		t.Errorf("got (%d,%d), want (400,300)", w, h)
	}
}

func TestResolveSizeWidthHeightExact(t *testing.T) {
	w, h, err := resolveSize(Size{Kind: SizeWidthHeight, W: 400, H: 500}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 400 || h != 500 {
		t.Errorf("got (%d,%d), want (400,500) regardless of aspect ratio", w, h)
	}
}

func TestResolveSizePercentBoundary(t *testing.T) {
	if _, _, err := resolveSize(Size{Kind: SizePercent, N: 100}, 800, 600); err == nil {
		t.Error("expected error for pct:100 without upscale")
	}
	if _, _, err := resolveSize(Size{Kind: SizePercent, N: 100, Upscale: true}, 800, 600); err != nil {
		t.Errorf("unexpected error with upscale: %v", err)
	}
}
