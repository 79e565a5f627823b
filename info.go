// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"encoding/json"
	"io"
)

// Info is the info.json descriptor for a single image: the truthful
// feature set of the parameter grammar and transform pipeline —
// changing either list below without a matching change to the parser
// or transform stage it describes is a bug, not a config knob.
type Info struct {
	Context          string   `json:"@context"`
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Protocol         string   `json:"protocol"`
	Profile          string   `json:"profile"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	MaxArea          uint64   `json:"maxArea"`
	PreferredFormats []string `json:"preferredFormats"`
	ExtraFeatures    []string `json:"extraFeatures"`
	ExtraQualities   []string `json:"extraQualities"`
}

var (
	preferredFormats = []string{"tga", "png", "jpeg", "ico", "bmp"}
	extraFeatures    = []string{
		"baseUriRedirect", "rotationBy90s", "cors", "mirroring",
		"regionByPct", "regionByPx", "regionSquare",
		"sizeByH", "sizeByPct", "sizeByW", "sizeUpscaling",
	}
	extraQualities = []string{"default", "bitonal", "gray"}
)

// NewInfo builds the info.json descriptor for view, advertising maxArea
// from configuration rather than a derived w*h multiple.
func NewInfo(baseAddress string, view *ImageView, maxArea uint64) Info {
	return Info{
		Context:          "http://iiif.io/api/image/3/context.json",
		ID:               baseAddress + "/iiif/" + view.Identifier,
		Type:             "ImageService3",
		Protocol:         "http://iiif.io/api/image",
		Profile:          "level1",
		Width:            view.Width,
		Height:           view.Height,
		MaxArea:          maxArea,
		PreferredFormats: preferredFormats,
		ExtraFeatures:    extraFeatures,
		ExtraQualities:   extraQualities,
	}
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
