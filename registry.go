// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// SourceFormat is the detected format of a source file, by extension (not
// content sniff).
type SourceFormat int

const (
	SourcePNG SourceFormat = iota
	SourceJPEG
	SourceBMP
	SourceTIFF
)

func (f SourceFormat) String() string {
	switch f {
	case SourcePNG:
		return "png"
	case SourceJPEG:
		return "jpeg"
	case SourceBMP:
		return "bmp"
	case SourceTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type of a source file in its original
// format, used by the fast-path selector and identity stream.
func (f SourceFormat) ContentType() string {
	switch f {
	case SourcePNG:
		return "image/png"
	case SourceJPEG:
		return "image/jpeg"
	case SourceBMP:
		return "image/bmp"
	case SourceTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// extensions is the ordered extension search list, each entry tried in
// its lowercase and then its all-uppercase form: a PNG shadows a
// same-named TIFF because png is tried first.
var extensions = []struct {
	ext    string
	format SourceFormat
}{
	{"png", SourcePNG},
	{"tif", SourceTIFF},
	{"tiff", SourceTIFF},
	{"jpg", SourceJPEG},
	{"bmp", SourceBMP},
}

// ImageView is the metadata record produced by resolving an identifier:
// the resolved file path, its detected format and its pixel dimensions,
// obtained without a full decode.
type ImageView struct {
	Identifier string
	Filepath   string
	Format     SourceFormat
	Width      int
	Height     int
}

// Registry resolves identifiers to on-disk source files under a single
// read-only image root directory.
type Registry struct {
	ImageRoot string
}

// NewRegistry returns a Registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{ImageRoot: dir}
}

// Resolve searches the image root for a file named "{identifier}.{ext}",
// trying each extension in the fixed order (png, tif, tiff, jpg, bmp),
// lowercase form before uppercase form, first match wins.
func (reg *Registry) Resolve(identifier string) (*ImageView, error) {
	base := filepath.Join(reg.ImageRoot, identifier)

	for _, e := range extensions {
		for _, ext := range []string{e.ext, strings.ToUpper(e.ext)} {
			path := base + "." + ext
			if _, err := os.Stat(path); err == nil {
				w, h, err := probeDimensions(path)
				if err != nil {
					return nil, internalError("registry", "failed to read image header", err)
				}
				return &ImageView{
					Identifier: identifier,
					Filepath:   path,
					Format:     e.format,
					Width:      w,
					Height:     h,
				}, nil
			}
		}
	}

	return nil, notFound("registry", identifier+" not found")
}

// probeDimensions reads only the file header to determine pixel
// dimensions, never decoding the full image: PNG via the IHDR chunk,
// JPEG via SOF markers, BMP/TIFF via their file headers — all exposed
// through the stdlib image.DecodeConfig mechanism once the corresponding
// decoder package is imported for its side effect.
func probeDimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
