// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import "strings"

// QualityKind discriminates the Quality tagged variant.
type QualityKind int

const (
	QualityColor QualityKind = iota
	QualityDefault
	QualityGray
	QualityBitonal
)

// OutputFormat is the requested encoding for the derivative response.
type OutputFormat int

const (
	FormatJPEG OutputFormat = iota
	FormatPNG
	FormatBMP
	FormatICO
	FormatTGA
)

// ContentType returns the MIME type for an OutputFormat.
func (f OutputFormat) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatICO:
		return "image/ico"
	case FormatTGA:
		return "image/x-targa"
	default:
		return "application/octet-stream"
	}
}

// Quality is the parsed fourth path segment of an IIIF request
// ("quality.format").
type Quality struct {
	Kind   QualityKind
	Format OutputFormat
}

// ParseQuality parses the "quality.format" grammar: exactly one '.'
// separates quality from format. quality is case-sensitive
// (color|gray|bitonal|default); format is case-insensitive
// (jpg|jpeg|png|bmp|ico|tga).
func ParseQuality(s string) (Quality, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 {
		return Quality{}, badRequest("quality", "Quality must be of the form quality.format")
	}
	qualPart, fmtPart := s[:dot], s[dot+1:]

	var kind QualityKind
	switch qualPart {
	case "color":
		kind = QualityColor
	case "default":
		kind = QualityDefault
	case "gray":
		kind = QualityGray
	case "bitonal":
		kind = QualityBitonal
	default:
		return Quality{}, badRequest("quality", "Quality must be one of color, gray, bitonal, default")
	}

	var format OutputFormat
	switch strings.ToLower(fmtPart) {
	case "jpg", "jpeg":
		format = FormatJPEG
	case "png":
		format = FormatPNG
	case "bmp":
		format = FormatBMP
	case "ico":
		format = FormatICO
	case "tga":
		format = FormatTGA
	default:
		return Quality{}, badRequest("quality", "Format must be one of jpg, jpeg, png, bmp, ico, tga")
	}

	return Quality{Kind: kind, Format: format}, nil
}

// IsColorLike reports whether this quality leaves colour unchanged
// (Color or Default) — used by the fast-path selector.
func (q Quality) IsColorLike() bool {
	return q.Kind == QualityColor || q.Kind == QualityDefault
}
