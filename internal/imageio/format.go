// Package imageio writes rendered frames and screenshots to disk in the
// common raster formats.
package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
	WebP
	TIFF
	GIF
)

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	BMP:  "bmp",
	WebP: "webp",
	TIFF: "tiff",
	GIF:  "gif",
}

var extFormats = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".bmp":  BMP,
	".webp": WebP,
	".tif":  TIFF,
	".tiff": TIFF,
	".gif":  GIF,
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the canonical file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	default:
		return "." + f.String()
	}
}

// FormatFromPath infers the format from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return PNG, fmt.Errorf("unsupported image extension %q", ext)
}

// ParseFormat parses a format name such as "png" or "jpg".
func ParseFormat(name string) (Format, error) {
	return FormatFromPath("." + strings.TrimPrefix(strings.TrimSpace(name), "."))
}
