// Package imageio encodes rendered frames into the supported image formats.
package imageio

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

type Format uint8

const (
	PNG Format = iota
	PPM
	BMP
	TIFF
	TGA
	WEBP
)

var formatExtensions = map[string]Format{
	".png":  PNG,
	".ppm":  PPM,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".tga":  TGA,
	".webp": WEBP,
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PPM:
		return "ppm"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	case TGA:
		return "tga"
	case WEBP:
		return "webp"
	}
	return "unknown"
}

// Detect the image format from the extension of a file path or URL.
func FormatFromPath(pathToImage string) (Format, error) {
	ext := strings.ToLower(path.Ext(pathToImage))
	format, exists := formatExtensions[ext]
	if !exists {
		return 0, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// Get the MIME type for the format.
func (f Format) MimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case PPM:
		return "image/x-portable-pixmap"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	case TGA:
		return "image/x-tga"
	case WEBP:
		return "image/webp"
	}
	return "application/octet-stream"
}
