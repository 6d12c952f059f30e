package texture

import (
	"fmt"
	"strings"
)

// ImageFormat identifies the container format of an encoded image buffer.
type ImageFormat uint8

const (
	FormatUnknown ImageFormat = iota
	FormatBasis
	FormatBmp
	FormatDds
	FormatJpeg
	FormatKtx2
	FormatPng
	FormatPnm
	FormatTga
	FormatWebP
)

func (f ImageFormat) String() string {
	switch f {
	case FormatBasis:
		return "basis"
	case FormatBmp:
		return "bmp"
	case FormatDds:
		return "dds"
	case FormatJpeg:
		return "jpeg"
	case FormatKtx2:
		return "ktx2"
	case FormatPng:
		return "png"
	case FormatPnm:
		return "pnm"
	case FormatTga:
		return "tga"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// FormatFromName parses the name used by ImageFormat.String.
func FormatFromName(name string) (ImageFormat, bool) {
	switch strings.ToLower(name) {
	case "basis":
		return FormatBasis, true
	case "bmp":
		return FormatBmp, true
	case "dds":
		return FormatDds, true
	case "jpeg", "jpg":
		return FormatJpeg, true
	case "ktx2":
		return FormatKtx2, true
	case "png":
		return FormatPng, true
	case "pnm":
		return FormatPnm, true
	case "tga":
		return FormatTga, true
	case "webp":
		return FormatWebP, true
	default:
		return FormatUnknown, false
	}
}

// FormatFromExtension maps a file extension (without dot, case insensitive)
// to its container format.
func FormatFromExtension(ext string) (ImageFormat, bool) {
	switch strings.ToLower(ext) {
	case "basis":
		return FormatBasis, true
	case "bmp":
		return FormatBmp, true
	case "dds":
		return FormatDds, true
	case "jpg", "jpeg":
		return FormatJpeg, true
	case "ktx2":
		return FormatKtx2, true
	case "png":
		return FormatPng, true
	case "pam", "pbm", "pgm", "ppm":
		return FormatPnm, true
	case "tga":
		return FormatTga, true
	case "webp":
		return FormatWebP, true
	default:
		return FormatUnknown, false
	}
}

// FormatFromMIMEType maps a MIME type to its container format.
func FormatFromMIMEType(mime string) (ImageFormat, bool) {
	switch strings.ToLower(mime) {
	case "image/bmp", "image/x-bmp":
		return FormatBmp, true
	case "image/vnd-ms.dds":
		return FormatDds, true
	case "image/jpeg":
		return FormatJpeg, true
	case "image/ktx2":
		return FormatKtx2, true
	case "image/png":
		return FormatPng, true
	case "image/x-portable-anymap", "image/x-portable-bitmap",
		"image/x-portable-graymap", "image/x-portable-pixmap":
		return FormatPnm, true
	case "image/x-targa", "image/x-tga":
		return FormatTga, true
	case "image/webp":
		return FormatWebP, true
	default:
		return FormatUnknown, false
	}
}

// ImageType selects how the container format of an image buffer is
// determined: from a file extension, or from an explicitly given format.
type ImageType struct {
	ext    string
	format ImageFormat
}

// ExtensionType resolves the format from a file extension (without dot).
func ExtensionType(ext string) ImageType {
	return ImageType{ext: ext}
}

// FormatType selects the given format directly, ignoring any extension.
func FormatType(format ImageFormat) ImageType {
	return ImageType{format: format}
}

func (t ImageType) resolve() (ImageFormat, error) {
	if t.format != FormatUnknown {
		return t.format, nil
	}

	if t.ext == "" {
		return FormatUnknown, ErrMissingExtension
	}

	format, ok := FormatFromExtension(t.ext)
	if !ok {
		return FormatUnknown, &UnknownExtensionError{Extension: t.ext}
	}

	return format, nil
}

func (t ImageType) String() string {
	if t.format != FormatUnknown {
		return fmt.Sprintf("format(%s)", t.format)
	}

	return fmt.Sprintf("extension(%s)", t.ext)
}
