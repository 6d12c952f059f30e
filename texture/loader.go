// Package texture implements the image asset loader and the in-memory
// texture representation it produces.
//
// The loader decodes encoded image buffers into Image assets, honoring
// per-load settings (explicit format override, color space, sampler,
// CPU retention policy). Individual container formats can be compiled out
// with kiln_no_<feature> build tags; the extension of a compiled-out format
// is reported to the asset server as a hint instead of a loader.
package texture

import (
	"fmt"
	"io"
	"path"

	"github.com/kiln-engine/kiln/assets"
)

// extensionEntry pairs a file extension with the build feature that enables
// it and the container format it maps to.
type extensionEntry struct {
	extension string
	feature   string
	format    ImageFormat
}

// imageExtensionTable is the fixed table of extensions the image loader can
// ever claim, in the order they are reported. Whether an entry is enabled is
// decided at compile time by the decoder registrations.
var imageExtensionTable = []extensionEntry{
	// basis-universal needs a runtime transcoder, which has no Go
	// implementation; the entry only ever produces a hint.
	{"basis", "basis-universal", FormatBasis},
	{"bmp", "bmp", FormatBmp},
	{"png", "png", FormatPng},
	{"dds", "dds", FormatDds},
	{"tga", "tga", FormatTga},
	{"jpg", "jpeg", FormatJpeg},
	{"jpeg", "jpeg", FormatJpeg},
	{"ktx2", "ktx2", FormatKtx2},
	{"webp", "webp", FormatWebP},
	{"pam", "pnm", FormatPnm},
	{"pbm", "pnm", FormatPnm},
	{"pgm", "pnm", FormatPnm},
	{"ppm", "pnm", FormatPnm},
}

// DisabledExtension pairs a file extension with the name of the feature
// whose absence disabled it. Used for diagnostic hints only.
type DisabledExtension struct {
	Extension string
	Feature   string
}

// DisabledExtensions lists the extensions of the table whose decoder is not
// compiled into this binary.
func DisabledExtensions() []DisabledExtension {
	var disabled []DisabledExtension

	for _, entry := range imageExtensionTable {
		if !formatEnabled(entry.format) {
			disabled = append(disabled, DisabledExtension{
				Extension: entry.extension,
				Feature:   entry.feature,
			})
		}
	}

	return disabled
}

// ImageLoader loads image files into Image assets. Beyond the supported
// compressed-format set fixed at construction it is stateless; concurrent
// loads are independent.
type ImageLoader struct {
	supportedCompressedFormats CompressedImageFormats
}

// NewImageLoader creates an image loader that accepts block-compressed
// payloads in the given families.
func NewImageLoader(supported CompressedImageFormats) *ImageLoader {
	return &ImageLoader{supportedCompressedFormats: supported}
}

// SupportedCompressedFormats returns the compressed-format families the
// loader accepts.
func (l *ImageLoader) SupportedCompressedFormats() CompressedImageFormats {
	return l.supportedCompressedFormats
}

// Load reads the whole stream into memory, resolves the container format
// from the settings or the path extension and decodes the bytes into an
// *Image. Decode failures are wrapped into a FileTextureError carrying the
// asset path.
func (l *ImageLoader) Load(ctx assets.LoadContext, r io.Reader) (any, error) {
	settings, err := settingsOf(ctx)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image into memory: %w", err)
	}

	ext := extensionOf(ctx.Path)

	img, err := FromBuffer(data,
		settings.Format.imageType(ext),
		l.supportedCompressedFormats,
		settings.SRGB,
		settings.Sampler,
		settings.Retention)
	if err != nil {
		return nil, &FileTextureError{Err: err, Path: ctx.Path}
	}

	return img, nil
}

// Extensions returns the compile-time-enabled subset of the extension table.
func (l *ImageLoader) Extensions() []string {
	exts := make([]string, 0, len(imageExtensionTable))

	for _, entry := range imageExtensionTable {
		if formatEnabled(entry.format) {
			exts = append(exts, entry.extension)
		}
	}

	return exts
}

func settingsOf(ctx assets.LoadContext) (LoaderSettings, error) {
	switch settings := ctx.Settings.(type) {
	case nil:
		return DefaultLoaderSettings(), nil
	case LoaderSettings:
		return settings, nil
	case *LoaderSettings:
		return *settings, nil
	default:
		return LoaderSettings{}, fmt.Errorf("unexpected settings type %T for image loader", ctx.Settings)
	}
}

func extensionOf(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return ""
	}

	return ext[1:]
}
