package texture

import (
	"image"

	"github.com/disintegration/imaging"
)

type decodeOptions struct {
	supported CompressedImageFormats
	srgb      bool
	sampler   Sampler
	retention RetentionPolicy
}

type decodeFunc func(data []byte, opts decodeOptions) (*Image, error)

// decoders holds the decode entry point per container format. Formats are
// registered from init functions in build-tag gated files, so a format that
// is compiled out simply never shows up here.
var decoders = map[ImageFormat]decodeFunc{}

func registerDecoder(format ImageFormat, decode decodeFunc) {
	decoders[format] = decode
}

// formatEnabled reports whether the decoder for the format is compiled in.
func formatEnabled(format ImageFormat) bool {
	_, ok := decoders[format]
	return ok
}

// FromBuffer decodes an encoded image buffer into an Image. The container
// format is taken from imageType; block-compressed containers are validated
// against the supported compressed-format set instead of being decoded.
func FromBuffer(data []byte, imageType ImageType, supported CompressedImageFormats, srgb bool, sampler Sampler, retention RetentionPolicy) (*Image, error) {
	format, err := imageType.resolve()
	if err != nil {
		return nil, err
	}

	decode, ok := decoders[format]
	if !ok {
		return nil, &UnsupportedFormatError{Format: format}
	}

	return decode(data, decodeOptions{
		supported: supported,
		srgb:      srgb,
		sampler:   sampler,
		retention: retention,
	})
}

// fromStdImage normalizes a decoded image.Image to NRGBA and wraps it into
// an Image carrying the load settings.
func fromStdImage(img image.Image, format ImageFormat, opts decodeOptions) *Image {
	return newImage(imaging.Clone(img), format, opts)
}
