package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// RetentionPolicy decides whether the CPU-side pixel data of an image is
// kept after the image has been uploaded to the GPU.
type RetentionPolicy uint8

const (
	RetentionKeep RetentionPolicy = iota
	RetentionUnload
)

func (p RetentionPolicy) String() string {
	if p == RetentionUnload {
		return "unload"
	}

	return "keep"
}

func (p RetentionPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *RetentionPolicy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch name {
	case "keep":
		*p = RetentionKeep
	case "unload":
		*p = RetentionUnload
	default:
		return fmt.Errorf("unknown retention policy %q", name)
	}

	return nil
}

// MipLevel is one mip level of a block-compressed payload.
type MipLevel struct {
	Width, Height int
	Data          []byte
}

// CompressedPayload is GPU-ready block-compressed texture data as found in a
// DDS or KTX2 container. Levels are ordered largest first.
type CompressedPayload struct {
	Format BlockFormat
	Levels []MipLevel
}

// Image is a decoded texture asset. It holds either CPU-side pixels
// (uncompressed formats, normalized to NRGBA) or a block-compressed payload,
// plus the sampling and lifetime settings the image was loaded with.
type Image struct {
	width, height int
	format        ImageFormat
	srgb          bool
	sampler       Sampler
	retention     RetentionPolicy

	pixels     *image.NRGBA
	compressed *CompressedPayload

	gpu *ebiten.Image
}

func newImage(pixels *image.NRGBA, format ImageFormat, opts decodeOptions) *Image {
	return &Image{
		width:     pixels.Rect.Dx(),
		height:    pixels.Rect.Dy(),
		format:    format,
		srgb:      opts.srgb,
		sampler:   opts.sampler,
		retention: opts.retention,
		pixels:    pixels,
	}
}

func newCompressedImage(payload *CompressedPayload, format ImageFormat, srgb bool, opts decodeOptions) *Image {
	return &Image{
		width:      payload.Levels[0].Width,
		height:     payload.Levels[0].Height,
		format:     format,
		srgb:       srgb,
		sampler:    opts.sampler,
		retention:  opts.retention,
		compressed: payload,
	}
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Format is the container format the image was decoded from.
func (img *Image) Format() ImageFormat { return img.format }

// IsSRGB reports whether the pixel data is in sRGB color space.
func (img *Image) IsSRGB() bool { return img.srgb }

func (img *Image) Sampler() Sampler           { return img.sampler }
func (img *Image) Retention() RetentionPolicy { return img.retention }

// IsCompressed reports whether the image holds a block-compressed payload
// instead of CPU-side pixels.
func (img *Image) IsCompressed() bool { return img.compressed != nil }

// Pixels returns the CPU-side pixel data. It is nil for block-compressed
// images and for images whose pixels were unloaded after GPU upload.
func (img *Image) Pixels() *image.NRGBA { return img.pixels }

// Compressed returns the block-compressed payload, if any.
func (img *Image) Compressed() (*CompressedPayload, bool) {
	return img.compressed, img.compressed != nil
}

// Ebiten uploads the image to the GPU once and returns the resulting ebiten
// image. When the retention policy is RetentionUnload, the CPU-side pixels
// are dropped after the upload. Not safe for concurrent use; call from the
// thread that drives rendering.
func (img *Image) Ebiten() (*ebiten.Image, error) {
	if img.gpu != nil {
		return img.gpu, nil
	}

	if img.compressed != nil {
		return nil, fmt.Errorf("cannot upload block-compressed payload (%s) through ebiten", img.compressed.Format)
	}

	if img.pixels == nil {
		return nil, errors.New("image pixel data has been unloaded")
	}

	img.gpu = ebiten.NewImageFromImage(img.pixels)
	img.applyRetention()

	return img.gpu, nil
}

func (img *Image) applyRetention() {
	if img.retention == RetentionUnload {
		img.pixels = nil
	}
}
