package texture

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// CompressedImageFormats is the set of GPU block-compression families the
// active render device can sample from.
type CompressedImageFormats uint8

const (
	CompressedASTCLdr CompressedImageFormats = 1 << iota
	CompressedBC
	CompressedETC2
)

const CompressedNone CompressedImageFormats = 0
const CompressedAll = CompressedASTCLdr | CompressedBC | CompressedETC2

// CompressedFormatsFromFeatures derives the supported compression families
// from the wgpu device feature list.
func CompressedFormatsFromFeatures(features []wgpu.FeatureName) CompressedImageFormats {
	supported := CompressedNone

	for _, feature := range features {
		switch feature {
		case wgpu.FeatureNameTextureCompressionASTC:
			supported |= CompressedASTCLdr
		case wgpu.FeatureNameTextureCompressionBC:
			supported |= CompressedBC
		case wgpu.FeatureNameTextureCompressionETC2:
			supported |= CompressedETC2
		}
	}

	return supported
}

// Supports reports whether every family in other is contained in c.
func (c CompressedImageFormats) Supports(other CompressedImageFormats) bool {
	return c&other == other
}

func (c CompressedImageFormats) String() string {
	if c == CompressedNone {
		return "none"
	}

	var names []string
	if c&CompressedASTCLdr != 0 {
		names = append(names, "astc-ldr")
	}
	if c&CompressedBC != 0 {
		names = append(names, "bc")
	}
	if c&CompressedETC2 != 0 {
		names = append(names, "etc2")
	}

	return strings.Join(names, "|")
}

// BlockFormat identifies a GPU block-compressed texture format carried by a
// DDS or KTX2 container. Data in these formats is kept as-is for GPU upload,
// never decoded on the CPU.
type BlockFormat uint8

const (
	BC1RGBA BlockFormat = iota + 1
	BC2RGBA
	BC3RGBA
	BC4R
	BC5RG
	BC6HRGB
	BC7RGBA
	ETC2RGB8
	ETC2RGB8A1
	ETC2RGBA8
	EACR11
	EACRG11
	ASTC4x4
)

func (f BlockFormat) String() string {
	switch f {
	case BC1RGBA:
		return "bc1-rgba"
	case BC2RGBA:
		return "bc2-rgba"
	case BC3RGBA:
		return "bc3-rgba"
	case BC4R:
		return "bc4-r"
	case BC5RG:
		return "bc5-rg"
	case BC6HRGB:
		return "bc6h-rgb"
	case BC7RGBA:
		return "bc7-rgba"
	case ETC2RGB8:
		return "etc2-rgb8"
	case ETC2RGB8A1:
		return "etc2-rgb8a1"
	case ETC2RGBA8:
		return "etc2-rgba8"
	case EACR11:
		return "eac-r11"
	case EACRG11:
		return "eac-rg11"
	case ASTC4x4:
		return "astc-4x4"
	default:
		return "unknown"
	}
}

// Family returns the compression family the format belongs to.
func (f BlockFormat) Family() CompressedImageFormats {
	switch f {
	case BC1RGBA, BC2RGBA, BC3RGBA, BC4R, BC5RG, BC6HRGB, BC7RGBA:
		return CompressedBC
	case ETC2RGB8, ETC2RGB8A1, ETC2RGBA8, EACR11, EACRG11:
		return CompressedETC2
	case ASTC4x4:
		return CompressedASTCLdr
	default:
		return CompressedNone
	}
}

// BytesPerBlock returns the encoded size of one 4x4 texel block.
func (f BlockFormat) BytesPerBlock() int {
	switch f {
	case BC1RGBA, BC4R, ETC2RGB8, ETC2RGB8A1, EACR11:
		return 8
	default:
		return 16
	}
}

// maxTextureDimension bounds the width and height accepted from container
// headers. Matches the common GPU texture size limit; anything above it in a
// header is corrupt or hostile, and keeping dimensions bounded means level
// size computations cannot overflow.
const maxTextureDimension = 1 << 14

// levelByteSize returns the payload size of a single mip level with the
// given dimensions in texels. Dimensions must have been validated against
// maxTextureDimension.
func (f BlockFormat) levelByteSize(width, height int) int {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4

	return blocksWide * blocksHigh * f.BytesPerBlock()
}
