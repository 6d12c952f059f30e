//go:build !kiln_no_dds

package texture

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

func init() {
	registerDecoder(FormatDds, decodeDds)
}

// DDS container layout, all fields little endian. The pixel data is kept
// block-compressed; we only parse the header, map the pixel format and slice
// the mip chain.
const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 4 + 124
	dx10ExtSize   = 20

	ddpfFourCC = 0x4
)

// DXGI_FORMAT values reachable through the DX10 extension header.
const (
	dxgiBC1Unorm     = 71
	dxgiBC1UnormSrgb = 72
	dxgiBC2Unorm     = 74
	dxgiBC2UnormSrgb = 75
	dxgiBC3Unorm     = 77
	dxgiBC3UnormSrgb = 78
	dxgiBC4Unorm     = 80
	dxgiBC5Unorm     = 83
	dxgiBC6HUF16     = 95
	dxgiBC6HSF16     = 96
	dxgiBC7Unorm     = 98
	dxgiBC7UnormSrgb = 99
)

func decodeDds(data []byte, opts decodeOptions) (*Image, error) {
	if len(data) < ddsHeaderSize {
		return nil, fmt.Errorf("dds: truncated header (%d bytes)", len(data))
	}

	if string(data[:4]) != ddsMagic {
		return nil, fmt.Errorf("dds: bad magic")
	}

	le := binary.LittleEndian

	if size := le.Uint32(data[4:]); size != 124 {
		return nil, fmt.Errorf("dds: unexpected header size %d", size)
	}

	height := int(le.Uint32(data[12:]))
	width := int(le.Uint32(data[16:]))
	mipCount := int(le.Uint32(data[28:]))
	if mipCount == 0 {
		mipCount = 1
	}

	if width <= 0 || height <= 0 || width > maxTextureDimension || height > maxTextureDimension {
		return nil, fmt.Errorf("dds: invalid dimensions %dx%d", width, height)
	}

	// a chain ends at 1x1, so it can never be longer than the bit length
	// of the larger dimension
	if maxMips := bits.Len(uint(max(width, height))); mipCount > maxMips {
		return nil, fmt.Errorf("dds: mip count %d exceeds maximum chain length %d for %dx%d",
			mipCount, maxMips, width, height)
	}

	pfFlags := le.Uint32(data[80:])
	if pfFlags&ddpfFourCC == 0 {
		return nil, fmt.Errorf("dds: only fourcc pixel formats are supported")
	}

	fourCC := string(data[84:88])
	payload := data[ddsHeaderSize:]

	var blockFormat BlockFormat
	srgb := opts.srgb

	switch fourCC {
	case "DXT1":
		blockFormat = BC1RGBA
	case "DXT2", "DXT3":
		blockFormat = BC2RGBA
	case "DXT4", "DXT5":
		blockFormat = BC3RGBA
	case "ATI1", "BC4U":
		blockFormat = BC4R
	case "ATI2", "BC5U":
		blockFormat = BC5RG
	case "DX10":
		if len(payload) < dx10ExtSize {
			return nil, fmt.Errorf("dds: truncated dx10 extension header")
		}

		dxgiFormat := le.Uint32(payload)
		payload = payload[dx10ExtSize:]

		var ok bool
		blockFormat, srgb, ok = blockFormatFromDxgi(dxgiFormat, opts.srgb)
		if !ok {
			return nil, fmt.Errorf("dds: unsupported dxgi format %d", dxgiFormat)
		}
	default:
		return nil, fmt.Errorf("dds: unsupported fourcc %q", fourCC)
	}

	if !opts.supported.Supports(blockFormat.Family()) {
		return nil, &UnsupportedCompressionError{Format: blockFormat, Supported: opts.supported}
	}

	levels, err := sliceMipChain(payload, blockFormat, width, height, mipCount)
	if err != nil {
		return nil, fmt.Errorf("dds: %w", err)
	}

	img := newCompressedImage(&CompressedPayload{
		Format: blockFormat,
		Levels: levels,
	}, FormatDds, srgb, opts)

	return img, nil
}

func blockFormatFromDxgi(dxgiFormat uint32, srgbDefault bool) (BlockFormat, bool, bool) {
	switch dxgiFormat {
	case dxgiBC1Unorm:
		return BC1RGBA, srgbDefault, true
	case dxgiBC1UnormSrgb:
		return BC1RGBA, true, true
	case dxgiBC2Unorm:
		return BC2RGBA, srgbDefault, true
	case dxgiBC2UnormSrgb:
		return BC2RGBA, true, true
	case dxgiBC3Unorm:
		return BC3RGBA, srgbDefault, true
	case dxgiBC3UnormSrgb:
		return BC3RGBA, true, true
	case dxgiBC4Unorm:
		return BC4R, false, true
	case dxgiBC5Unorm:
		return BC5RG, false, true
	case dxgiBC6HUF16, dxgiBC6HSF16:
		return BC6HRGB, false, true
	case dxgiBC7Unorm:
		return BC7RGBA, srgbDefault, true
	case dxgiBC7UnormSrgb:
		return BC7RGBA, true, true
	default:
		return 0, false, false
	}
}

// sliceMipChain cuts the sequential mip levels out of a compressed payload,
// largest level first.
func sliceMipChain(payload []byte, format BlockFormat, width, height, mipCount int) ([]MipLevel, error) {
	levels := make([]MipLevel, 0, mipCount)

	for level := 0; level < mipCount; level++ {
		w := max(1, width>>level)
		h := max(1, height>>level)

		size := format.levelByteSize(w, h)
		if len(payload) < size {
			return nil, fmt.Errorf("mip level %d is truncated: need %d bytes, have %d", level, size, len(payload))
		}

		levels = append(levels, MipLevel{
			Width:  w,
			Height: h,
			Data:   payload[:size:size],
		})

		payload = payload[size:]
	}

	return levels, nil
}
