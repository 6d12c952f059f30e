//go:build !kiln_no_ktx2

package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

func init() {
	registerDecoder(FormatKtx2, decodeKtx2)
}

var ktx2Magic = []byte{0xAB, 'K', 'T', 'X', ' ', '2', '0', 0xBB, '\r', '\n', 0x1A, '\n'}

// KTX2 header layout: 12 byte magic, 9 little endian u32 fields, the index
// (4 u32 + 2 u64), then one level index entry of 3 u64 per mip level.
const (
	ktx2HeaderSize     = 12 + 9*4 + 4*4 + 2*8
	ktx2LevelEntrySize = 3 * 8
)

// supercompression schemes
const (
	ktx2SuperNone    = 0
	ktx2SuperBasisLZ = 1
	ktx2SuperZstd    = 2
	ktx2SuperZlib    = 3
)

// VkFormat values we can map onto texture data.
const (
	vkFormatR8G8B8A8Unorm = 37
	vkFormatR8G8B8A8Srgb  = 43

	vkFormatBC1RGBAUnorm   = 133
	vkFormatBC1RGBASrgb    = 134
	vkFormatBC2Unorm       = 135
	vkFormatBC2Srgb        = 136
	vkFormatBC3Unorm       = 137
	vkFormatBC3Srgb        = 138
	vkFormatBC4Unorm       = 139
	vkFormatBC5Unorm       = 141
	vkFormatBC6HUfloat     = 143
	vkFormatBC6HSfloat     = 144
	vkFormatBC7Unorm       = 145
	vkFormatBC7Srgb        = 146
	vkFormatETC2RGB8Unorm  = 147
	vkFormatETC2RGB8Srgb   = 148
	vkFormatETC2RGB8A1     = 149
	vkFormatETC2RGB8A1Srgb = 150
	vkFormatETC2RGBA8      = 151
	vkFormatETC2RGBA8Srgb  = 152
	vkFormatEACR11         = 153
	vkFormatEACRG11        = 155
	vkFormatASTC4x4Unorm   = 157
	vkFormatASTC4x4Srgb    = 158
)

type ktx2Header struct {
	vkFormat         uint32
	pixelWidth       uint32
	pixelHeight      uint32
	pixelDepth       uint32
	layerCount       uint32
	faceCount        uint32
	levelCount       uint32
	supercompression uint32
}

type ktx2Level struct {
	byteOffset             uint64
	byteLength             uint64
	uncompressedByteLength uint64
}

func decodeKtx2(data []byte, opts decodeOptions) (*Image, error) {
	header, levels, err := parseKtx2(data)
	if err != nil {
		return nil, fmt.Errorf("ktx2: %w", err)
	}

	levelData, err := readKtx2Levels(data, header, levels)
	if err != nil {
		return nil, fmt.Errorf("ktx2: %w", err)
	}

	width := int(header.pixelWidth)
	height := int(header.pixelHeight)

	// uncompressed RGBA payloads become CPU-side pixels
	switch header.vkFormat {
	case vkFormatR8G8B8A8Unorm, vkFormatR8G8B8A8Srgb:
		expected := width * height * 4
		if len(levelData[0]) != expected {
			return nil, fmt.Errorf("ktx2: level 0 has %d bytes, expected %d", len(levelData[0]), expected)
		}

		pixels := &image.NRGBA{
			Pix:    levelData[0],
			Stride: width * 4,
			Rect:   image.Rect(0, 0, width, height),
		}

		img := newImage(pixels, FormatKtx2, opts)

		// an explicit srgb container format wins; the unorm variant
		// defers to the settings flag
		if header.vkFormat == vkFormatR8G8B8A8Srgb {
			img.srgb = true
		}

		return img, nil
	}

	blockFormat, srgb, ok := blockFormatFromVk(header.vkFormat, opts.srgb)
	if !ok {
		return nil, fmt.Errorf("ktx2: unsupported vkFormat %d", header.vkFormat)
	}

	if !opts.supported.Supports(blockFormat.Family()) {
		return nil, &UnsupportedCompressionError{Format: blockFormat, Supported: opts.supported}
	}

	mips := make([]MipLevel, 0, len(levelData))
	for i, data := range levelData {
		w := max(1, width>>i)
		h := max(1, height>>i)

		if size := blockFormat.levelByteSize(w, h); len(data) != size {
			return nil, fmt.Errorf("ktx2: mip level %d has %d bytes, expected %d", i, len(data), size)
		}

		mips = append(mips, MipLevel{Width: w, Height: h, Data: data})
	}

	img := newCompressedImage(&CompressedPayload{
		Format: blockFormat,
		Levels: mips,
	}, FormatKtx2, srgb, opts)

	return img, nil
}

func parseKtx2(data []byte) (ktx2Header, []ktx2Level, error) {
	if len(data) < ktx2HeaderSize {
		return ktx2Header{}, nil, fmt.Errorf("truncated header (%d bytes)", len(data))
	}

	if !bytes.Equal(data[:12], ktx2Magic) {
		return ktx2Header{}, nil, fmt.Errorf("bad magic")
	}

	le := binary.LittleEndian

	header := ktx2Header{
		vkFormat:         le.Uint32(data[12:]),
		pixelWidth:       le.Uint32(data[20:]),
		pixelHeight:      le.Uint32(data[24:]),
		pixelDepth:       le.Uint32(data[28:]),
		layerCount:       le.Uint32(data[32:]),
		faceCount:        le.Uint32(data[36:]),
		levelCount:       le.Uint32(data[40:]),
		supercompression: le.Uint32(data[44:]),
	}

	if header.pixelWidth == 0 || header.pixelHeight == 0 ||
		header.pixelWidth > maxTextureDimension || header.pixelHeight > maxTextureDimension {
		return ktx2Header{}, nil, fmt.Errorf("invalid dimensions %dx%d", header.pixelWidth, header.pixelHeight)
	}

	if header.pixelDepth > 1 {
		return ktx2Header{}, nil, fmt.Errorf("3d textures are not supported")
	}

	if header.layerCount > 1 {
		return ktx2Header{}, nil, fmt.Errorf("array textures are not supported")
	}

	if header.faceCount > 1 {
		return ktx2Header{}, nil, fmt.Errorf("cubemap textures are not supported")
	}

	levelCount := int(header.levelCount)
	if levelCount == 0 {
		levelCount = 1
	}

	indexEnd := ktx2HeaderSize + levelCount*ktx2LevelEntrySize
	if len(data) < indexEnd {
		return ktx2Header{}, nil, fmt.Errorf("truncated level index")
	}

	levels := make([]ktx2Level, 0, levelCount)
	for i := 0; i < levelCount; i++ {
		entry := data[ktx2HeaderSize+i*ktx2LevelEntrySize:]

		levels = append(levels, ktx2Level{
			byteOffset:             le.Uint64(entry),
			byteLength:             le.Uint64(entry[8:]),
			uncompressedByteLength: le.Uint64(entry[16:]),
		})
	}

	return header, levels, nil
}

// readKtx2Levels extracts the per-level payloads, undoing zstd or zlib
// supercompression where present.
func readKtx2Levels(data []byte, header ktx2Header, levels []ktx2Level) ([][]byte, error) {
	var decompress func(payload []byte, expectedLen uint64) ([]byte, error)

	switch header.supercompression {
	case ktx2SuperNone:

	case ktx2SuperZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("init zstd decoder: %w", err)
		}
		defer dec.Close()

		decompress = func(payload []byte, _ uint64) ([]byte, error) {
			return dec.DecodeAll(payload, nil)
		}

	case ktx2SuperZlib:
		decompress = func(payload []byte, expectedLen uint64) ([]byte, error) {
			r, err := zlib.NewReader(bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			defer func() { _ = r.Close() }()

			// one byte past the expected size is enough to detect a
			// length mismatch without inflating unbounded
			return io.ReadAll(io.LimitReader(r, int64(expectedLen)+1))
		}

	case ktx2SuperBasisLZ:
		return nil, ErrTranscodeUnsupported

	default:
		return nil, fmt.Errorf("unsupported supercompression scheme %d", header.supercompression)
	}

	levelData := make([][]byte, 0, len(levels))

	for i, level := range levels {
		offset, length := int(level.byteOffset), int(level.byteLength)
		if offset < 0 || length < 0 || offset+length > len(data) {
			return nil, fmt.Errorf("level %d is out of bounds", i)
		}

		payload := data[offset : offset+length : offset+length]

		if decompress != nil {
			uncompressed, err := decompress(payload, level.uncompressedByteLength)
			if err != nil {
				return nil, fmt.Errorf("decompress level %d: %w", i, err)
			}

			if uint64(len(uncompressed)) != level.uncompressedByteLength {
				return nil, fmt.Errorf("level %d decompressed to %d bytes, expected %d",
					i, len(uncompressed), level.uncompressedByteLength)
			}

			payload = uncompressed
		}

		levelData = append(levelData, payload)
	}

	return levelData, nil
}

func blockFormatFromVk(vkFormat uint32, srgbDefault bool) (BlockFormat, bool, bool) {
	switch vkFormat {
	case vkFormatBC1RGBAUnorm:
		return BC1RGBA, srgbDefault, true
	case vkFormatBC1RGBASrgb:
		return BC1RGBA, true, true
	case vkFormatBC2Unorm:
		return BC2RGBA, srgbDefault, true
	case vkFormatBC2Srgb:
		return BC2RGBA, true, true
	case vkFormatBC3Unorm:
		return BC3RGBA, srgbDefault, true
	case vkFormatBC3Srgb:
		return BC3RGBA, true, true
	case vkFormatBC4Unorm:
		return BC4R, false, true
	case vkFormatBC5Unorm:
		return BC5RG, false, true
	case vkFormatBC6HUfloat, vkFormatBC6HSfloat:
		return BC6HRGB, false, true
	case vkFormatBC7Unorm:
		return BC7RGBA, srgbDefault, true
	case vkFormatBC7Srgb:
		return BC7RGBA, true, true
	case vkFormatETC2RGB8Unorm:
		return ETC2RGB8, srgbDefault, true
	case vkFormatETC2RGB8Srgb:
		return ETC2RGB8, true, true
	case vkFormatETC2RGB8A1:
		return ETC2RGB8A1, srgbDefault, true
	case vkFormatETC2RGB8A1Srgb:
		return ETC2RGB8A1, true, true
	case vkFormatETC2RGBA8:
		return ETC2RGBA8, srgbDefault, true
	case vkFormatETC2RGBA8Srgb:
		return ETC2RGBA8, true, true
	case vkFormatEACR11:
		return EACR11, false, true
	case vkFormatEACRG11:
		return EACRG11, false, true
	case vkFormatASTC4x4Unorm:
		return ASTC4x4, srgbDefault, true
	case vkFormatASTC4x4Srgb:
		return ASTC4x4, true, true
	default:
		return 0, false, false
	}
}
