//go:build !kiln_no_ktx2

package texture

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// buildKtx2 assembles a minimal single-face KTX2 file. levels holds the
// stored (possibly supercompressed) payload per mip level, uncompressedLens
// the corresponding uncompressed sizes.
func buildKtx2(t *testing.T, vkFormat uint32, width, height int, scheme uint32, levels [][]byte, uncompressedLens []int) []byte {
	t.Helper()
	require.Equal(t, len(levels), len(uncompressedLens))

	le := binary.LittleEndian

	indexSize := len(levels) * ktx2LevelEntrySize
	data := make([]byte, ktx2HeaderSize+indexSize)

	copy(data, ktx2Magic)
	le.PutUint32(data[12:], vkFormat)
	le.PutUint32(data[16:], 1) // typeSize
	le.PutUint32(data[20:], uint32(width))
	le.PutUint32(data[24:], uint32(height))
	le.PutUint32(data[36:], 1) // faceCount
	le.PutUint32(data[40:], uint32(len(levels)))
	le.PutUint32(data[44:], scheme)

	offset := len(data)
	for i, level := range levels {
		entry := data[ktx2HeaderSize+i*ktx2LevelEntrySize:]
		le.PutUint64(entry, uint64(offset+lenSum(levels[:i])))
		le.PutUint64(entry[8:], uint64(len(level)))
		le.PutUint64(entry[16:], uint64(uncompressedLens[i]))
	}

	for _, level := range levels {
		data = append(data, level...)
	}

	return data
}

func lenSum(levels [][]byte) int {
	var sum int
	for _, level := range levels {
		sum += len(level)
	}

	return sum
}

func TestKtx2UncompressedRgba(t *testing.T) {
	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	data := buildKtx2(t, vkFormatR8G8B8A8Srgb, 2, 2, ktx2SuperNone, [][]byte{pixels}, []int{len(pixels)})

	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, false, DefaultSampler, RetentionKeep)
	require.NoError(t, err)

	require.Equal(t, 2, img.Width())
	require.Equal(t, 2, img.Height())
	require.False(t, img.IsCompressed())
	require.Equal(t, pixels, img.Pixels().Pix)

	// srgb-ness of the container wins over the settings flag
	require.True(t, img.IsSRGB())
}

func TestKtx2ZstdSupercompression(t *testing.T) {
	pixels := make([]byte, 4*4*4)
	for i := range pixels {
		pixels[i] = byte(i % 7)
	}

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(pixels, nil)
	require.NoError(t, enc.Close())

	data := buildKtx2(t, vkFormatR8G8B8A8Unorm, 4, 4, ktx2SuperZstd, [][]byte{compressed}, []int{len(pixels)})

	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, true, DefaultSampler, RetentionKeep)
	require.NoError(t, err)
	require.Equal(t, pixels, img.Pixels().Pix)
}

func TestKtx2UnormHonorsSettingsSrgb(t *testing.T) {
	pixels := make([]byte, 2*2*4)

	data := buildKtx2(t, vkFormatR8G8B8A8Unorm, 2, 2, ktx2SuperNone, [][]byte{pixels}, []int{len(pixels)})

	// a unorm container defers to the settings flag
	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, true, DefaultSampler, RetentionKeep)
	require.NoError(t, err)
	require.True(t, img.IsSRGB())

	img, err = FromBuffer(data, ExtensionType("ktx2"), CompressedNone, false, DefaultSampler, RetentionKeep)
	require.NoError(t, err)
	require.False(t, img.IsSRGB())
}

func TestKtx2ZlibSupercompression(t *testing.T) {
	pixels := make([]byte, 4*4*4)
	for i := range pixels {
		pixels[i] = byte(i % 5)
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(pixels)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data := buildKtx2(t, vkFormatR8G8B8A8Unorm, 4, 4, ktx2SuperZlib, [][]byte{buf.Bytes()}, []int{len(pixels)})

	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, true, DefaultSampler, RetentionKeep)
	require.NoError(t, err)
	require.Equal(t, pixels, img.Pixels().Pix)
}

func TestKtx2HugeDimensionsRejected(t *testing.T) {
	data := buildKtx2(t, vkFormatR8G8B8A8Unorm, 0xFFFFFFF0, 0xFFFFFFF0, ktx2SuperNone, [][]byte{make([]byte, 16)}, []int{16})

	_, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, true, DefaultSampler, RetentionKeep)
	require.ErrorContains(t, err, "invalid dimensions")
}

func TestKtx2CompressedGatedOnDeviceSupport(t *testing.T) {
	block := make([]byte, 8) // one BC1 block

	data := buildKtx2(t, vkFormatBC1RGBASrgb, 4, 4, ktx2SuperNone, [][]byte{block}, []int{len(block)})

	_, err := FromBuffer(data, ExtensionType("ktx2"), CompressedNone, true, DefaultSampler, RetentionKeep)
	var unsupported *UnsupportedCompressionError
	require.ErrorAs(t, err, &unsupported)

	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedBC, true, DefaultSampler, RetentionKeep)
	require.NoError(t, err)

	payload, ok := img.Compressed()
	require.True(t, ok)
	require.Equal(t, BC1RGBA, payload.Format)
	require.True(t, img.IsSRGB())
}

func TestKtx2BasisLZUnsupported(t *testing.T) {
	data := buildKtx2(t, 0, 4, 4, ktx2SuperBasisLZ, [][]byte{make([]byte, 16)}, []int{16})

	_, err := FromBuffer(data, ExtensionType("ktx2"), CompressedAll, true, DefaultSampler, RetentionKeep)
	require.ErrorIs(t, err, ErrTranscodeUnsupported)
}

func TestKtx2Etc2(t *testing.T) {
	block := make([]byte, 8) // one ETC2 RGB8 block

	data := buildKtx2(t, vkFormatETC2RGB8Unorm, 4, 4, ktx2SuperNone, [][]byte{block}, []int{len(block)})

	img, err := FromBuffer(data, ExtensionType("ktx2"), CompressedETC2, false, DefaultSampler, RetentionKeep)
	require.NoError(t, err)

	payload, _ := img.Compressed()
	require.Equal(t, ETC2RGB8, payload.Format)
}
